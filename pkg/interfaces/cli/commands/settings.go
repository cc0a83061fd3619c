package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/vsinha/polebom/pkg/infrastructure/logging"
)

// EnvPrefix prefixes every environment variable the CLI reads
const EnvPrefix = "POLEBOM"

// Settings holds defaults loaded from an optional config file and the
// environment. Command-line flags override them.
type Settings struct {
	Catalog          string         `mapstructure:"catalog"`
	Format           string         `mapstructure:"format"`
	OutputDir        string         `mapstructure:"output"`
	DefaultPoleWidth int            `mapstructure:"default_pole_width"`
	Log              logging.Config `mapstructure:"log"`
}

// LoadSettings reads configFile (YAML, optional) and POLEBOM_* environment
// variables. Nested keys use underscores, e.g. POLEBOM_LOG_LEVEL.
func LoadSettings(configFile string) (Settings, error) {
	v := viper.New()

	v.SetDefault("catalog", "")
	v.SetDefault("format", "text")
	v.SetDefault("output", "")
	v.SetDefault("default_pole_width", 150)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_path", "")
	v.SetDefault("log.development", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding config: %w", err)
	}
	if s.DefaultPoleWidth <= 0 {
		return Settings{}, fmt.Errorf("default_pole_width must be positive, got %d", s.DefaultPoleWidth)
	}
	return s, nil
}
