// Package logging builds the structured zap loggers used across polebom
package logging

import (
	"go.uber.org/zap"
)

// Config holds logging configuration
type Config struct {
	Level       string            `mapstructure:"level" yaml:"level"`
	Format      string            `mapstructure:"format" yaml:"format"` // "json" or "console"
	OutputPath  string            `mapstructure:"output_path" yaml:"output_path"`
	Fields      map[string]string `mapstructure:"fields" yaml:"fields"`
	Development bool              `mapstructure:"development" yaml:"development"`
}

// DefaultConfig logs info and above to stderr in console format
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Fields: map[string]string{"service": "polebom"},
	}
}

// NewLogger creates a logger from config
func NewLogger(config Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if config.Development {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(config.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	if config.Format == "json" {
		zapConfig.Encoding = "json"
	} else {
		zapConfig.Encoding = "console"
	}

	// stdout carries reports, so logs default to stderr
	zapConfig.OutputPaths = []string{"stderr"}
	if config.OutputPath != "" {
		zapConfig.OutputPaths = []string{config.OutputPath}
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	fields := make([]zap.Field, 0, len(config.Fields))
	for k, v := range config.Fields {
		fields = append(fields, zap.String(k, v))
	}
	return logger.With(fields...), nil
}

// NewDefaultLogger returns a logger built from DefaultConfig, falling back
// to a no-op logger if construction fails.
func NewDefaultLogger() *zap.Logger {
	logger, err := NewLogger(DefaultConfig())
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
