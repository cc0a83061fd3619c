package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/vsinha/polebom/pkg/infrastructure/logging"
	"github.com/vsinha/polebom/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		configFile   = flag.String("config", "", "YAML file with default settings")
		requestsFile = flag.String("requests", "", "Path to component requests CSV file")
		catalogFile  = flag.String("catalog", "", "Path to catalog YAML (default: built-in)")
		outputDir    = flag.String("output", "", "Output directory for results (optional)")
		format       = flag.String("format", "text", "Output format: text, json, csv, html")
		poleWidth    = flag.Int("pole-width", 150, "Pole width in mm for crossarm rows that leave it blank")
		validateOnly = flag.Bool("validate-only", false, "Validate requests without printing a pick list")
		showMetrics  = flag.Bool("metrics", false, "Print Prometheus metrics after the run")
		interactive  = flag.Bool("interactive", false, "Start an interactive configuration session")
		logLevel     = flag.String("log-level", "warn", "Log level: debug, info, warn, error")
		verbose      = flag.Bool("verbose", false, "Enable verbose output")
		help         = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	settings, err := commands.LoadSettings(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// explicit flags win over config file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "catalog":
			settings.Catalog = *catalogFile
		case "output":
			settings.OutputDir = *outputDir
		case "format":
			settings.Format = *format
		case "pole-width":
			settings.DefaultPoleWidth = *poleWidth
		case "log-level":
			settings.Log.Level = *logLevel
		}
	})

	logger, err := logging.NewLogger(settings.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *interactive {
		cmd := commands.NewConfigureCommand(commands.ConfigureConfig{
			CatalogFile: settings.Catalog,
		}, logger)
		run(ctx, cmd.Execute, logger)
		return
	}

	// Create command configuration
	config := commands.Config{
		RequestsFile:     *requestsFile,
		CatalogFile:      settings.Catalog,
		OutputDir:        settings.OutputDir,
		Format:           settings.Format,
		DefaultPoleWidth: settings.DefaultPoleWidth,
		Verbose:          *verbose,
		ValidateOnly:     *validateOnly,
		Metrics:          *showMetrics,
		Help:             *help,
	}

	cmd := commands.NewBOMCommand(config, logger)
	run(ctx, cmd.Execute, logger)
}

func run(ctx context.Context, execute func(context.Context) error, logger *zap.Logger) {
	if err := execute(ctx); err != nil {
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
