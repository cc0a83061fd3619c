package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/vsinha/polebom/pkg/application/services"
	"github.com/vsinha/polebom/pkg/domain/catalog"
	"github.com/vsinha/polebom/pkg/infrastructure/metrics"
	"github.com/vsinha/polebom/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/polebom/pkg/interfaces/cli/output"
)

// Config holds configuration for the BOM command
type Config struct {
	RequestsFile     string
	CatalogFile      string
	OutputDir        string
	Format           string
	DefaultPoleWidth int
	Verbose          bool
	ValidateOnly     bool
	Metrics          bool
	Help             bool
	Out              io.Writer
}

// BOMCommand finalizes a CSV of component requests and prints the pick list
type BOMCommand struct {
	config Config
	logger *zap.Logger
}

// NewBOMCommand creates a new BOM command with the given configuration
func NewBOMCommand(config Config, logger *zap.Logger) *BOMCommand {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BOMCommand{config: config, logger: logger}
}

// Execute runs the BOM command
func (c *BOMCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	cat, err := loadCatalog(c.config.CatalogFile)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Fprintf(c.config.Out, "📂 Loading requests from %s...\n", c.config.RequestsFile)
	}

	requests, err := csv.NewLoader(cat).LoadRequests(c.config.RequestsFile)
	if err != nil {
		return fmt.Errorf("error loading requests: %w", err)
	}

	c.logger.Debug("requests loaded",
		zap.String("file", c.config.RequestsFile),
		zap.Int("count", len(requests)))

	configurator := services.NewConfigurator(cat, services.WithLogger(c.logger))
	batch := services.NewBatchService(configurator, c.logger)

	result, err := batch.Run(ctx, requests, services.BatchOptions{
		DefaultPoleWidthMm: c.config.DefaultPoleWidth,
		ValidateOnly:       c.config.ValidateOnly,
	})
	if err != nil {
		return fmt.Errorf("error configuring components: %w", err)
	}

	if c.config.ValidateOnly {
		for _, r := range result.Rejected {
			fmt.Fprintf(c.config.Out, "❌ line %d: %s\n", r.Line, r.Error)
		}
		if !result.Valid() {
			return fmt.Errorf("%d of %d requests rejected", len(result.Rejected), len(requests))
		}
		fmt.Fprintf(c.config.Out, "✅ %d requests valid\n", len(requests))
		return c.writeMetrics()
	}

	if !result.Valid() {
		for _, r := range result.Rejected {
			fmt.Fprintf(c.config.Out, "❌ line %d: %s\n", r.Line, r.Error)
		}
		return fmt.Errorf("%d of %d requests rejected", len(result.Rejected), len(requests))
	}

	err = output.Generate(result, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Out:       c.config.Out,
	})
	if err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return c.writeMetrics()
}

func (c *BOMCommand) writeMetrics() error {
	if !c.config.Metrics {
		return nil
	}
	return metrics.WriteText(c.config.Out, prometheus.DefaultGatherer)
}

// validateInputs validates the command configuration
func (c *BOMCommand) validateInputs() error {
	if c.config.RequestsFile == "" {
		return fmt.Errorf("must specify -requests CSV file")
	}
	if _, err := os.Stat(c.config.RequestsFile); os.IsNotExist(err) {
		return fmt.Errorf("requests file not found: %s", c.config.RequestsFile)
	}
	if c.config.DefaultPoleWidth <= 0 {
		return fmt.Errorf("default pole width must be positive, got %d", c.config.DefaultPoleWidth)
	}
	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("error loading catalog: %w", err)
	}
	return cat, nil
}

// showHelp displays the help message
func (c *BOMCommand) showHelp() {
	fmt.Fprintf(c.config.Out, `polebom - pole and crossarm configuration to pick list

USAGE:
    polebom -requests <file> [options]     # Finalize every row and print the pick list
    polebom -interactive                    # Step through components one attribute at a time

OPTIONS:
    -requests <file>    CSV of component requests
    -catalog <file>     Catalog YAML (default: built-in catalog)
    -config <file>      YAML file with defaults for these options
    -output <dir>       Output directory for results (required for csv and html)
    -format <fmt>       Output format: text, json, csv, html (default: text)
    -pole-width <mm>    Pole width for crossarm rows that leave it blank (default: 150)
    -validate-only      Check every row without printing a pick list
    -metrics            Print Prometheus metrics after the run
    -interactive        Start an interactive configuration session
    -verbose            Enable verbose output
    -log-level <lvl>    Log level: debug, info, warn, error
    -help               Show this help message

ENVIRONMENT:
    POLEBOM_CATALOG, POLEBOM_FORMAT, POLEBOM_OUTPUT, POLEBOM_DEFAULT_POLE_WIDTH,
    POLEBOM_LOG_LEVEL, POLEBOM_LOG_FORMAT

REQUESTS CSV:
    kind,pole_width,Voltage,Dimension,Length,Number,Configuration,Material,Wires,Manufacturer
    crossarm,150,11,A,30,1,TPS3T,T,3,
    pole,,,,125,Single,,C,,BUSCK

EXAMPLES:
    polebom -requests levels.csv
    polebom -requests levels.csv -format csv -output results/
    polebom -requests levels.csv -validate-only
`)
}
