package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vsinha/polebom/pkg/application/dto"
	"github.com/vsinha/polebom/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Out       io.Writer
}

func (c Config) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Generate creates output in the specified format
func Generate(result *dto.BOMResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	case "html":
		return generateHTMLOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// WriteText renders the human-readable report
func WriteText(w io.Writer, result *dto.BOMResult, elapsed time.Duration) {
	fmt.Fprintf(w, "📊 Pick List Summary\n")
	fmt.Fprintf(w, "====================\n\n")

	fmt.Fprintf(w, "Components: %d\n", len(result.Components))
	fmt.Fprintf(w, "Rejected: %d\n", len(result.Rejected))
	if result.PickList != nil {
		fmt.Fprintf(w, "Line Items: %d\n", len(result.PickList.Items()))
		fmt.Fprintf(w, "Total Quantity: %d\n", result.PickList.TotalQuantity())
	}
	if elapsed > 0 {
		fmt.Fprintf(w, "Elapsed: %v\n", elapsed)
	}
	fmt.Fprintln(w)

	if len(result.Components) > 0 {
		fmt.Fprintf(w, "🏗️  Components:\n")
		fmt.Fprintf(w, "%-4s %-10s %-34s %-8s %-6s\n", "Seq", "Kind", "Build Identifier", "Width", "Items")
		fmt.Fprintf(w, "%-4s %-10s %-34s %-8s %-6s\n", "----", "----------", strings.Repeat("-", 34), "--------", "------")
		for _, c := range result.Components {
			width := "-"
			if c.PoleWidthMm > 0 {
				width = strconv.Itoa(c.PoleWidthMm)
			}
			fmt.Fprintf(w, "%-4d %-10s %-34s %-8s %-6d\n",
				c.Sequence, c.KindName, c.BuildIdentifier, width, len(c.LineItems))
		}
		fmt.Fprintln(w)
	}

	if len(result.Rejected) > 0 {
		fmt.Fprintf(w, "⚠️  Rejected Requests:\n")
		for _, r := range result.Rejected {
			fmt.Fprintf(w, "  line %d (%s %s): %s\n", r.Line, r.Kind, r.BuildIdentifier, r.Error)
		}
		fmt.Fprintln(w)
	}

	if result.PickList != nil {
		fmt.Fprintf(w, "📋 Pick List:\n")
		for _, group := range result.PickList.Groups {
			fmt.Fprintf(w, "\n%s\n", group.Category)
			fmt.Fprintf(w, "  %-28s %-52s %6s\n", "Part Number", "Description", "Qty")
			for _, item := range group.Items {
				fmt.Fprintf(w, "  %-28s %-52s %6d\n", item.ID, item.Name, item.Qty)
			}
		}
		fmt.Fprintln(w)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.BOMResult, config Config) error {
	WriteText(config.out(), result, result.Elapsed)

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		var sb strings.Builder
		WriteText(&sb, result, 0)
		filename := filepath.Join(config.OutputDir, "pick_list.txt")
		if err := os.WriteFile(filename, []byte(sb.String()), 0644); err != nil {
			return fmt.Errorf("failed to write text file: %w", err)
		}
		if config.Verbose {
			fmt.Fprintf(config.out(), "💾 Results saved to: %s\n", filename)
		}
	}

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.BOMResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.out(), string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "pick_list.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.out(), "💾 JSON results saved to: %s\n", filename)
	}

	return nil
}

// generateCSVOutput creates CSV output
func generateCSVOutput(result *dto.BOMResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	componentsFile := filepath.Join(config.OutputDir, "components.csv")
	if err := writeCSVFile(componentsFile, func(w io.Writer) error {
		return WriteComponentsCSV(w, result.Components)
	}); err != nil {
		return fmt.Errorf("failed to write components CSV: %w", err)
	}

	pickListFile := filepath.Join(config.OutputDir, "pick_list.csv")
	if result.PickList != nil {
		if err := writeCSVFile(pickListFile, func(w io.Writer) error {
			return WritePickListCSV(w, result.PickList)
		}); err != nil {
			return fmt.Errorf("failed to write pick list CSV: %w", err)
		}
	}

	if config.Verbose {
		fmt.Fprintf(config.out(), "💾 CSV results saved to:\n")
		fmt.Fprintf(config.out(), "  Components: %s\n", componentsFile)
		if result.PickList != nil {
			fmt.Fprintf(config.out(), "  Pick List: %s\n", pickListFile)
		}
	}

	return nil
}

func writeCSVFile(filename string, write func(io.Writer) error) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WritePickListCSV writes one row per aggregated line item in display order
func WritePickListCSV(w io.Writer, pickList *entities.PickList) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "part_number", "description", "quantity"}); err != nil {
		return err
	}
	for _, group := range pickList.Groups {
		for _, item := range group.Items {
			record := []string{string(group.Category), string(item.ID), item.Name, strconv.Itoa(int(item.Qty))}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteComponentsCSV writes one row per finalized component
func WriteComponentsCSV(w io.Writer, components []entities.ConfiguredComponent) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"sequence", "kind", "build_identifier", "pole_width_mm", "line_items", "total_quantity"}); err != nil {
		return err
	}
	for _, c := range components {
		record := []string{
			strconv.Itoa(c.Sequence),
			c.KindName,
			c.BuildIdentifier,
			strconv.Itoa(c.PoleWidthMm),
			strconv.Itoa(len(c.LineItems)),
			strconv.Itoa(int(c.TotalQuantity())),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
