package output

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/vsinha/polebom/pkg/application/dto"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateData contains all data for rendering the HTML report
type TemplateData struct {
	*dto.BOMResult
	LineItemCount int
	GeneratedAt   string
}

// RenderHTML renders the pick list report
func RenderHTML(result *dto.BOMResult, generatedAt time.Time) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/pick_list.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	data := &TemplateData{
		BOMResult:   result,
		GeneratedAt: generatedAt.Format("2006-01-02 15:04:05"),
	}
	if result.PickList != nil {
		data.LineItemCount = len(result.PickList.Items())
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// generateHTMLOutput writes pick_list.html into the output directory
func generateHTMLOutput(result *dto.BOMResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for HTML format")
	}

	html, err := RenderHTML(result, time.Now())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "pick_list.html")
	if err := os.WriteFile(filename, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.out(), "💾 HTML report saved to: %s\n", filename)
	}
	return nil
}
