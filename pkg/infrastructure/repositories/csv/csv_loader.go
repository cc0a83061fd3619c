package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/vsinha/polebom/pkg/domain/catalog"
	"github.com/vsinha/polebom/pkg/domain/entities"
)

// Loader reads component requests from CSV files. Attribute columns are
// resolved against the catalog's attribute names.
type Loader struct {
	attributes []entities.Attribute
}

// NewLoader creates a CSV loader accepting every attribute the catalog defines
// for any component class
func NewLoader(cat *catalog.Catalog) *Loader {
	var attrs []entities.Attribute
	for _, kind := range []entities.ComponentKind{entities.KindCrossarm, entities.KindPole} {
		for _, attr := range cat.Attributes(kind) {
			if !slices.Contains(attrs, attr) {
				attrs = append(attrs, attr)
			}
		}
	}
	return &Loader{attributes: attrs}
}

var leadingColumns = []string{"kind", "pole_width"}

// LoadRequests loads component requests from a CSV file
func (l *Loader) LoadRequests(filename string) ([]entities.ComponentRequest, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open requests file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadRequests(file)
}

// ReadRequests parses component requests. The header is kind, pole_width,
// then any attribute columns; blank cells leave the attribute unset.
func (l *Loader) ReadRequests(r io.Reader) ([]entities.ComponentRequest, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("requests CSV must have header and at least one data row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read requests CSV: %w", err)
	}

	if !validateHeader(header, leadingColumns) {
		return nil, fmt.Errorf("requests CSV header mismatch. Expected leading columns: %v, Got: %v", leadingColumns, header)
	}

	attrs := make([]entities.Attribute, 0, len(header)-len(leadingColumns))
	seen := make(map[entities.Attribute]bool)
	for _, col := range header[len(leadingColumns):] {
		attr, err := l.parseAttribute(col)
		if err != nil {
			return nil, fmt.Errorf("requests CSV header: %w", err)
		}
		if seen[attr] {
			return nil, fmt.Errorf("requests CSV header: duplicate column %s", attr)
		}
		seen[attr] = true
		attrs = append(attrs, attr)
	}

	var requests []entities.ComponentRequest
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read requests CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if len(record) != len(header) {
			return nil, fmt.Errorf("requests CSV row %d: expected %d columns, got %d", line, len(header), len(record))
		}

		request, err := parseRequest(record, attrs)
		if err != nil {
			return nil, fmt.Errorf("requests CSV row %d: %w", line, err)
		}
		request.Line = line
		requests = append(requests, request)
	}

	if len(requests) == 0 {
		return nil, fmt.Errorf("requests CSV must have header and at least one data row")
	}

	return requests, nil
}

// validateHeader checks that actual starts with the expected columns
func validateHeader(actual, expected []string) bool {
	if len(actual) < len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func (l *Loader) parseAttribute(col string) (entities.Attribute, error) {
	name := strings.TrimSpace(col)
	for _, attr := range l.attributes {
		if strings.EqualFold(name, string(attr)) {
			return attr, nil
		}
	}
	return "", fmt.Errorf("unknown attribute column %q", col)
}

func parseRequest(record []string, attrs []entities.Attribute) (entities.ComponentRequest, error) {
	kind, err := entities.ParseComponentKind(strings.TrimSpace(record[0]))
	if err != nil {
		return entities.ComponentRequest{}, err
	}

	var poleWidth int
	width := strings.TrimSpace(record[1])
	if width != "" {
		poleWidth, err = strconv.Atoi(width)
		if err != nil {
			return entities.ComponentRequest{}, fmt.Errorf("invalid pole width: %w", err)
		}
		if poleWidth <= 0 {
			return entities.ComponentRequest{}, fmt.Errorf("pole width must be positive, got %d", poleWidth)
		}
	}

	pairs := make(map[entities.Attribute]string, len(attrs))
	for i, attr := range attrs {
		pairs[attr] = strings.TrimSpace(record[len(leadingColumns)+i])
	}

	return entities.ComponentRequest{
		Kind:         kind,
		PoleWidthMm:  poleWidth,
		PoleWidthSet: width != "",
		Selections:   entities.NewAttributeSelection(pairs),
	}, nil
}
