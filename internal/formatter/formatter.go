// package formatter renders fixture documents as Extended JSON, CSV, Markdown, or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/jukeseed/internal/fixtures"
	"github.com/desertthunder/jukeseed/internal/shared"
	"go.mongodb.org/mongo-driver/bson"
)

// Format names an output format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ParseFormat accepts a format name and a few common aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json", "":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, name)
}

// Export renders all fixtures in the given format.
func Export(format Format, all []fixtures.Fixture) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ExportToJSON(all)
	case FormatCSV:
		return ExportToCSV(all)
	case FormatMarkdown:
		return ExportToMarkdown(all)
	case FormatText:
		return ExportToText(all)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
}

// ExportToJSON renders fixtures as relaxed Extended JSON grouped by collection, in version order.
func ExportToJSON(all []fixtures.Fixture) ([]byte, error) {
	grouped := bson.D{}
	index := map[string]int{}
	for _, f := range all {
		i, ok := index[f.Collection]
		if !ok {
			i = len(grouped)
			index[f.Collection] = i
			grouped = append(grouped, bson.E{Key: f.Collection, Value: bson.A{}})
		}
		grouped[i].Value = append(grouped[i].Value.(bson.A), f.Document)
	}

	out, err := bson.MarshalExtJSONIndent(grouped, false, false, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal fixtures: %w", err)
	}
	return append(out, '\n'), nil
}

// ExportToCSV renders one row per field with columns: Collection, ID, Field, Type, Value
func ExportToCSV(all []fixtures.Fixture) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Collection", "ID", "Field", "Type", "Value"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, f := range all {
		elems, err := f.Document.Elements()
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture %s: %w", f.Name, err)
		}
		for _, el := range elems {
			record := []string{f.Collection, f.ID(), el.Key(), el.Value().Type.String(), el.Value().String()}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a section with a field table per fixture
func ExportToMarkdown(all []fixtures.Fixture) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Fixtures\n\n")
	buf.WriteString(fmt.Sprintf("**Documents**: %d\n\n", len(all)))

	for _, f := range all {
		elems, err := f.Document.Elements()
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture %s: %w", f.Name, err)
		}

		buf.WriteString(fmt.Sprintf("## %s `%s`\n\n", f.Collection, f.ID()))
		buf.WriteString(fmt.Sprintf("Source: `%s`\n\n", f.Name))
		buf.WriteString("| Field | Type | Value |\n|---|---|---|\n")
		for _, el := range elems {
			buf.WriteString(fmt.Sprintf("| `%s` | %s | `%s` |\n", el.Key(), el.Value().Type, el.Value().String()))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText renders fixtures in plain text format
func ExportToText(all []fixtures.Fixture) ([]byte, error) {
	var buf bytes.Buffer

	for i, f := range all {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, f.Collection, f.ID()))

		elems, err := f.Document.Elements()
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture %s: %w", f.Name, err)
		}
		for _, el := range elems {
			buf.WriteString(fmt.Sprintf("   %s: %s\n", el.Key(), el.Value().String()))
		}
	}

	return buf.Bytes(), nil
}

// WriteExport renders fixtures and writes them to path.
func WriteExport(format Format, all []fixtures.Fixture, path string) error {
	data, err := Export(format, all)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}
