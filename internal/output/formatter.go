package output

import (
	"fmt"
	"io"

	"github.com/spiffcs/dday/internal/model"
)

// Format represents the output format
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML, FormatMarkdown}

// Formatter renders a run summary.
type Formatter interface {
	Format(summary *model.Summary, w io.Writer) error
}

// ParseFormat validates a user supplied format name. An empty name selects
// the table format.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatTable, nil
	}
	for _, f := range Formats {
		if Format(s) == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid format: %s (must be one of %v)", s, Formats)
}

// NewFormatter creates a formatter for the specified format
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}
