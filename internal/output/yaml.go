package output

import (
	"fmt"
	"io"

	"github.com/spiffcs/dday/internal/model"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats output as YAML
type YAMLFormatter struct{}

// Format outputs the run summary as YAML
func (f *YAMLFormatter) Format(summary *model.Summary, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode summary as YAML: %w", err)
	}
	return enc.Close()
}
