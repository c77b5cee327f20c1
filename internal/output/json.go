package output

import (
	"encoding/json"
	"io"

	"github.com/spiffcs/dday/internal/model"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format outputs the run summary as JSON
func (f *JSONFormatter) Format(summary *model.Summary, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(summary)
}
