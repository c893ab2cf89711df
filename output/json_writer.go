package output

import (
	"encoding/json"
	"fmt"
	"io"

	"sheetgrid/convert"
)

type JSONWriter struct {
	Indent bool
}

func (w *JSONWriter) Write(out io.Writer, doc convert.Document) error {
	if doc == nil {
		doc = convert.Document{}
	}

	encoder := json.NewEncoder(out)
	if w.Indent {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(Envelope{Results: doc}); err != nil {
		return fmt.Errorf("encode json output: %w", err)
	}
	return nil
}
