package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"sheetgrid/convert"
)

type Writer interface {
	Write(w io.Writer, doc convert.Document) error
}

// Envelope is the top-level JSON object every consumer receives.
type Envelope struct {
	Results convert.Document `json:"resultados"`
}

func WriterForFormat(format string, pretty bool) (Writer, error) {
	switch normalizeFormat(format) {
	case "", "json":
		return &JSONWriter{Indent: pretty}, nil
	case "csv":
		return &CSVWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteFile writes doc to path, creating or truncating the file.
func WriteFile(path string, writer Writer, doc convert.Document) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output %s: %w", path, err)
	}
	if err := writer.Write(file, doc); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output %s: %w", path, err)
	}
	return nil
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
