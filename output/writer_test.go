package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sheetgrid/convert"
)

func sampleDocument() convert.Document {
	return convert.Document{
		{{"A1": "X", "B1": "Y"}},
		{{"A2": "", "B2": "42"}},
	}
}

func TestJSONWriter_WrapsDocumentInEnvelope(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, sampleDocument()); err != nil {
		t.Fatalf("write json: %v", err)
	}

	want := `{"resultados":[[{"A1":"X","B1":"Y"}],[{"A2":"","B2":"42"}]]}` + "\n"
	if buf.String() != want {
		t.Fatalf("unexpected json:\nwant %s\ngot  %s", want, buf.String())
	}
}

func TestJSONWriter_EmptyDocumentIsArray(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, nil); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"resultados":[]}` {
		t.Fatalf("unexpected json: %s", got)
	}
}

func TestJSONWriter_RowWithoutColumnsIsEmptyArray(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, convert.Document{{}}); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"resultados":[[]]}` {
		t.Fatalf("unexpected json: %s", got)
	}
}

func TestCSVWriter_OrdersValuesByColumn(t *testing.T) {
	t.Parallel()

	doc := convert.Document{
		{{"B1": "second", "AA1": "last", "A1": "first"}},
		{{"A2": "", "B2": "x,y", "AA2": ""}},
	}

	var buf bytes.Buffer
	if err := (&CSVWriter{}).Write(&buf, doc); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	want := "first,second,last\n,\"x,y\",\n"
	if buf.String() != want {
		t.Fatalf("unexpected csv:\nwant %q\ngot  %q", want, buf.String())
	}
}

func TestCSVWriter_RejectsInvalidAddress(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := (&CSVWriter{}).Write(&buf, convert.Document{{{"not-an-address": "x"}}})
	if err == nil {
		t.Fatalf("expected error for invalid address")
	}
}

func TestWriterForFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{format: "", want: "json"},
		{format: "JSON", want: "json"},
		{format: " csv ", want: "csv"},
		{format: "xlsx", wantErr: true},
	}

	for _, tc := range tests {
		writer, err := WriterForFormat(tc.format, false)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("format %q: expected error", tc.format)
			}
			continue
		}
		if err != nil {
			t.Fatalf("format %q: unexpected error: %v", tc.format, err)
		}
		switch writer.(type) {
		case *JSONWriter:
			if tc.want != "json" {
				t.Fatalf("format %q: got json writer", tc.format)
			}
		case *CSVWriter:
			if tc.want != "csv" {
				t.Fatalf("format %q: got csv writer", tc.format)
			}
		}
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteFile(path, &JSONWriter{Indent: true}, sampleDocument()); err != nil {
		t.Fatalf("write file: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(content), "\"resultados\": [") {
		t.Fatalf("expected indented envelope, got:\n%s", content)
	}
}
