package convert

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"sheetgrid/workbook"
)

func newExcelConverter(options Options) *Converter {
	return NewConverter(workbook.NewExcelProvider(workbook.ProviderConfig{RawCellValues: true}), options)
}

func TestConverter_EndToEndFallsBackToFirstSheet(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, t.TempDir(), "proposal.xlsx", []string{"Sheet1"}, map[string]map[string]any{
		"Sheet1": {"A1": "X", "B1": "Y", "B2": 42},
	})

	converter := newExcelConverter(Options{Candidates: []string{"Proposta_(Uso_Concessionária)", "Proposta_(Uso_Concessionária)2"}})
	result, err := converter.Convert(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Document{
		{{"A1": "X", "B1": "Y"}},
		{{"A2": "", "B2": "42"}},
	}
	if !reflect.DeepEqual(result.Document, want) {
		t.Fatalf("unexpected document:\nwant %#v\ngot  %#v", want, result.Document)
	}
	if result.Sheet != "Sheet1" || result.Matched {
		t.Fatalf("expected fallback to Sheet1, got sheet=%q matched=%t", result.Sheet, result.Matched)
	}
	if result.Rows != 2 || result.Cols != 2 {
		t.Fatalf("expected 2x2 result, got %dx%d", result.Rows, result.Cols)
	}
}

func TestConverter_SelectsCandidateSheet(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, t.TempDir(), "multi.xlsx", []string{"Cover", "sheet_x"}, map[string]map[string]any{
		"Cover":   {"A1": "cover"},
		"sheet_x": {"A1": "wanted", "C1": "end"},
	})

	result, err := newExcelConverter(Options{Candidates: []string{"Sheet_X", "Sheet_X2"}}).Convert(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Sheet != "sheet_x" || !result.Matched {
		t.Fatalf("expected sheet_x match, got sheet=%q matched=%t", result.Sheet, result.Matched)
	}
	row := result.Document[0][0]
	if row["A1"] != "wanted" || row["B1"] != "" || row["C1"] != "end" {
		t.Fatalf("unexpected row: %#v", row)
	}
}

func TestConverter_IsIdempotent(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, t.TempDir(), "stable.xlsx", []string{"Data"}, map[string]map[string]any{
		"Data": {"A1": "one", "B3": 3.5, "C2": "three"},
	})

	converter := newExcelConverter(Options{})
	first, err := converter.Convert(path)
	if err != nil {
		t.Fatalf("first conversion: %v", err)
	}
	second, err := converter.Convert(path)
	if err != nil {
		t.Fatalf("second conversion: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results:\n%#v\n%#v", first, second)
	}
}

func TestConverter_EmptyWorksheetYieldsNoRows(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, t.TempDir(), "empty.xlsx", []string{"Blank"}, nil)

	result, err := newExcelConverter(Options{}).Convert(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Document) != 0 || result.Rows != 0 || result.Cols != 0 {
		t.Fatalf("expected empty result, got %#v", result)
	}
}

func TestConverter_InputErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	converter := newExcelConverter(Options{})

	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "empty path", path: "", want: ErrInvalidInput},
		{name: "blank path", path: "   ", want: ErrInvalidInput},
		{name: "missing file", path: "/no/such/file.xlsx", want: ErrNotFound},
		{name: "directory", path: dir, want: ErrNotFound},
	}

	for _, tc := range tests {
		_, err := converter.Convert(tc.path)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestConverter_OpenFailureIsConversionError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.xlsx")
	if err := os.WriteFile(path, []byte("not a workbook"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := newExcelConverter(Options{}).Convert(path)
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if convErr.Stage != StageOpen {
		t.Fatalf("expected open stage, got %q", convErr.Stage)
	}
	if Classify(err) != OutcomeFailed {
		t.Fatalf("expected failed outcome, got %q", Classify(err))
	}
}

func TestConverter_ReleasesDocumentOnEveryPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "any.xlsx")
	if err := os.WriteFile(path, []byte("placeholder"), 0o644); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("cell read failed")
	broken := &fakeSheet{
		name:    "A",
		cells:   [][]string{{"x"}},
		cellErr: boom,
		failAt:  [2]int{1, 1},
	}

	tests := []struct {
		name    string
		doc     *fakeDocument
		wantErr error
	}{
		{name: "success", doc: docWithSheets("A")},
		{name: "resolver failure", doc: &fakeDocument{}, wantErr: ErrNoWorksheets},
		{name: "flattener failure", doc: &fakeDocument{sheets: []workbook.Worksheet{broken}}, wantErr: boom},
	}

	for _, tc := range tests {
		converter := NewConverter(&fakeProvider{doc: tc.doc}, Options{})
		_, err := converter.Convert(path)
		if tc.wantErr == nil && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
		if tc.doc.closed != 1 {
			t.Fatalf("%s: expected document closed once, got %d", tc.name, tc.doc.closed)
		}
	}
}

func TestConverter_CloseFailureFailsConversion(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "any.xlsx")
	if err := os.WriteFile(path, []byte("placeholder"), 0o644); err != nil {
		t.Fatal(err)
	}

	closeErr := errors.New("close failed")
	doc := docWithSheets("A")
	doc.closeErr = closeErr

	result, err := NewConverter(&fakeProvider{doc: doc}, Options{}).Convert(path)
	if !errors.Is(err, closeErr) {
		t.Fatalf("expected close error, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected no result, got %#v", result)
	}
}

func TestConverter_AllowedRoots(t *testing.T) {
	t.Parallel()

	allowed := t.TempDir()
	outside := t.TempDir()
	inside := writeWorkbook(t, allowed, "in.xlsx", []string{"S"}, map[string]map[string]any{"S": {"A1": "ok"}})
	other := writeWorkbook(t, outside, "out.xlsx", []string{"S"}, map[string]map[string]any{"S": {"A1": "no"}})

	converter := newExcelConverter(Options{AllowedRoots: []string{allowed}})
	if _, err := converter.Convert(inside); err != nil {
		t.Fatalf("expected file inside root to convert: %v", err)
	}
	if _, err := converter.Convert(other); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound outside allowed roots, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want Outcome
	}{
		{err: nil, want: OutcomeOK},
		{err: ErrInvalidInput, want: OutcomeInvalidInput},
		{err: errors.Join(ErrNotFound), want: OutcomeNotFound},
		{err: &ConversionError{Stage: StageResolve, Err: ErrNoWorksheets}, want: OutcomeFailed},
	}
	for _, tc := range tests {
		if got := Classify(tc.err); got != tc.want {
			t.Fatalf("classify %v: want %q, got %q", tc.err, tc.want, got)
		}
	}
}
