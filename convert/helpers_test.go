package convert

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"sheetgrid/workbook"
)

type fakeSheet struct {
	name      string
	cells     [][]string
	cols      int
	extentErr error
	cellErr   error
	failAt    [2]int
}

func (s *fakeSheet) Name() string { return s.name }

func (s *fakeSheet) Dimension() (int, int, bool, error) {
	if s.extentErr != nil {
		return 0, 0, false, s.extentErr
	}
	if len(s.cells) == 0 {
		return 0, 0, false, nil
	}
	cols := s.cols
	for _, row := range s.cells {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return len(s.cells), cols, true, nil
}

func (s *fakeSheet) Cell(row, col int) (string, error) {
	if s.cellErr != nil && s.failAt == [2]int{row, col} {
		return "", s.cellErr
	}
	if row > len(s.cells) || col > len(s.cells[row-1]) {
		return "", nil
	}
	return s.cells[row-1][col-1], nil
}

type fakeDocument struct {
	sheets   []workbook.Worksheet
	closed   int
	closeErr error
}

func (d *fakeDocument) Worksheets() []workbook.Worksheet { return d.sheets }

func (d *fakeDocument) Close() error {
	d.closed++
	return d.closeErr
}

type fakeProvider struct {
	doc     *fakeDocument
	openErr error
}

func (p *fakeProvider) Open(string) (workbook.Document, error) {
	if p.openErr != nil {
		return nil, p.openErr
	}
	return p.doc, nil
}

func docWithSheets(names ...string) *fakeDocument {
	doc := &fakeDocument{}
	for _, name := range names {
		doc.sheets = append(doc.sheets, &fakeSheet{name: name})
	}
	return doc
}

// writeWorkbook saves an .xlsx with one sheet per entry of sheets, in order.
func writeWorkbook(t *testing.T, dir, fileName string, sheets []string, cells map[string]map[string]any) string {
	t.Helper()

	file := excelize.NewFile()
	defer file.Close()

	for i, name := range sheets {
		if i == 0 {
			if err := file.SetSheetName(file.GetSheetName(0), name); err != nil {
				t.Fatalf("rename first sheet: %v", err)
			}
			continue
		}
		if _, err := file.NewSheet(name); err != nil {
			t.Fatalf("create sheet %s: %v", name, err)
		}
	}
	for sheet, values := range cells {
		for cell, value := range values {
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("set %s!%s: %v", sheet, cell, err)
			}
		}
	}

	path := filepath.Join(dir, fileName)
	if err := file.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}
