package workbook

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var excelExtensions = map[string]bool{
	"xlsx": true,
	"xlsm": true,
	"xltx": true,
	"xltm": true,
}

type ExcelProvider struct {
	cfg ProviderConfig
}

func NewExcelProvider(cfg ProviderConfig) *ExcelProvider {
	return &ExcelProvider{cfg: cfg}
}

func (p *ExcelProvider) Open(path string) (Document, error) {
	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !excelExtensions[extension] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	file, err := excelize.OpenFile(path, p.options())
	if err != nil {
		return nil, fmt.Errorf("open excel file %s: %w", path, err)
	}

	names := file.GetSheetList()
	doc := &excelDocument{file: file, sheets: make([]Worksheet, 0, len(names))}
	for _, name := range names {
		doc.sheets = append(doc.sheets, &excelSheet{
			file: file,
			name: name,
			raw:  p.cfg.RawCellValues,
		})
	}
	return doc, nil
}

func (p *ExcelProvider) options() excelize.Options {
	return excelize.Options{
		Password:          p.cfg.Password,
		RawCellValue:      p.cfg.RawCellValues,
		UnzipSizeLimit:    p.cfg.UnzipSizeLimit,
		UnzipXMLSizeLimit: p.cfg.UnzipXMLSizeLimit,
	}
}

type excelDocument struct {
	file   *excelize.File
	sheets []Worksheet
}

func (d *excelDocument) Worksheets() []Worksheet {
	return d.sheets
}

func (d *excelDocument) Close() error {
	if err := d.file.Close(); err != nil {
		return fmt.Errorf("close excel file: %w", err)
	}
	return nil
}

// excelSheet loads the sheet's rows on first access and serves every later
// read from that grid.
type excelSheet struct {
	file *excelize.File
	name string
	raw  bool

	loaded bool
	rows   [][]string
	cols   int
}

func (s *excelSheet) Name() string {
	return s.name
}

func (s *excelSheet) Dimension() (int, int, bool, error) {
	if err := s.load(); err != nil {
		return 0, 0, false, err
	}
	if len(s.rows) == 0 || s.cols == 0 {
		return 0, 0, false, nil
	}
	return len(s.rows), s.cols, true, nil
}

func (s *excelSheet) Cell(row, col int) (string, error) {
	if row < 1 || col < 1 {
		return "", fmt.Errorf("%w: row %d, column %d", ErrCellOutOfRange, row, col)
	}
	if err := s.load(); err != nil {
		return "", err
	}
	if row > len(s.rows) {
		return "", nil
	}
	values := s.rows[row-1]
	if col > len(values) {
		return "", nil
	}
	return values[col-1], nil
}

func (s *excelSheet) load() error {
	if s.loaded {
		return nil
	}

	rows, err := s.file.GetRows(s.name, excelize.Options{RawCellValue: s.raw})
	if err != nil {
		return fmt.Errorf("read rows from sheet %s: %w", s.name, err)
	}

	cols := 0
	for r, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
		if !s.raw {
			continue
		}
		if err := s.renderBooleans(r+1, row); err != nil {
			return err
		}
	}

	s.rows = rows
	s.cols = cols
	s.loaded = true
	return nil
}

// renderBooleans rewrites raw boolean cells ("1"/"0") as TRUE/FALSE, the
// text excelize produces for them in formatted mode.
func (s *excelSheet) renderBooleans(rowNum int, row []string) error {
	for c, value := range row {
		if value != "1" && value != "0" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(c+1, rowNum)
		if err != nil {
			return err
		}
		cellType, err := s.file.GetCellType(s.name, cell)
		if err != nil {
			return fmt.Errorf("read cell type %s!%s: %w", s.name, cell, err)
		}
		if cellType != excelize.CellTypeBool {
			continue
		}
		if value == "1" {
			row[c] = "TRUE"
		} else {
			row[c] = "FALSE"
		}
	}
	return nil
}
