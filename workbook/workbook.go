// Package workbook opens spreadsheet documents and exposes their worksheets
// as read-only, 1-based cell grids.
package workbook

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	ErrCellOutOfRange    = errors.New("cell coordinates out of range")
)

// Document is an opened spreadsheet container. Callers own it exclusively
// and must Close it when done.
type Document interface {
	// Worksheets returns the worksheets in the document's native order.
	Worksheets() []Worksheet
	Close() error
}

type Worksheet interface {
	Name() string
	// Dimension reports the row and column count of the sheet's grid,
	// anchored at A1. ok is false when the sheet holds no cells.
	Dimension() (rows int, cols int, ok bool, err error)
	// Cell returns the stringified value at (row, col), both 1-based.
	// Cells outside the stored data read as the empty string.
	Cell(row, col int) (string, error)
}

type Provider interface {
	Open(path string) (Document, error)
}

// ProviderConfig holds the settings every document opened by a provider
// shares. It replaces any process-wide state of the underlying library.
type ProviderConfig struct {
	Password          string
	RawCellValues     bool
	UnzipSizeLimit    int64
	UnzipXMLSizeLimit int64
}
