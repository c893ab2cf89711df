// Package convert turns one worksheet of a spreadsheet document into an
// address-keyed, JSON-serializable grid.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sheetgrid/workbook"
)

type Options struct {
	// Candidates are worksheet names tried in order before falling back
	// to the document's first worksheet.
	Candidates    []string
	AddressPolicy AddressPolicy
	// AllowedRoots restricts conversions to files below one of these
	// directories. Empty means unrestricted.
	AllowedRoots []string
}

type Result struct {
	Path     string
	Sheet    string
	Matched  bool
	Rows     int
	Cols     int
	Document Document
}

// Converter is stateless between calls and safe for concurrent use; every
// Convert opens and releases its own document.
type Converter struct {
	provider workbook.Provider
	options  Options
}

func NewConverter(provider workbook.Provider, options Options) *Converter {
	if options.AddressPolicy == "" {
		options.AddressPolicy = AddressSingle
	}
	return &Converter{provider: provider, options: options}
}

func (c *Converter) Convert(path string) (result *Result, err error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrInvalidInput
	}
	if err := c.checkFile(path); err != nil {
		return nil, err
	}

	doc, err := c.provider.Open(path)
	if err != nil {
		return nil, &ConversionError{Stage: StageOpen, Path: path, Err: err}
	}
	defer func() {
		closeErr := doc.Close()
		if err == nil && closeErr != nil {
			result = nil
			err = &ConversionError{Stage: StageOpen, Path: path, Err: closeErr}
		}
	}()

	sheet, matched, err := resolveWorksheet(doc, c.options.Candidates)
	if err != nil {
		return nil, &ConversionError{Stage: StageResolve, Path: path, Err: err}
	}

	grid, err := Flatten(sheet, c.options.AddressPolicy)
	if err != nil {
		return nil, &ConversionError{Stage: StageFlatten, Path: path, Err: err}
	}

	result = &Result{
		Path:     path,
		Sheet:    sheet.Name(),
		Matched:  matched,
		Rows:     len(grid),
		Document: grid,
	}
	if len(grid) > 0 && len(grid[0]) > 0 {
		result.Cols = len(grid[0][0])
	}
	return result, nil
}

func (c *Converter) checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if len(c.options.AllowedRoots) == 0 {
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	for _, root := range c.options.AllowedRoots {
		rootAbs, err := filepath.Abs(root)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(rootAbs, abs)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, path)
}
