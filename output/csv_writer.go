package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"sheetgrid/convert"
)

// CSVWriter emits one line per worksheet row with the values in column
// order. Addresses are dropped; the position carries the column.
type CSVWriter struct{}

func (w *CSVWriter) Write(out io.Writer, doc convert.Document) error {
	writer := csv.NewWriter(out)

	for i, row := range doc {
		values, err := rowValues(row)
		if err != nil {
			return fmt.Errorf("csv row %d: %w", i+1, err)
		}
		if err := writer.Write(values); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}

func rowValues(row convert.Row) ([]string, error) {
	type cell struct {
		col   int
		value string
	}

	cells := make([]cell, 0, 16)
	for _, aggregate := range row {
		for address, value := range aggregate {
			col, _, err := excelize.CellNameToCoordinates(address)
			if err != nil {
				return nil, fmt.Errorf("decode address %q: %w", address, err)
			}
			cells = append(cells, cell{col: col, value: value})
		}
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].col < cells[j].col })

	values := make([]string, len(cells))
	for i, c := range cells {
		values[i] = c.value
	}
	return values, nil
}
