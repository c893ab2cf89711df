package convert

import (
	"fmt"
	"strconv"

	"sheetgrid/workbook"
)

// Aggregate maps every cell address of one worksheet row to its value.
type Aggregate map[string]string

// Row holds at most one Aggregate: every column of a worksheet row is
// merged into the same map.
type Row []Aggregate

type Document []Row

// Flatten walks the worksheet's extent row by row and merges each row's
// cells into a single address-keyed aggregate. A sheet without cells
// yields an empty document. Any read failure discards the rows built so far.
func Flatten(sheet workbook.Worksheet, policy AddressPolicy) (Document, error) {
	rows, cols, ok, err := sheet.Dimension()
	if err != nil {
		return nil, fmt.Errorf("read extent of sheet %s: %w", sheet.Name(), err)
	}
	if !ok {
		return Document{}, nil
	}

	columns := make([]string, cols)
	for col := 1; col <= cols; col++ {
		name, err := policy.ColumnName(col)
		if err != nil {
			return nil, fmt.Errorf("sheet %s spans %d columns: %w", sheet.Name(), cols, err)
		}
		columns[col-1] = name
	}

	doc := make(Document, 0, rows)
	for row := 1; row <= rows; row++ {
		out := Row{}
		if cols > 0 {
			suffix := strconv.Itoa(row)
			aggregate := make(Aggregate, cols)
			for col := 1; col <= cols; col++ {
				address := columns[col-1] + suffix
				value, err := sheet.Cell(row, col)
				if err != nil {
					return nil, fmt.Errorf("read cell %s of sheet %s: %w", address, sheet.Name(), err)
				}
				aggregate[address] = value
			}
			out = append(out, aggregate)
		}
		doc = append(doc, out)
	}

	return doc, nil
}
