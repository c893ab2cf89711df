package convert

import (
	"strings"

	"sheetgrid/workbook"
)

// ResolveWorksheet returns the first worksheet whose name matches one of
// candidates (tried in order, case-insensitive), or the document's first
// worksheet when nothing matches.
func ResolveWorksheet(doc workbook.Document, candidates []string) (workbook.Worksheet, error) {
	sheet, _, err := resolveWorksheet(doc, candidates)
	return sheet, err
}

func resolveWorksheet(doc workbook.Document, candidates []string) (workbook.Worksheet, bool, error) {
	sheets := doc.Worksheets()
	if len(sheets) == 0 {
		return nil, false, ErrNoWorksheets
	}

	for _, candidate := range candidates {
		for _, sheet := range sheets {
			if strings.EqualFold(sheet.Name(), candidate) {
				return sheet, true, nil
			}
		}
	}
	return sheets[0], false, nil
}
