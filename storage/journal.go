package storage

import (
	"time"

	"sheetgrid/convert"
)

// NewConversion builds the journal entry for one Convert call that started
// at startedAt. source names the caller, e.g. "cli" or "http".
func NewConversion(source, path string, startedAt time.Time, result *convert.Result, err error) Conversion {
	entry := Conversion{
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Path:      path,
		Outcome:   string(convert.Classify(err)),
		Source:    source,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if result != nil {
		entry.Sheet = result.Sheet
		entry.Matched = result.Matched
		entry.Rows = result.Rows
		entry.Cols = result.Cols
	}
	return entry
}
