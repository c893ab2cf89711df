package cmd

import (
	"fmt"
	"strings"

	"sheetgrid/config"
	"sheetgrid/convert"
	"sheetgrid/storage"
	"sheetgrid/workbook"
)

type converterOverrides struct {
	sheets        []string
	addressPolicy string
	allowedRoots  []string
}

func buildConverter(cfg config.Config, overrides converterOverrides) (*convert.Converter, error) {
	policyValue := cfg.Convert.AddressPolicy
	if strings.TrimSpace(overrides.addressPolicy) != "" {
		policyValue = overrides.addressPolicy
	}
	policy, err := convert.ParseAddressPolicy(policyValue)
	if err != nil {
		return nil, err
	}

	candidates := cfg.Sheets.Candidates
	if len(overrides.sheets) > 0 {
		candidates = overrides.sheets
	}

	provider := workbook.NewExcelProvider(workbook.ProviderConfig{
		Password:          cfg.Provider.Password,
		RawCellValues:     cfg.Convert.RawValues,
		UnzipSizeLimit:    cfg.Provider.UnzipSizeLimit,
		UnzipXMLSizeLimit: cfg.Provider.UnzipXMLSizeLimit,
	})

	return convert.NewConverter(provider, convert.Options{
		Candidates:    candidates,
		AddressPolicy: policy,
		AllowedRoots:  overrides.allowedRoots,
	}), nil
}

// openJournal returns nil without error when journaling is off and no
// explicit database path was given.
func openJournal(cfg config.Config, dbPathOverride string) (*storage.SQLiteStore, error) {
	dbPath := cfg.Journal.DBPath
	if strings.TrimSpace(dbPathOverride) != "" {
		dbPath = dbPathOverride
	} else if !cfg.Journal.Enabled {
		return nil, nil
	}

	store, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open conversion journal: %w", err)
	}
	return store, nil
}
