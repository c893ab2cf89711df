package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// AddressPolicy decides how columns are named once a sheet is wider than
// the single-letter range A..Z.
type AddressPolicy string

const (
	// AddressSingle only names columns 1..26 and rejects wider sheets.
	AddressSingle AddressPolicy = "single"
	// AddressExtended continues with AA, AB, ... up to the format's column limit.
	AddressExtended AddressPolicy = "extended"
)

func ParseAddressPolicy(value string) (AddressPolicy, error) {
	switch AddressPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", AddressSingle:
		return AddressSingle, nil
	case AddressExtended:
		return AddressExtended, nil
	default:
		return "", fmt.Errorf("invalid address policy %q (supported: single|extended)", value)
	}
}

// ColumnLetter returns the single uppercase letter naming column col (1..26).
func ColumnLetter(col int) (string, error) {
	if col < 1 || col > 26 {
		return "", fmt.Errorf("%w: column %d (single-letter addressing covers 1..26)", ErrColumnOutOfRange, col)
	}
	return string(rune('A' + col - 1)), nil
}

func (p AddressPolicy) ColumnName(col int) (string, error) {
	if p != AddressExtended {
		return ColumnLetter(col)
	}
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrColumnOutOfRange, err)
	}
	return name, nil
}

// Address builds the spreadsheet-style identifier of a cell, e.g. "B7".
func (p AddressPolicy) Address(row, col int) (string, error) {
	name, err := p.ColumnName(col)
	if err != nil {
		return "", err
	}
	return name + strconv.Itoa(row), nil
}
