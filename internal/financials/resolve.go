package financials

import (
	"math"
	"strconv"
	"strings"

	"github.com/ternarybob/finhealth/internal/models"
)

// placeholder is the provider token for "no data".
const placeholder = "--"

// Cell is a normalized numeric cell. Missing is set when the row or value was
// absent, empty, the placeholder, or not a number; Value is then 0.
type Cell struct {
	Value   float64
	Missing bool
}

// OrZero returns the value, or 0 for a missing cell.
func (c Cell) OrZero() float64 {
	if c.Missing {
		return 0
	}
	return c.Value
}

func missingCell() Cell {
	return Cell{Missing: true}
}

// ParseCell normalizes a raw provider string: thousands separators are
// stripped and the placeholder reads as missing.
func ParseCell(raw string) Cell {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" || s == placeholder {
		return missingCell()
	}
	s = strings.ReplaceAll(s, placeholder, "0")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return missingCell()
	}
	return Cell{Value: v}
}

// ResolveCell looks up the first row labelled label and parses its value for
// period.
func ResolveCell(table *models.Table, label, period string) Cell {
	row, ok := table.FindRow(label)
	if !ok {
		return missingCell()
	}
	raw, ok := row.Cell(period)
	if !ok {
		return missingCell()
	}
	return ParseCell(raw)
}

// Resolve returns the numeric value of a line item, treating anything missing
// as 0. Ratio computation relies on this never failing.
func Resolve(table *models.Table, label, period string) float64 {
	return ResolveCell(table, label, period).OrZero()
}
