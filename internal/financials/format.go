package financials

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ternarybob/finhealth/internal/models"
)

// trendOf compares raw values, never the rounded display strings.
func trendOf(current, previous float64) models.Trend {
	switch {
	case current > previous:
		return models.TrendUp
	case current < previous:
		return models.TrendDown
	default:
		return models.TrendNeutral
	}
}

// relativeChange formats (current-previous)/previous as a signed whole percent,
// or N/A when previous is not positive.
func relativeChange(current, previous float64) string {
	if previous <= 0 {
		return models.NotApplicable
	}
	return fmt.Sprintf("%+.0f%%", (current-previous)/previous*100)
}

// groupedInteger renders a value rounded to a whole number with comma
// thousands separators, e.g. 1234567.4 -> "1,234,567".
func groupedInteger(v float64) string {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 0, 64), 64)
	if err != nil {
		rounded = v
	}
	return humanize.Commaf(rounded)
}

// parseFormatted reads back a string produced by groupedInteger or a percent
// display.
func parseFormatted(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(strings.ReplaceAll(s, ",", ""), "%"), 64)
}
