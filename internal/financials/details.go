package financials

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ternarybob/finhealth/internal/models"
)

// ErrUnknownCategory is returned for a category outside the fixed set.
var ErrUnknownCategory = errors.New("unknown detail category")

// detailValue formats one side of a direct row. Unlike the ratio path the
// placeholder is not mapped to zero, so it fails to parse and reads as missing.
func detailValue(table *models.Table, label, period string) string {
	row, ok := table.FindRow(label)
	if !ok {
		return models.MissingValue
	}
	raw, ok := row.Cell(period)
	if !ok {
		return models.MissingValue
	}
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return models.MissingValue
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return models.MissingValue
	}
	return groupedInteger(v)
}

// detailChange compares two formatted sides.
func detailChange(current, previous string) string {
	if current == models.MissingValue || previous == models.MissingValue {
		return models.MissingValue
	}
	c, err := parseFormatted(current)
	if err != nil {
		return models.MissingValue
	}
	p, err := parseFormatted(previous)
	if err != nil {
		return models.MissingValue
	}
	if p == 0 {
		return models.NotApplicable
	}
	return fmt.Sprintf("%+.0f%%", (c-p)/p*100)
}

func directItem(table *models.Table, label string, periods models.PeriodPair) models.DetailItem {
	cur := detailValue(table, label, periods.Current)
	prev := detailValue(table, label, periods.Previous)
	return models.DetailItem{Current: cur, Previous: prev, Change: detailChange(cur, prev)}
}

// currentRatioItem builds the 流动比率 row from the formatted current assets
// and current liabilities, so it rounds differently from the core indicator.
func currentRatioItem(balance *models.Table, periods models.PeriodPair) models.DetailItem {
	missing := models.DetailItem{
		Current:  models.MissingValue,
		Previous: models.MissingValue,
		Change:   models.MissingValue,
	}

	var nums [4]float64
	sides := []string{
		detailValue(balance, LabelCurrentAssets, periods.Current),
		detailValue(balance, LabelCurrentLiabilities, periods.Current),
		detailValue(balance, LabelCurrentAssets, periods.Previous),
		detailValue(balance, LabelCurrentLiabilities, periods.Previous),
	}
	for i, s := range sides {
		if s == models.MissingValue {
			return missing
		}
		v, err := parseFormatted(s)
		if err != nil {
			return missing
		}
		nums[i] = v
	}
	if nums[1] == 0 || nums[3] == 0 {
		return missing
	}

	cur := fmt.Sprintf("%.0f%%", nums[0]/nums[1]*100)
	prev := fmt.Sprintf("%.0f%%", nums[2]/nums[3]*100)

	c, errC := parseFormatted(cur)
	p, errP := parseFormatted(prev)
	if errC != nil || errP != nil {
		return missing
	}
	return models.DetailItem{Current: cur, Previous: prev, Change: fmt.Sprintf("%+.0f%%", c-p)}
}

// ExtractDetails builds the fixed item list of one category for the period
// pair. Missing cells never fail the extraction; they show as 缺失.
func ExtractDetails(balance, cashflow, income *models.Table, periods models.PeriodPair, category Category) (models.DetailGroup, error) {
	items, ok := categoryItems[category]
	if !ok {
		return models.DetailGroup{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	group := models.NewDetailGroup()
	for _, item := range items {
		switch item.source {
		case fromBalance:
			group.Set(item.label, directItem(balance, item.label, periods))
		case fromIncome:
			group.Set(item.label, directItem(income, item.label, periods))
		case fromCashFlow:
			group.Set(item.label, directItem(cashflow, item.label, periods))
		case derived:
			group.Set(item.label, currentRatioItem(balance, periods))
		}
	}
	return group, nil
}

// ExtractAllDetails builds all four categories.
func ExtractAllDetails(balance, cashflow, income *models.Table, periods models.PeriodPair) (*models.DetailData, error) {
	groups := make(map[Category]models.DetailGroup, len(categoryItems))
	for _, c := range Categories() {
		g, err := ExtractDetails(balance, cashflow, income, periods, c)
		if err != nil {
			return nil, err
		}
		groups[c] = g
	}
	return &models.DetailData{
		CashFlowRisk:      groups[CategoryCash],
		SupplyChainRisk:   groups[CategorySupply],
		ProfitabilityRisk: groups[CategoryProfit],
		OtherRisk:         groups[CategoryOther],
	}, nil
}
