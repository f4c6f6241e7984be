package financials

import (
	"errors"
	"fmt"

	"github.com/ternarybob/finhealth/internal/models"
)

var (
	// ErrMissingStatement is returned when a statement table is nil or empty.
	ErrMissingStatement = errors.New("statement is missing or empty")
	// ErrNoPeriods is returned when no reporting period could be determined.
	ErrNoPeriods = errors.New("no reporting period available")
)

// ratioInputs are the line items pulled for one period.
type ratioInputs struct {
	totalAssets        float64
	totalLiabilities   float64
	currentAssets      float64
	currentLiabilities float64
	accountsPayable    float64
	accountsReceivable float64
	revenue            float64
	netProfit          float64
	operatingCost      float64
	operatingCashFlow  float64
}

func readInputs(balance, income, cashflow *models.Table, period string) ratioInputs {
	return ratioInputs{
		totalAssets:        Resolve(balance, LabelTotalAssets, period),
		totalLiabilities:   Resolve(balance, LabelTotalLiabilities, period),
		currentAssets:      Resolve(balance, LabelCurrentAssets, period),
		currentLiabilities: Resolve(balance, LabelCurrentLiabilities, period),
		accountsPayable:    Resolve(balance, LabelAccountsPayable, period),
		accountsReceivable: Resolve(balance, LabelAccountsReceivable, period),
		revenue:            Resolve(income, LabelRevenue, period),
		netProfit:          Resolve(income, LabelNetProfit, period),
		operatingCost:      Resolve(income, LabelOperatingCost, period),
		operatingCashFlow:  Resolve(cashflow, LabelOperatingCashFlow, period),
	}
}

// ratioValues are the five ratios for one period.
type ratioValues struct {
	debtRatio          float64
	payableTurnover    float64
	profitCashRate     float64
	currentRatio       float64
	receivableTurnover float64
}

// safeDiv returns num/den, or 0 when den is not positive.
func safeDiv(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

func (in ratioInputs) ratios() ratioValues {
	return ratioValues{
		debtRatio:          safeDiv(in.totalLiabilities, in.totalAssets) * 100,
		payableTurnover:    safeDiv(in.operatingCost, in.accountsPayable),
		profitCashRate:     safeDiv(in.operatingCashFlow, in.netProfit),
		currentRatio:       safeDiv(in.currentAssets, in.currentLiabilities) * 100,
		receivableTurnover: safeDiv(in.revenue, in.accountsReceivable),
	}
}

// percentPointIndicator displays both sides as percentages and the change as
// an absolute point delta, with the given number of decimals.
func percentPointIndicator(current, previous float64, decimals int) models.Indicator {
	return models.Indicator{
		Value:    fmt.Sprintf("%.*f%%", decimals, current),
		Previous: fmt.Sprintf("%.*f%%", decimals, previous),
		Trend:    trendOf(current, previous),
		Change:   fmt.Sprintf("%+.*f%%", decimals, current-previous),
	}
}

// turnoverIndicator displays both sides to one decimal and the change as a
// relative percent.
func turnoverIndicator(current, previous float64) models.Indicator {
	return models.Indicator{
		Value:    fmt.Sprintf("%.1f", current),
		Previous: fmt.Sprintf("%.1f", previous),
		Trend:    trendOf(current, previous),
		Change:   relativeChange(current, previous),
	}
}

// ComputeRatios derives the five core indicators for the period pair.
// Missing line items count as zero; a zero denominator yields a zero ratio.
// The result is all or nothing: unusable inputs fail the whole computation.
func ComputeRatios(balance, income, cashflow *models.Table, periods models.PeriodPair) (*models.CoreIndicators, error) {
	if err := checkInputs(balance, income, cashflow, periods); err != nil {
		return nil, err
	}

	cur := readInputs(balance, income, cashflow, periods.Current).ratios()
	prev := readInputs(balance, income, cashflow, periods.Previous).ratios()

	return &models.CoreIndicators{
		DebtRatio:          percentPointIndicator(cur.debtRatio, prev.debtRatio, 1),
		PayableTurnover:    turnoverIndicator(cur.payableTurnover, prev.payableTurnover),
		ProfitCashRate:     turnoverIndicator(cur.profitCashRate, prev.profitCashRate),
		CurrentRatio:       percentPointIndicator(cur.currentRatio, prev.currentRatio, 0),
		ReceivableTurnover: turnoverIndicator(cur.receivableTurnover, prev.receivableTurnover),
	}, nil
}

func checkInputs(balance, income, cashflow *models.Table, periods models.PeriodPair) error {
	named := []struct {
		name  models.StatementType
		table *models.Table
	}{
		{models.StatementBalanceSheet, balance},
		{models.StatementIncome, income},
		{models.StatementCashFlow, cashflow},
	}
	for _, n := range named {
		if n.table.Empty() {
			return fmt.Errorf("%s: %w", n.name, ErrMissingStatement)
		}
	}
	if periods.Current == "" || periods.Previous == "" {
		return ErrNoPeriods
	}
	return nil
}
