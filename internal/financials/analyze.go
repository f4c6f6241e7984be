package financials

import (
	"fmt"

	"github.com/ternarybob/finhealth/internal/models"
)

// Analyze derives the period pair from the balance sheet and builds the core
// indicators and all detail groups.
func Analyze(balance, income, cashflow *models.Table) (*models.FinancialData, error) {
	periods, ok := models.PeriodPairFrom(balance)
	if !ok {
		return nil, ErrNoPeriods
	}

	core, err := ComputeRatios(balance, income, cashflow, periods)
	if err != nil {
		return nil, fmt.Errorf("compute ratios: %w", err)
	}

	details, err := ExtractAllDetails(balance, cashflow, income, periods)
	if err != nil {
		return nil, fmt.Errorf("extract details: %w", err)
	}

	return &models.FinancialData{
		ReportDate:     periods.Current,
		PreviousDate:   periods.Previous,
		CoreIndicators: *core,
		DetailData:     *details,
	}, nil
}
