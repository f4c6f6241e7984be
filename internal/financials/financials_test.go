package financials

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/finhealth/internal/models"
)

const (
	cur  = "2024-12-31"
	prev = "2023-12-31"
)

// cells maps label to [current, previous]; an empty string leaves the cell
// absent.
type cells map[string][2]string

func newTable(typ models.StatementType, values cells) *models.Table {
	t := &models.Table{Code: "600000", Type: typ, Periods: []string{cur, prev}}
	for label, v := range values {
		row := models.Row{Label: label, Cells: map[string]*string{}}
		if v[0] != "" {
			s := v[0]
			row.Cells[cur] = &s
		}
		if v[1] != "" {
			s := v[1]
			row.Cells[prev] = &s
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

var pair = models.PeriodPair{Current: cur, Previous: prev}

func TestParseCell(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Cell
	}{
		{"plain", "1234.5", Cell{Value: 1234.5}},
		{"thousands separators", "1,234,567", Cell{Value: 1234567}},
		{"negative", "-2,000", Cell{Value: -2000}},
		{"whitespace", "  42 ", Cell{Value: 42}},
		{"placeholder", "--", Cell{Missing: true}},
		{"empty", "", Cell{Missing: true}},
		{"text", "abc", Cell{Missing: true}},
		{"nan", "NaN", Cell{Missing: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCell(tt.raw))
		})
	}
}

func TestResolve(t *testing.T) {
	balance := newTable(models.StatementBalanceSheet, cells{
		LabelTotalAssets:   {"1,234,567", "--"},
		LabelInventory:     {"abc", ""},
		LabelMonetaryFunds: {"0", "10"},
	})

	assert.Equal(t, 1234567.0, Resolve(balance, LabelTotalAssets, cur))
	assert.Equal(t, 0.0, Resolve(balance, LabelTotalAssets, prev))
	assert.Equal(t, 0.0, Resolve(balance, LabelInventory, cur))
	assert.Equal(t, 0.0, Resolve(balance, LabelInventory, prev))
	assert.Equal(t, 0.0, Resolve(balance, "不存在", cur))
	assert.Equal(t, 0.0, Resolve(nil, LabelTotalAssets, cur))

	// zero and missing are distinguishable through the typed cell
	assert.Equal(t, Cell{Value: 0}, ResolveCell(balance, LabelMonetaryFunds, cur))
	assert.True(t, ResolveCell(balance, LabelTotalAssets, prev).Missing)
	assert.True(t, ResolveCell(balance, "不存在", cur).Missing)
}

func TestResolve_FirstMatchingRowWins(t *testing.T) {
	a, b := "1", "2"
	table := &models.Table{
		Periods: []string{cur},
		Rows: []models.Row{
			{Label: LabelNetProfit, Cells: map[string]*string{cur: &a}},
			{Label: LabelNetProfit, Cells: map[string]*string{cur: &b}},
		},
	}
	assert.Equal(t, 1.0, Resolve(table, LabelNetProfit, cur))
}

func fullStatements() (balance, income, cashflow *models.Table) {
	balance = newTable(models.StatementBalanceSheet, cells{
		LabelTotalAssets:        {"5,000,000", "4,000,000"},
		LabelTotalLiabilities:   {"2,000,000", "1,000,000"},
		LabelCurrentAssets:      {"300", "200"},
		LabelCurrentLiabilities: {"200", "200"},
		LabelAccountsPayable:    {"100", "100"},
		LabelAccountsReceivable: {"50", "0"},
		LabelMonetaryFunds:      {"1,234,567.4", "1,000,000"},
		LabelPrepayments:        {"--", "10"},
		LabelInventory:          {"500", "0"},
	})
	income = newTable(models.StatementIncome, cells{
		LabelRevenue:       {"1,000", "900"},
		LabelNetProfit:     {"-10", "100"},
		LabelOperatingCost: {"1000", "800"},
	})
	cashflow = newTable(models.StatementCashFlow, cells{
		LabelOperatingCashFlow: {"50", "120"},
	})
	return balance, income, cashflow
}

func TestComputeRatios_DebtRatio(t *testing.T) {
	balance, income, cashflow := fullStatements()

	core, err := ComputeRatios(balance, income, cashflow, pair)
	require.NoError(t, err)

	assert.Equal(t, models.Indicator{
		Value:    "40.0%",
		Previous: "25.0%",
		Trend:    models.TrendUp,
		Change:   "+15.0%",
	}, core.DebtRatio)
}

func TestComputeRatios_AllIndicators(t *testing.T) {
	balance, income, cashflow := fullStatements()

	core, err := ComputeRatios(balance, income, cashflow, pair)
	require.NoError(t, err)

	assert.Equal(t, models.Indicator{Value: "10.0", Previous: "8.0", Trend: models.TrendUp, Change: "+25%"}, core.PayableTurnover)

	// net profit is negative in the current period, so the rate is 0
	assert.Equal(t, models.Indicator{Value: "0.0", Previous: "1.2", Trend: models.TrendDown, Change: "-100%"}, core.ProfitCashRate)

	// absolute point delta, not relative
	assert.Equal(t, models.Indicator{Value: "150%", Previous: "100%", Trend: models.TrendUp, Change: "+50%"}, core.CurrentRatio)

	// previous receivable is 0, so previous turnover is 0 and the change is N/A
	assert.Equal(t, models.Indicator{Value: "20.0", Previous: "0.0", Trend: models.TrendUp, Change: models.NotApplicable}, core.ReceivableTurnover)
}

func TestComputeRatios_ZeroAssetsYieldsZeroDebtRatio(t *testing.T) {
	balance := newTable(models.StatementBalanceSheet, cells{
		LabelTotalAssets:      {"0", "-5"},
		LabelTotalLiabilities: {"100", "100"},
	})
	income := newTable(models.StatementIncome, cells{LabelRevenue: {"1", "1"}})
	cashflow := newTable(models.StatementCashFlow, cells{LabelOperatingCashFlow: {"1", "1"}})

	core, err := ComputeRatios(balance, income, cashflow, pair)
	require.NoError(t, err)
	assert.Equal(t, "0.0%", core.DebtRatio.Value)
	assert.Equal(t, "0.0%", core.DebtRatio.Previous)
	assert.Equal(t, models.TrendNeutral, core.DebtRatio.Trend)
	assert.Equal(t, "+0.0%", core.DebtRatio.Change)
}

func TestComputeRatios_TrendUsesRawValues(t *testing.T) {
	// 1/3 and 0.33 both display as 33.3% but differ raw
	balance := newTable(models.StatementBalanceSheet, cells{
		LabelTotalAssets:      {"300", "10000"},
		LabelTotalLiabilities: {"100", "3330"},
	})
	income := newTable(models.StatementIncome, cells{LabelRevenue: {"1", "1"}})
	cashflow := newTable(models.StatementCashFlow, cells{LabelOperatingCashFlow: {"1", "1"}})

	core, err := ComputeRatios(balance, income, cashflow, pair)
	require.NoError(t, err)
	assert.Equal(t, core.DebtRatio.Value, core.DebtRatio.Previous)
	assert.Equal(t, models.TrendUp, core.DebtRatio.Trend)
}

func TestComputeRatios_Failures(t *testing.T) {
	balance, income, cashflow := fullStatements()

	_, err := ComputeRatios(nil, income, cashflow, pair)
	assert.ErrorIs(t, err, ErrMissingStatement)

	_, err = ComputeRatios(balance, &models.Table{}, cashflow, pair)
	assert.ErrorIs(t, err, ErrMissingStatement)

	_, err = ComputeRatios(balance, income, cashflow, models.PeriodPair{})
	assert.ErrorIs(t, err, ErrNoPeriods)
}

func TestRelativeChange(t *testing.T) {
	assert.Equal(t, "+25%", relativeChange(10, 8))
	assert.Equal(t, "-50%", relativeChange(1, 2))
	assert.Equal(t, "+0%", relativeChange(3, 3))
	assert.Equal(t, models.NotApplicable, relativeChange(5, 0))
	assert.Equal(t, models.NotApplicable, relativeChange(5, -1))
}

func TestExtractDetails_Cash(t *testing.T) {
	balance, income, cashflow := fullStatements()

	group, err := ExtractDetails(balance, cashflow, income, pair, CategoryCash)
	require.NoError(t, err)

	assert.Equal(t, []string{
		LabelMonetaryFunds,
		LabelCurrentLiabilities,
		LabelCurrentRatioDerived,
		LabelOperatingCashFlow,
		LabelNetProfit,
		LabelOperatingCost,
	}, group.Labels())

	funds, _ := group.Get(LabelMonetaryFunds)
	assert.Equal(t, models.DetailItem{Current: "1,234,567", Previous: "1,000,000", Change: "+23%"}, funds)

	ratio, _ := group.Get(LabelCurrentRatioDerived)
	assert.Equal(t, models.DetailItem{Current: "150%", Previous: "100%", Change: "+50%"}, ratio)

	profit, _ := group.Get(LabelNetProfit)
	assert.Equal(t, models.DetailItem{Current: "-10", Previous: "100", Change: "-110%"}, profit)
}

func TestExtractDetails_MissingAndZero(t *testing.T) {
	balance, income, cashflow := fullStatements()

	group, err := ExtractDetails(balance, cashflow, income, pair, CategorySupply)
	require.NoError(t, err)

	prepay, _ := group.Get(LabelPrepayments)
	assert.Equal(t, models.DetailItem{Current: models.MissingValue, Previous: "10", Change: models.MissingValue}, prepay)

	notes, _ := group.Get(LabelNotesPayable)
	assert.Equal(t, models.DetailItem{Current: models.MissingValue, Previous: models.MissingValue, Change: models.MissingValue}, notes)

	other, err := ExtractDetails(balance, cashflow, income, pair, CategoryOther)
	require.NoError(t, err)
	inventory, _ := other.Get(LabelInventory)
	assert.Equal(t, models.DetailItem{Current: "500", Previous: "0", Change: models.NotApplicable}, inventory)
}

func TestExtractDetails_CurrentRatioMissing(t *testing.T) {
	tests := []struct {
		name   string
		values cells
	}{
		{"zero previous liabilities", cells{LabelCurrentAssets: {"300", "200"}, LabelCurrentLiabilities: {"200", "0"}}},
		{"placeholder assets", cells{LabelCurrentAssets: {"--", "200"}, LabelCurrentLiabilities: {"200", "200"}}},
		{"absent liabilities row", cells{LabelCurrentAssets: {"300", "200"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance := newTable(models.StatementBalanceSheet, tt.values)
			group, err := ExtractDetails(balance, nil, nil, pair, CategoryCash)
			require.NoError(t, err)

			item, ok := group.Get(LabelCurrentRatioDerived)
			require.True(t, ok)
			assert.Equal(t, models.DetailItem{
				Current:  models.MissingValue,
				Previous: models.MissingValue,
				Change:   models.MissingValue,
			}, item)
		})
	}
}

func TestExtractDetails_UnknownCategory(t *testing.T) {
	balance, income, cashflow := fullStatements()
	_, err := ExtractDetails(balance, cashflow, income, pair, Category("liquidity"))
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestDetailChange(t *testing.T) {
	assert.Equal(t, models.MissingValue, detailChange(models.MissingValue, "0"))
	assert.Equal(t, models.MissingValue, detailChange("0", models.MissingValue))
	assert.Equal(t, models.NotApplicable, detailChange("5", "0"))
	assert.Equal(t, "+100%", detailChange("2,000", "1,000"))
	assert.Equal(t, "-25%", detailChange("750", "1,000"))
}

func TestAnalyze(t *testing.T) {
	balance, income, cashflow := fullStatements()

	data, err := Analyze(balance, income, cashflow)
	require.NoError(t, err)

	assert.Equal(t, cur, data.ReportDate)
	assert.Equal(t, prev, data.PreviousDate)
	assert.Equal(t, "40.0%", data.CoreIndicators.DebtRatio.Value)
	assert.Equal(t, 6, data.DetailData.CashFlowRisk.Len())
	assert.Equal(t, 3, data.DetailData.SupplyChainRisk.Len())
	assert.Equal(t, 5, data.DetailData.ProfitabilityRisk.Len())
	assert.Equal(t, 6, data.DetailData.OtherRisk.Len())

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "coreIndicators")
	assert.Contains(t, decoded, "detailData")
	detail := decoded["detailData"].(map[string]any)
	for _, key := range []string{"cashFlowRisk", "supplyChainRisk", "profitabilityRisk", "otherRisk"} {
		assert.Contains(t, detail, key)
	}
}

func TestAnalyze_SinglePeriodComparesWithItself(t *testing.T) {
	balance := newTable(models.StatementBalanceSheet, cells{LabelTotalAssets: {"100", ""}})
	balance.Periods = []string{cur}
	income := newTable(models.StatementIncome, cells{LabelRevenue: {"1", ""}})
	cashflow := newTable(models.StatementCashFlow, cells{LabelOperatingCashFlow: {"1", ""}})

	data, err := Analyze(balance, income, cashflow)
	require.NoError(t, err)
	assert.Equal(t, cur, data.PreviousDate)
	assert.Equal(t, models.TrendNeutral, data.CoreIndicators.DebtRatio.Trend)
}

func TestAnalyze_NoPeriods(t *testing.T) {
	_, err := Analyze(&models.Table{}, nil, nil)
	assert.ErrorIs(t, err, ErrNoPeriods)
}
