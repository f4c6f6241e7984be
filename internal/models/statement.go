package models

// StatementType names one of the three core financial statements using the
// provider's Chinese type label.
type StatementType string

const (
	// StatementBalanceSheet is the balance sheet (资产负债表)
	StatementBalanceSheet StatementType = "资产负债表"
	// StatementIncome is the income statement (利润表)
	StatementIncome StatementType = "利润表"
	// StatementCashFlow is the cash-flow statement (现金流量表)
	StatementCashFlow StatementType = "现金流量表"
)

// StatementTypes lists the statements fetched for every company, in fetch order.
var StatementTypes = []StatementType{
	StatementBalanceSheet,
	StatementIncome,
	StatementCashFlow,
}

// LabelColumn is the header of column 0 in every statement table.
const LabelColumn = "报表日期"

// Row is a single line item of a statement.
// Cells maps period identifier to the raw provider string. A period with no
// entry (or a nil pointer) means the provider sent no value for it.
type Row struct {
	Label string             `json:"label"`
	Cells map[string]*string `json:"cells"`
}

// Cell returns the raw value for a period and whether one was present.
func (r *Row) Cell(period string) (string, bool) {
	if r == nil || r.Cells == nil {
		return "", false
	}
	v, ok := r.Cells[period]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// Table is a statement laid out as rows of line items by reporting period.
// Periods are ordered most recent first, as delivered by the provider.
type Table struct {
	Code    string        `json:"code"`
	Type    StatementType `json:"type"`
	Periods []string      `json:"periods"`
	Rows    []Row         `json:"rows"`
}

// Columns returns the column list: the label column followed by the periods.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	cols := make([]string, 0, len(t.Periods)+1)
	cols = append(cols, LabelColumn)
	return append(cols, t.Periods...)
}

// Empty reports whether the table carries no usable data.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0 || len(t.Periods) == 0
}

// FindRow returns the first row whose label equals label exactly.
func (t *Table) FindRow(label string) (*Row, bool) {
	if t == nil {
		return nil, false
	}
	for i := range t.Rows {
		if t.Rows[i].Label == label {
			return &t.Rows[i], true
		}
	}
	return nil, false
}

// PeriodPair holds the current and previous reporting periods of a company.
// When only one period exists, Previous equals Current.
type PeriodPair struct {
	Current  string `json:"current"`
	Previous string `json:"previous"`
}

// Degenerate reports whether both sides point at the same period.
func (p PeriodPair) Degenerate() bool {
	return p.Current == p.Previous
}

// PeriodPairFrom derives the period pair from a table's column list:
// current is column 1, previous is column 2 or column 1 when absent.
func PeriodPairFrom(t *Table) (PeriodPair, bool) {
	cols := t.Columns()
	if len(cols) < 2 {
		return PeriodPair{}, false
	}
	pair := PeriodPair{Current: cols[1], Previous: cols[1]}
	if len(cols) > 2 {
		pair.Previous = cols[2]
	}
	return pair, true
}
