package models

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Trend direction of a ratio between the previous and current period.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// MissingValue marks a detail value whose source cell was absent, empty,
// unparseable or the provider's placeholder for no data.
const MissingValue = "缺失"

// NotApplicable marks a relative change whose base is zero.
const NotApplicable = "N/A"

// Indicator is one ratio compared across the period pair.
type Indicator struct {
	Value    string `json:"value"`
	Previous string `json:"previous"`
	Trend    Trend  `json:"trend"`
	Change   string `json:"change"`
}

// CoreIndicators holds the five liquidity and efficiency ratios.
type CoreIndicators struct {
	DebtRatio          Indicator `json:"debtRatio"`
	PayableTurnover    Indicator `json:"payableTurnover"`
	ProfitCashRate     Indicator `json:"profitCashRate"`
	CurrentRatio       Indicator `json:"currentRatio"`
	ReceivableTurnover Indicator `json:"receivableTurnover"`
}

// DetailItem is a raw line item shown for both periods.
type DetailItem struct {
	Current  string `json:"current"`
	Previous string `json:"previous"`
	Change   string `json:"change"`
}

// DetailGroup is an ordered label -> item mapping. It marshals to a JSON
// object whose keys keep insertion order.
type DetailGroup struct {
	items *orderedmap.OrderedMap[string, DetailItem]
}

// NewDetailGroup creates an empty group.
func NewDetailGroup() DetailGroup {
	return DetailGroup{items: orderedmap.New[string, DetailItem]()}
}

// Set adds or replaces an item. Replacing keeps the original position.
func (g *DetailGroup) Set(label string, item DetailItem) {
	if g.items == nil {
		g.items = orderedmap.New[string, DetailItem]()
	}
	g.items.Set(label, item)
}

// Get returns the item for a label.
func (g DetailGroup) Get(label string) (DetailItem, bool) {
	if g.items == nil {
		return DetailItem{}, false
	}
	return g.items.Get(label)
}

// Labels returns labels in insertion order.
func (g DetailGroup) Labels() []string {
	out := make([]string, 0, g.Len())
	if g.items == nil {
		return out
	}
	for pair := g.items.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Len returns the number of items.
func (g DetailGroup) Len() int {
	if g.items == nil {
		return 0
	}
	return g.items.Len()
}

// MarshalJSON implements json.Marshaler. An empty group is {}.
func (g DetailGroup) MarshalJSON() ([]byte, error) {
	if g.items == nil {
		return []byte("{}"), nil
	}
	return g.items.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler, preserving key order.
func (g *DetailGroup) UnmarshalJSON(data []byte) error {
	items := orderedmap.New[string, DetailItem]()
	if err := items.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("detail group: %w", err)
	}
	g.items = items
	return nil
}

// DetailData groups line items by risk category.
type DetailData struct {
	CashFlowRisk      DetailGroup `json:"cashFlowRisk"`
	SupplyChainRisk   DetailGroup `json:"supplyChainRisk"`
	ProfitabilityRisk DetailGroup `json:"profitabilityRisk"`
	OtherRisk         DetailGroup `json:"otherRisk"`
}

// FinancialData is the full analysis of one company for the period pair.
type FinancialData struct {
	ReportDate     string         `json:"report_date"`
	PreviousDate   string         `json:"previous_date"`
	CoreIndicators CoreIndicators `json:"coreIndicators"`
	DetailData     DetailData     `json:"detailData"`
}
