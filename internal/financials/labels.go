// Package financials derives liquidity and efficiency ratios and categorized
// line-item detail from Chinese-labelled statement tables.
package financials

// Line-item labels as they appear in column 0 of provider statements.
const (
	LabelTotalAssets         = "资产总计"
	LabelTotalLiabilities    = "负债合计"
	LabelCurrentAssets       = "流动资产合计"
	LabelCurrentLiabilities  = "流动负债合计"
	LabelAccountsPayable     = "应付账款"
	LabelAccountsReceivable  = "应收账款"
	LabelMonetaryFunds       = "货币资金"
	LabelPrepayments         = "预付款项"
	LabelNotesPayable        = "应付票据"
	LabelInventory           = "存货"
	LabelFixedAssets         = "固定资产"
	LabelIntangibleAssets    = "无形资产"
	LabelRevenue             = "营业收入"
	LabelNetProfit           = "净利润"
	LabelOperatingCost       = "营业成本"
	LabelOperatingProfit     = "营业利润"
	LabelTotalProfit         = "利润总额"
	LabelOperatingCashFlow   = "经营活动产生的现金流量净额"
	LabelCurrentRatioDerived = "流动比率"
)

// source identifies which statement a line item is read from.
type source int

const (
	fromBalance source = iota
	fromIncome
	fromCashFlow
	// derived rows are computed, not looked up
	derived
)

type lineItem struct {
	label  string
	source source
}

// Category selects one of the fixed detail groupings.
type Category string

const (
	CategoryCash   Category = "cash"
	CategorySupply Category = "supply"
	CategoryProfit Category = "profit"
	CategoryOther  Category = "other"
)

// categoryItems is the hard-coded item list of each category, in display order.
var categoryItems = map[Category][]lineItem{
	CategoryCash: {
		{LabelMonetaryFunds, fromBalance},
		{LabelCurrentLiabilities, fromBalance},
		{LabelCurrentRatioDerived, derived},
		{LabelOperatingCashFlow, fromCashFlow},
		{LabelNetProfit, fromIncome},
		{LabelOperatingCost, fromIncome},
	},
	CategorySupply: {
		{LabelAccountsPayable, fromBalance},
		{LabelPrepayments, fromBalance},
		{LabelNotesPayable, fromBalance},
	},
	CategoryProfit: {
		{LabelNetProfit, fromIncome},
		{LabelRevenue, fromIncome},
		{LabelOperatingCost, fromIncome},
		{LabelOperatingProfit, fromIncome},
		{LabelTotalProfit, fromIncome},
	},
	CategoryOther: {
		{LabelAccountsReceivable, fromBalance},
		{LabelInventory, fromBalance},
		{LabelFixedAssets, fromBalance},
		{LabelIntangibleAssets, fromBalance},
		{LabelTotalAssets, fromBalance},
		{LabelTotalLiabilities, fromBalance},
	},
}

// Categories returns the categories in the order they are reported.
func Categories() []Category {
	return []Category{CategoryCash, CategorySupply, CategoryProfit, CategoryOther}
}
