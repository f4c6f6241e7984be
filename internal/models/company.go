package models

// Company is a listed company in the provider directory.
type Company struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CompanyReport is the response body of a company analysis.
type CompanyReport struct {
	Code          string         `json:"code"`
	Name          string         `json:"name"`
	FinancialData *FinancialData `json:"financial_data"`
}
