package handlers

import (
	"context"

	"github.com/ternarybob/finhealth/internal/models"
)

// CompanySearcher finds companies by code or name fragment.
type CompanySearcher interface {
	Search(ctx context.Context, query string) []models.Company
}

// CompanyAnalyzer builds the financial health report of one company.
type CompanyAnalyzer interface {
	Analyze(ctx context.Context, code string) (*models.CompanyReport, error)
}

// CompanyService is the full company surface used by CompanyHandler.
type CompanyService interface {
	CompanySearcher
	CompanyAnalyzer
}
