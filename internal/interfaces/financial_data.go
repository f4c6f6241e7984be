// Package interfaces provides service interfaces for dependency injection.
package interfaces

import (
	"context"

	"github.com/ternarybob/finhealth/internal/models"
)

// StatementProvider fetches one financial statement of a listed company.
type StatementProvider interface {
	// GetStatement returns the statement as a table of raw line items with
	// periods ordered most recent first. Values are left as provider strings.
	GetStatement(ctx context.Context, code string, statementType models.StatementType) (*models.Table, error)
}

// CompanyDirectory lists listed A-share companies.
type CompanyDirectory interface {
	// ListCompanies returns the full code/name directory in provider order.
	ListCompanies(ctx context.Context) ([]models.Company, error)
}

// FinancialDataProvider is a provider that serves both statements and the
// company directory.
type FinancialDataProvider interface {
	StatementProvider
	CompanyDirectory
}
