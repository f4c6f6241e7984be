// Package company looks up listed companies and assembles their financial
// health report from the three core statements.
package company

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/finhealth/internal/financials"
	"github.com/ternarybob/finhealth/internal/interfaces"
	"github.com/ternarybob/finhealth/internal/models"
	"github.com/ternarybob/finhealth/internal/retry"
)

// MaxSearchResults caps the number of companies returned by Search.
const MaxSearchResults = 10

var (
	// ErrCompanyNotFound is returned when the code is not in the directory.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrNoFinancialData is returned when a statement came back empty or the
	// statements could not be analysed.
	ErrNoFinancialData = errors.New("failed to fetch financial data")
)

// Service answers company search and analysis requests.
type Service struct {
	statements interfaces.StatementProvider
	directory  interfaces.CompanyDirectory
	policy     retry.Policy
	logger     arbor.ILogger
}

// NewService creates a company service. Every provider call runs through policy.
func NewService(statements interfaces.StatementProvider, directory interfaces.CompanyDirectory, policy retry.Policy, logger arbor.ILogger) *Service {
	return &Service{
		statements: statements,
		directory:  directory,
		policy:     policy,
		logger:     logger,
	}
}

// Search returns up to MaxSearchResults companies whose code or name contains
// the query as a literal, case-sensitive substring. It never fails: an empty
// query or a directory error yields an empty list.
func (s *Service) Search(ctx context.Context, query string) []models.Company {
	results := []models.Company{}

	query = strings.TrimSpace(query)
	if query == "" {
		return results
	}

	companies, err := s.listCompanies(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("Company search failed")
		return results
	}

	for _, c := range companies {
		if strings.Contains(c.Code, query) || strings.Contains(c.Name, query) {
			results = append(results, c)
			if len(results) == MaxSearchResults {
				break
			}
		}
	}

	s.logger.Debug().
		Str("query", query).
		Int("matches", len(results)).
		Msg("Company search completed")

	return results
}

// Analyze fetches the three statements of a listed company and derives its
// core indicators and detail groups.
func (s *Service) Analyze(ctx context.Context, code string) (*models.CompanyReport, error) {
	code = strings.TrimSpace(code)

	company, err := s.lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	tables := make(map[models.StatementType]*models.Table, len(models.StatementTypes))
	for _, st := range models.StatementTypes {
		var table *models.Table
		err := s.policy.Do(ctx, s.logger, fmt.Sprintf("fetch %s for %s", st, code), func(ctx context.Context) error {
			var fetchErr error
			table, fetchErr = s.statements.GetStatement(ctx, code, st)
			return fetchErr
		})
		if err != nil {
			return nil, err
		}
		if table.Empty() {
			s.logger.Warn().
				Str("code", code).
				Str("statement", string(st)).
				Msg("Statement is empty")
			return nil, fmt.Errorf("%w: %s is empty", ErrNoFinancialData, st)
		}
		tables[st] = table
	}

	data, err := financials.Analyze(
		tables[models.StatementBalanceSheet],
		tables[models.StatementIncome],
		tables[models.StatementCashFlow],
	)
	if err != nil {
		s.logger.Error().Err(err).Str("code", code).Msg("Financial analysis failed")
		return nil, fmt.Errorf("%w: %v", ErrNoFinancialData, err)
	}

	if (models.PeriodPair{Current: data.ReportDate, Previous: data.PreviousDate}).Degenerate() {
		s.logger.Warn().
			Str("code", code).
			Str("report_date", data.ReportDate).
			Msg("Only one reporting period available, comparing it with itself")
	}

	s.logger.Info().
		Str("code", code).
		Str("name", company.Name).
		Str("report_date", data.ReportDate).
		Str("previous_date", data.PreviousDate).
		Msg("Company analysed")

	return &models.CompanyReport{
		Code:          company.Code,
		Name:          company.Name,
		FinancialData: data,
	}, nil
}

// lookup finds the exact code in the directory.
func (s *Service) lookup(ctx context.Context, code string) (models.Company, error) {
	if code == "" {
		return models.Company{}, ErrCompanyNotFound
	}

	companies, err := s.listCompanies(ctx)
	if err != nil {
		return models.Company{}, err
	}
	for _, c := range companies {
		if c.Code == code {
			return c, nil
		}
	}
	return models.Company{}, fmt.Errorf("%w: %s", ErrCompanyNotFound, code)
}

func (s *Service) listCompanies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	err := s.policy.Do(ctx, s.logger, "list companies", func(ctx context.Context) error {
		var listErr error
		companies, listErr = s.directory.ListCompanies(ctx)
		return listErr
	})
	return companies, err
}
