package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/finhealth/internal/services/company"
)

const companyPathPrefix = "/api/company/"

// Error messages returned to the front end.
const (
	msgCompanyNotFound = "Company not found"
	msgNoFinancialData = "Failed to fetch financial data"
)

type CompanyHandler struct {
	service CompanyService
	logger  arbor.ILogger
}

func NewCompanyHandler(service CompanyService, logger arbor.ILogger) *CompanyHandler {
	return &CompanyHandler{
		service: service,
		logger:  logger,
	}
}

// SearchHandler handles GET /api/search?q=<substring>.
// It always answers 200 with a list, empty when nothing matches.
func (h *CompanyHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	results := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	WriteJSON(w, http.StatusOK, results)
}

// CompanyHandler handles GET /api/company/<code>.
func (h *CompanyHandler) CompanyHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	code := strings.Trim(strings.TrimPrefix(r.URL.Path, companyPathPrefix), "/")
	if code == "" || strings.Contains(code, "/") {
		WriteError(w, http.StatusNotFound, msgCompanyNotFound)
		return
	}

	report, err := h.service.Analyze(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, company.ErrCompanyNotFound):
			WriteError(w, http.StatusNotFound, msgCompanyNotFound)
		case errors.Is(err, company.ErrNoFinancialData):
			h.logger.Warn().Err(err).Str("code", code).Msg("No financial data")
			WriteError(w, http.StatusInternalServerError, msgNoFinancialData)
		default:
			h.logger.Error().Err(err).Str("code", code).Msg("Company analysis failed")
			WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	WriteJSON(w, http.StatusOK, report)
}
