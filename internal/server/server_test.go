package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/finhealth/internal/app"
	"github.com/ternarybob/finhealth/internal/common"
	"github.com/ternarybob/finhealth/internal/models"
)

// stubProvider implements interfaces.FinancialDataProvider for testing
type stubProvider struct {
	companies        []models.Company
	getStatementFunc func(ctx context.Context, code string, st models.StatementType) (*models.Table, error)
	listCalls        int
}

func (p *stubProvider) ListCompanies(ctx context.Context) ([]models.Company, error) {
	p.listCalls++
	return p.companies, nil
}

func (p *stubProvider) GetStatement(ctx context.Context, code string, st models.StatementType) (*models.Table, error) {
	if p.getStatementFunc != nil {
		return p.getStatementFunc(ctx, code, st)
	}
	return &models.Table{Code: code, Type: st}, nil
}

func newTestServer(t *testing.T, provider *stubProvider) *Server {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "supplier-finance.html"), []byte("<html>finance</html>"), 0644))

	cfg := common.NewDefaultConfig()
	cfg.Static.Dir = dir
	cfg.Retry.PreCallDelay = "1ms"
	cfg.Retry.Backoff = "1ms"

	application, err := app.NewWithProvider(cfg, arbor.NewLogger(), provider)
	require.NoError(t, err)
	return New(application)
}

func serve(s *Server, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestRoutes_IndexPage(t *testing.T) {
	s := newTestServer(t, &stubProvider{})

	rec := serve(s, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "finance")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRoutes_Preflight(t *testing.T) {
	s := newTestServer(t, &stubProvider{})

	rec := serve(s, http.MethodOptions, "/api/company/600000")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "GET")
}

func TestRoutes_SearchEmptyQuery(t *testing.T) {
	provider := &stubProvider{companies: []models.Company{{Code: "600000", Name: "浦发银行"}}}
	s := newTestServer(t, provider)

	rec := serve(s, http.MethodGet, "/api/search?q=")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.Equal(t, 0, provider.listCalls)

	rec = serve(s, http.MethodGet, "/api/search?q=600")
	assert.JSONEq(t, `[{"code":"600000","name":"浦发银行"}]`, rec.Body.String())
}

func TestRoutes_UnknownCompany(t *testing.T) {
	s := newTestServer(t, &stubProvider{companies: []models.Company{{Code: "600000", Name: "浦发银行"}}})

	rec := serve(s, http.MethodGet, "/api/company/999999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Company not found"}`, rec.Body.String())
}

func TestRoutes_EmptyStatements(t *testing.T) {
	s := newTestServer(t, &stubProvider{companies: []models.Company{{Code: "600000", Name: "浦发银行"}}})

	rec := serve(s, http.MethodGet, "/api/company/600000")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch financial data"}`, rec.Body.String())
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, &stubProvider{})

	rec := serve(s, http.MethodPost, "/api/search?q=1")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRoutes_UnknownAPIPath(t *testing.T) {
	s := newTestServer(t, &stubProvider{})

	rec := serve(s, http.MethodGet, "/api/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

func TestRoutes_PanicRecovered(t *testing.T) {
	s := newTestServer(t, &stubProvider{
		companies: []models.Company{{Code: "600000", Name: "浦发银行"}},
		getStatementFunc: func(ctx context.Context, code string, st models.StatementType) (*models.Table, error) {
			panic("provider exploded")
		},
	})

	rec := serve(s, http.MethodGet, "/api/company/600000")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func TestServer_Addr(t *testing.T) {
	s := newTestServer(t, &stubProvider{})
	assert.Equal(t, "0.0.0.0:5000", s.Addr())
}
