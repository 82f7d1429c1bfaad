package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	v1 "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/api/v1"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/config"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/client"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/company"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/facility"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/logger"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/service"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/testutil"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.NewValidator()

	ctx := context.Background()
	cfg := config.GetDefaultConfig()
	log := logger.NewNopLogger()

	companies := testutil.NewInMemoryCompanyStore()
	clients := testutil.NewInMemoryClientStore()
	facilities := testutil.NewInMemoryFacilityStore()
	items := testutil.NewInMemoryServiceLineItemStore()

	require.NoError(t, companies.Create(ctx, &company.Company{
		ID:      testutil.TestCompanyID,
		Name:    "Urban Simple",
		TaxRate: lo.ToPtr(decimal.RequireFromString("0.0825")),
	}))
	require.NoError(t, clients.Create(ctx, &client.Client{
		ID:        "client_1",
		CompanyID: testutil.TestCompanyID,
		Name:      "Acme Corp",
	}))
	require.NoError(t, facilities.Create(ctx, &facility.FacilityProfile{
		ID:           "fac_1",
		ClientID:     "client_1",
		LocationName: "Main Office",
		Category:     "Office",
		Status:       types.FacilityStatusActive,
		Frequency:    5,
		MonthlyRate:  decimal.NewFromInt(1000),
		TaxBehavior:  types.TaxBehaviorTaxable,
	}))

	params := service.NewServiceParams(log, cfg, nil, companies, clients, facilities, items)
	handlers := Handlers{
		BillingPreview: v1.NewBillingPreviewHandler(service.NewBillingPreviewService(params), log),
		Facility:       v1.NewFacilityHandler(service.NewFacilityService(params), log),
		Health:         v1.NewHealthHandler(log),
	}
	return NewRouter(handlers, cfg, log, nil)
}

func do(t *testing.T, r *gin.Engine, method, path, body string, withCompany bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if withCompany {
		req.Header.Set(types.HeaderCompanyID, testutil.TestCompanyID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error.Message
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(types.HeaderRequestID))
}

func TestBillingPreviewRoutes(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name        string
		path        string
		withCompany bool
		status      int
		message     string
	}{
		{"missing company header", "/v1/clients/client_1/billing-preview?year=2024&month=4", false, http.StatusBadRequest, "X-Company-ID header is required"},
		{"month out of range", "/v1/clients/client_1/billing-preview?year=2024&month=13", true, http.StatusBadRequest, "Month must be between 1 and 12"},
		{"month not a number", "/v1/clients/client_1/billing-preview?year=2024&month=april", true, http.StatusBadRequest, "Year and month must be numbers"},
		{"unknown client", "/v1/clients/client_missing/billing-preview?year=2024&month=4", true, http.StatusNotFound, "Client not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodGet, tt.path, "", tt.withCompany)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, errorMessage(t, w))
		})
	}

	t.Run("preview", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/v1/clients/client_1/billing-preview?year=2024&month=4", "", true)
		require.Equal(t, http.StatusOK, w.Code)

		var preview map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &preview))
		assert.Equal(t, "1082.5", preview["total"])
		assert.Equal(t, "1082.5", preview["previous_month_total"])
		assert.Len(t, preview["line_items"], 1)
	})

	t.Run("generic export", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/v1/clients/client_1/billing-preview/export?year=2024&month=4", "", true)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="Acme_Corp_billing_2024_04.csv"`, w.Header().Get("Content-Disposition"))
		assert.True(t, strings.HasPrefix(w.Body.String(), "Location,Category,"))
	})

	t.Run("quickbooks export", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/v1/clients/client_1/billing-preview/export-qb?year=2024&month=4", "", true)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `attachment; filename="Acme_Corp_QB_invoice_2024_04.csv"`, w.Header().Get("Content-Disposition"))
		assert.Contains(t, w.Body.String(), "US-202404,Acme Corp,04/01/2024,04/30/2024")
	})
}

func TestFacilityRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/v1/facilities/fac_1", "", true)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPut, "/v1/facilities/fac_1/overrides/2024/4", `{"pause_start_day": 20, "pause_end_day": 10}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Pause start day must not be after pause end day", errorMessage(t, w))

	w = do(t, r, http.MethodPut, "/v1/facilities/fac_1/overrides/2024/4", `{"pause_start_day": 10, "pause_end_day": 20, "notes": "Renovation"}`, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/v1/clients/client_1/billing-preview?year=2024&month=4", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	var preview map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &preview))
	assert.Equal(t, "688.86", preview["total"])

	w = do(t, r, http.MethodDelete, "/v1/facilities/fac_1/overrides/2024/4", "", true)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodDelete, "/v1/facilities/fac_1/overrides/2024/4", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/v1/facilities/fac_1/seasonal-rules", `{"active_months": [6, 7, 8], "paused_months": [1]}`, true)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPost, "/v1/facilities/fac_missing/seasonal-rules", `{"active_months": [6]}`, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Facility not found", errorMessage(t, w))
}
