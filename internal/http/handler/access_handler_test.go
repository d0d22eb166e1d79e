package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/PayAidPayments/PayAid-V3-sub021/internal/config"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/domain"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/gate"
	transport "github.com/PayAidPayments/PayAid-V3-sub021/internal/http"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/http/handler"
	httpmiddleware "github.com/PayAidPayments/PayAid-V3-sub021/internal/http/middleware"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/token"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fakeStore struct {
	tenant   domain.Tenant
	licenses []domain.ModuleLicense
}

func (s *fakeStore) Tenant(ctx context.Context, tenantID int64) (domain.Tenant, error) {
	return s.tenant, nil
}

func (s *fakeStore) ModuleLicenses(ctx context.Context, tenantID int64) ([]domain.ModuleLicense, error) {
	return s.licenses, nil
}

func newTestRouter(t *testing.T, store *fakeStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{ServiceName: "payaid-access-test"}
	g := gate.New(store, nil)
	auth := &httpmiddleware.Auth{Verifier: token.NewVerifier(testSecret, "", nil)}
	return transport.NewRouter(cfg, handler.NewAccessHandler(g), auth, nil)
}

func licensedStore() *fakeStore {
	return &fakeStore{
		tenant: domain.Tenant{ID: 1, Name: "Acme", Plan: "starter", Status: domain.TenantStatusActive},
		licenses: []domain.ModuleLicense{
			{TenantID: 1, ModuleID: "crm", Active: true},
			{TenantID: 1, ModuleID: "hr", Active: true},
		},
	}
}

func mintToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	issuer := token.NewIssuer(testSecret, "", ttl, nil)
	raw, err := issuer.Mint(1, 7, "starter", []string{"crm", "hr"})
	require.NoError(t, err)
	return raw
}

func checkModule(t *testing.T, r *gin.Engine, bearer, moduleID string) *httptest.ResponseRecorder {
	t.Helper()
	body := strings.NewReader(`{"module_id":"` + moduleID + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/access/check", body)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckAllowed(t *testing.T) {
	r := newTestRouter(t, licensedStore())
	w := checkModule(t, r, mintToken(t, time.Hour), "crm")

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.EqualValues(t, 1, resp["tenant_id"])
	require.EqualValues(t, 7, resp["user_id"])
	require.Equal(t, "crm", resp["module_id"])
}

func TestCheckUnlicensedModule(t *testing.T) {
	r := newTestRouter(t, licensedStore())
	w := checkModule(t, r, mintToken(t, time.Hour), "finance")

	require.Equal(t, http.StatusPaymentRequired, w.Code)
	var resp gate.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "LicenseError", resp.Code)
	require.Equal(t, "finance", resp.ModuleID)
}

func TestCheckExpiredCredential(t *testing.T) {
	r := newTestRouter(t, licensedStore())
	w := checkModule(t, r, mintToken(t, -time.Second), "crm")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "ExpiredCredential")
}

func TestCheckExpiredCredentialWinsOverSuspension(t *testing.T) {
	// Credential validity is checked before tenant state, so an expired
	// token on a suspended tenant reports the expiry.
	store := licensedStore()
	store.tenant.Status = domain.TenantStatusSuspended
	r := newTestRouter(t, store)
	w := checkModule(t, r, mintToken(t, -time.Second), "crm")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "ExpiredCredential")
}

func TestCheckMissingCredential(t *testing.T) {
	r := newTestRouter(t, licensedStore())
	w := checkModule(t, r, "", "crm")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Unauthenticated")
}

func TestCheckSuspendedTenant(t *testing.T) {
	store := licensedStore()
	store.tenant.Status = domain.TenantStatusSuspended
	r := newTestRouter(t, store)
	w := checkModule(t, r, mintToken(t, time.Hour), "crm")

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "TenantSuspended")
}

func TestCheckUnknownModuleRejected(t *testing.T) {
	r := newTestRouter(t, licensedStore())
	w := checkModule(t, r, mintToken(t, time.Hour), "warehouse9")

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "UnknownModule")
}

func TestCheckModulePathVariant(t *testing.T) {
	r := newTestRouter(t, licensedStore())
	req := httptest.NewRequest(http.MethodGet, "/v1/access/check/hr", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"module_id":"hr"`)
}

func TestLicensedModulesEndpoint(t *testing.T) {
	r := newTestRouter(t, licensedStore())
	req := httptest.NewRequest(http.MethodGet, "/v1/access/modules", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		TenantID int64    `json:"tenant_id"`
		Modules  []string `json:"modules"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(1), resp.TenantID)
	require.Equal(t, []string{"crm", "hr"}, resp.Modules)
}

func TestRegistryEndpointIsPublic(t *testing.T) {
	r := newTestRouter(t, licensedStore())
	req := httptest.NewRequest(http.MethodGet, "/v1/modules", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"id":"crm"`)
	require.Contains(t, w.Body.String(), `"id":"contract-management"`)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t, licensedStore())
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
