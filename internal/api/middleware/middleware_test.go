package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/trackr/api/internal/api/types"
	"github.com/trackr/api/internal/models"
	appErr "github.com/trackr/api/pkg/errors"
	"github.com/trackr/api/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "json", ""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type resolverFunc func(ctx context.Context, token string) (*models.User, error)

func (f resolverFunc) Principal(ctx context.Context, token string) (*models.User, error) {
	return f(ctx, token)
}

func staticResolver(token string, user *models.User) PrincipalResolver {
	return resolverFunc(func(_ context.Context, got string) (*models.User, error) {
		if got != token {
			return nil, appErr.New(appErr.CodeUnauthorized, "invalid token")
		}
		return user, nil
	})
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if p := GetPrincipal(r.Context()); p != nil {
		w.Header().Set("X-Principal", p.ID.String())
	}
	w.WriteHeader(http.StatusOK)
})

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) types.APIError {
	t.Helper()
	var body types.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.NotNil(t, body.Error)
	return *body.Error
}

func TestAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	h := Auth(staticResolver("good", user))(okHandler)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "unauthorized", decodeError(t, rr).Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, user.ID.String(), rr.Header().Get("X-Principal"))
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	h := OptionalAuth(staticResolver("good", &models.User{ID: uuid.New()}))(okHandler)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Empty(t, rr.Header().Get("X-Principal"))

	for _, header := range []string{"Bearer stale", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rr = httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code, header)
		require.Empty(t, rr.Header().Get("X-Principal"), header)
	}
}

func TestOptionalAuthPropagatesLookupFailures(t *testing.T) {
	down := resolverFunc(func(context.Context, string) (*models.User, error) {
		return nil, appErr.New(appErr.CodeUnavailable, "database unavailable")
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rr := httptest.NewRecorder()
	OptionalAuth(down)(okHandler).ServeHTTP(rr, req)
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(models.RoleProjectManager, models.RoleAdmin)(okHandler)
	serve := func(user *models.User) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if user != nil {
			req = req.WithContext(WithPrincipal(req.Context(), user))
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}
	role := func(r models.Role) *models.User { return &models.User{ID: uuid.New(), Role: &r} }

	require.Equal(t, http.StatusUnauthorized, serve(nil))
	require.Equal(t, http.StatusForbidden, serve(&models.User{ID: uuid.New()}))
	require.Equal(t, http.StatusForbidden, serve(role(models.RoleUser)))
	require.Equal(t, http.StatusOK, serve(role(models.RoleProjectManager)))
	require.Equal(t, http.StatusOK, serve(role(models.RoleAdmin)))
}

func TestRecoveryWritesEnvelope(t *testing.T) {
	h := RequestID(Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	e := decodeError(t, rr)
	require.Equal(t, "internal", e.Code)
	require.NotContains(t, e.Message, "boom")
}

func TestCORS(t *testing.T) {
	h := CORS("http://localhost:5173")(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/Project/GetProjects", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/items/{id}", okHandler)

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
	}
	require.Equal(t, float64(3), testutil.ToFloat64(m.requests.WithLabelValues("/items/{id}", http.MethodGet, "200")))
}
