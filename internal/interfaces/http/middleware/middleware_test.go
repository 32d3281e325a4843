package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/tenant"
	"github.com/travelerp/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeTenants resolves tenants from memory
type fakeTenants struct {
	byID map[uuid.UUID]*tenant.Tenant
	err  error
}

func newFakeTenants(ts ...*tenant.Tenant) *fakeTenants {
	f := &fakeTenants{byID: map[uuid.UUID]*tenant.Tenant{}}
	for _, t := range ts {
		f.byID[t.ID] = t
	}
	return f
}

func (f *fakeTenants) FindByID(_ context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	if f.err != nil {
		return nil, f.err
	}
	if t, ok := f.byID[id]; ok {
		return t, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeTenants) FindByCode(_ context.Context, code string) (*tenant.Tenant, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.byID {
		if t.Code == code {
			return t, nil
		}
	}
	return nil, shared.ErrNotFound
}

func mustTenant(t *testing.T, code string) *tenant.Tenant {
	t.Helper()
	tn, err := tenant.NewTenant(code, code)
	require.NoError(t, err)
	return tn
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return *resp.Error
}
