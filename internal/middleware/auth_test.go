package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forgo/freelancehub/api/internal/model"
	"github.com/forgo/freelancehub/api/internal/service"
)

// ============================================================================
// Mock Authorizer
// ============================================================================

type mockAuthorizer struct {
	account *model.AccountView
	err     error
	gotTok  string
}

func (m *mockAuthorizer) Authorize(_ context.Context, token string) (*model.AccountView, error) {
	m.gotTok = token
	if m.err != nil {
		return nil, m.err
	}
	return m.account, nil
}

func serveAuth(a Authorizer, header string) (*httptest.ResponseRecorder, *model.AccountView, bool) {
	var seen *model.AccountView
	called := false
	h := Auth(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seen = GetAccount(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr, seen, called
}

// ============================================================================
// Auth Tests
// ============================================================================

func TestAuth_MalformedHeaders_ReturnUnauthorized(t *testing.T) {
	t.Parallel()

	for _, header := range []string{"", "token-only", "Bearer", "Bearer ", "Basic dXNlcjpwYXNz"} {
		t.Run(fmt.Sprintf("%q", header), func(t *testing.T) {
			m := &mockAuthorizer{account: &model.AccountView{ID: "a"}}
			rr, _, called := serveAuth(m, header)

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rr.Code)
			}
			if rr.Header().Get("WWW-Authenticate") != "Bearer" {
				t.Errorf("expected WWW-Authenticate: Bearer, got %q", rr.Header().Get("WWW-Authenticate"))
			}
			if called {
				t.Error("handler should not be called")
			}
		})
	}
}

func TestAuth_ValidToken_SetsAccount(t *testing.T) {
	t.Parallel()

	m := &mockAuthorizer{account: &model.AccountView{ID: "acc-1", Email: "dev@example.com"}}
	rr, seen, called := serveAuth(m, "bearer tok-123")

	if rr.Code != http.StatusOK || !called {
		t.Fatalf("expected handler to run, got %d", rr.Code)
	}
	if m.gotTok != "tok-123" {
		t.Errorf("expected token 'tok-123', got %q", m.gotTok)
	}
	if seen == nil || seen.ID != "acc-1" {
		t.Errorf("expected account in context, got %+v", seen)
	}
}

func TestAuth_AuthorizeFailure_IsUniform(t *testing.T) {
	t.Parallel()

	var bodies []string
	for _, err := range []error{service.ErrUnauthorized, errors.New("anything else")} {
		rr, _, called := serveAuth(&mockAuthorizer{err: err}, "Bearer x")
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 for %v, got %d", err, rr.Code)
		}
		if called {
			t.Error("handler should not be called")
		}
		bodies = append(bodies, rr.Body.String())
	}
	if bodies[0] != bodies[1] {
		t.Errorf("expected identical bodies, got %q and %q", bodies[0], bodies[1])
	}
}

func TestAuth_StoreFailure_Returns503(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("%w: get account: timeout", service.ErrStoreUnavailable)
	rr, _, called := serveAuth(&mockAuthorizer{err: err}, "Bearer x")

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rr.Code)
	}
	if called {
		t.Error("handler should not be called")
	}
}

// ============================================================================
// Context Helper Tests
// ============================================================================

func TestGetAccount_Missing_ReturnsNil(t *testing.T) {
	t.Parallel()

	if GetAccount(context.Background()) != nil {
		t.Error("expected nil account")
	}
}

func TestGetAccount_WrongType_ReturnsNil(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), AccountKey, "not-an-account")
	if GetAccount(ctx) != nil {
		t.Error("expected nil account")
	}
}

func TestGetAccount_Present(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), AccountKey, &model.AccountView{ID: "acc-9"})
	if got := GetAccount(ctx); got == nil || got.ID != "acc-9" {
		t.Errorf("expected account acc-9, got %+v", got)
	}
}
