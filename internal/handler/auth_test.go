package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/forgo/freelancehub/api/internal/middleware"
	"github.com/forgo/freelancehub/api/internal/model"
	"github.com/forgo/freelancehub/api/internal/service"
	"github.com/forgo/freelancehub/api/internal/testing/helpers"
)

// ============================================================================
// Mock AuthService
// ============================================================================

type mockAuthService struct {
	registerFunc func(ctx context.Context, req service.RegisterRequest) (*service.AuthResult, error)
	loginFunc    func(ctx context.Context, email, password string) (*service.AuthResult, error)
}

func (m *mockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*service.AuthResult, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	return nil, nil
}

// ============================================================================
// Test Helpers
// ============================================================================

var handlerNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestAccount() *model.AccountView {
	return &model.AccountView{
		ID:        "5b1c7a52-2b4e-4b59-9a53-0f1c8f0e6a10",
		Email:     "dev@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		CreatedAt: handlerNow,
	}
}

func newTestAuthResult() *service.AuthResult {
	return &service.AuthResult{
		Account:   newTestAccount(),
		Token:     "header.payload.signature",
		ExpiresAt: handlerNow.Add(7 * 24 * time.Hour),
	}
}

func newTestAuthHandler(svc AuthService) *AuthHandler {
	h := NewAuthHandler(svc)
	h.now = func() time.Time { return handlerNow }
	return h
}

// ============================================================================
// Register Tests
// ============================================================================

func TestAuthHandler_Register_Success(t *testing.T) {
	t.Parallel()

	var got service.RegisterRequest
	h := newTestAuthHandler(&mockAuthService{
		registerFunc: func(_ context.Context, req service.RegisterRequest) (*service.AuthResult, error) {
			got = req
			return newTestAuthResult(), nil
		},
	})

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/auth/register").
		WithBody(map[string]string{
			"email":     "dev@example.com",
			"password":  "s3cretpass",
			"firstName": "Ada",
			"lastName":  "Lovelace",
		}).
		Do(http.HandlerFunc(h.Register))

	helpers.AssertStatus(t, rr, http.StatusCreated)

	if got.Password != "s3cretpass" || got.FirstName != "Ada" || got.LastName != "Lovelace" {
		t.Errorf("service received %+v", got)
	}

	var resp struct {
		Data  AuthResponse      `json:"data"`
		Links map[string]string `json:"_links"`
	}
	helpers.DecodeResponse(t, rr, &resp)

	if resp.Data.User.Email != "dev@example.com" {
		t.Errorf("expected user email dev@example.com, got %q", resp.Data.User.Email)
	}
	if resp.Data.Token.TokenType != "bearer" {
		t.Errorf("expected token_type bearer, got %q", resp.Data.Token.TokenType)
	}
	if resp.Data.Token.ExpiresIn != 7*24*60*60 {
		t.Errorf("expected expires_in 604800, got %d", resp.Data.Token.ExpiresIn)
	}
	if resp.Links["self"] != "/v1/auth/me" {
		t.Errorf("expected self link /v1/auth/me, got %q", resp.Links["self"])
	}
}

func TestAuthHandler_Register_ResponseNeverContainsCredential(t *testing.T) {
	t.Parallel()

	h := newTestAuthHandler(&mockAuthService{
		registerFunc: func(context.Context, service.RegisterRequest) (*service.AuthResult, error) {
			return newTestAuthResult(), nil
		},
	})

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/auth/register").
		WithBody(map[string]string{"email": "dev@example.com", "password": "s3cretpass", "firstName": "Ada", "lastName": "Lovelace"}).
		Do(http.HandlerFunc(h.Register))

	user := helpers.GetDataFromResponse(t, rr)["user"].(map[string]interface{})
	for _, key := range []string{"password", "hash", "hashed_password"} {
		if _, ok := user[key]; ok {
			t.Errorf("user payload must not contain %q", key)
		}
	}
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	t.Parallel()

	h := newTestAuthHandler(&mockAuthService{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", "{not json"},
		{"unknown field", `{"email":"a@b.co","password":"abcd1234","role":"admin"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := helpers.NewRequest(t, http.MethodPost, "/v1/auth/register").
				WithBody(tt.body).
				Do(http.HandlerFunc(h.Register))

			helpers.AssertProblemDetails(t, rr, http.StatusBadRequest, model.ErrCodeInvalidInput)
		})
	}
}

func TestAuthHandler_Register_ServiceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   model.ErrorCode
	}{
		{"duplicate email", service.ErrDuplicateEmail, http.StatusConflict, model.ErrCodeAlreadyExists},
		{"weak password", service.ErrWeakCredential, http.StatusUnprocessableEntity, model.ErrCodeValidation},
		{"store down", fmt.Errorf("%w: boom", service.ErrStoreUnavailable), http.StatusServiceUnavailable, model.ErrCodeDatabase},
		{"unexpected", fmt.Errorf("minting token: boom"), http.StatusInternalServerError, model.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestAuthHandler(&mockAuthService{
				registerFunc: func(context.Context, service.RegisterRequest) (*service.AuthResult, error) {
					return nil, tt.err
				},
			})

			rr := helpers.NewRequest(t, http.MethodPost, "/v1/auth/register").
				WithBody(map[string]string{"email": "dev@example.com", "password": "x"}).
				Do(http.HandlerFunc(h.Register))

			problem := helpers.AssertProblemDetails(t, rr, tt.status, tt.code)
			if tt.status == http.StatusInternalServerError && problem.Detail != "An unexpected error occurred" {
				t.Errorf("internal error leaked detail %q", problem.Detail)
			}
		})
	}
}

func TestAuthHandler_Register_WeakPasswordNamesField(t *testing.T) {
	t.Parallel()

	h := newTestAuthHandler(&mockAuthService{
		registerFunc: func(context.Context, service.RegisterRequest) (*service.AuthResult, error) {
			return nil, service.ErrWeakCredential
		},
	})

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/auth/register").
		WithBody(map[string]string{"email": "dev@example.com", "password": "short"}).
		Do(http.HandlerFunc(h.Register))

	helpers.AssertValidationError(t, rr, "password")
}

func TestAuthHandler_Register_FieldValidation(t *testing.T) {
	t.Parallel()

	h := newTestAuthHandler(&mockAuthService{
		registerFunc: func(context.Context, service.RegisterRequest) (*service.AuthResult, error) {
			return nil, &service.ValidationError{
				Kind:   service.ErrInvalidAccount,
				Fields: []model.FieldError{{Field: "email", Message: "must be a valid email address"}},
			}
		},
	})

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/auth/register").
		WithBody(map[string]string{"email": "nope", "password": "abcd1234"}).
		Do(http.HandlerFunc(h.Register))

	helpers.AssertValidationError(t, rr, "email")
}

// ============================================================================
// Login Tests
// ============================================================================

func TestAuthHandler_Login_JSON(t *testing.T) {
	t.Parallel()

	var gotEmail, gotPassword string
	h := newTestAuthHandler(&mockAuthService{
		loginFunc: func(_ context.Context, email, password string) (*service.AuthResult, error) {
			gotEmail, gotPassword = email, password
			return newTestAuthResult(), nil
		},
	})

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/auth/login").
		WithBody(LoginRequest{Email: "Dev@Example.com", Password: "s3cretpass"}).
		Do(http.HandlerFunc(h.Login))

	helpers.AssertStatus(t, rr, http.StatusOK)
	if gotEmail != "Dev@Example.com" || gotPassword != "s3cretpass" {
		t.Errorf("service received %q / %q", gotEmail, gotPassword)
	}

	token := helpers.GetDataFromResponse(t, rr)["token"].(map[string]interface{})
	if token["access_token"] != "header.payload.signature" {
		t.Errorf("unexpected access_token %v", token["access_token"])
	}
}

func TestAuthHandler_Login_Form(t *testing.T) {
	t.Parallel()

	var gotEmail string
	h := newTestAuthHandler(&mockAuthService{
		loginFunc: func(_ context.Context, email, _ string) (*service.AuthResult, error) {
			gotEmail = email
			return newTestAuthResult(), nil
		},
	})

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/auth/login").
		WithForm(url.Values{"username": {"dev@example.com"}, "password": {"s3cretpass"}}).
		Do(http.HandlerFunc(h.Login))

	helpers.AssertStatus(t, rr, http.StatusOK)
	if gotEmail != "dev@example.com" {
		t.Errorf("expected username to be used as email, got %q", gotEmail)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	t.Parallel()

	called := false
	h := newTestAuthHandler(&mockAuthService{
		loginFunc: func(context.Context, string, string) (*service.AuthResult, error) {
			called = true
			return nil, nil
		},
	})

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/auth/login").
		WithBody(LoginRequest{}).
		Do(http.HandlerFunc(h.Login))

	helpers.AssertValidationError(t, rr, "email")
	helpers.AssertValidationError(t, rr, "password")
	if called {
		t.Error("service should not be called without credentials")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	h := newTestAuthHandler(&mockAuthService{
		loginFunc: func(context.Context, string, string) (*service.AuthResult, error) {
			return nil, service.ErrInvalidCredentials
		},
	})

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/auth/login").
		WithBody(LoginRequest{Email: "dev@example.com", Password: "wrongpass1"}).
		Do(http.HandlerFunc(h.Login))

	problem := helpers.AssertProblemDetails(t, rr, http.StatusUnauthorized, model.ErrCodeLoginFailed)
	if problem.Detail != "Incorrect email or password" {
		t.Errorf("unexpected detail %q", problem.Detail)
	}
	if rr.Header().Get("WWW-Authenticate") != "Bearer" {
		t.Errorf("expected WWW-Authenticate: Bearer, got %q", rr.Header().Get("WWW-Authenticate"))
	}
}

// ============================================================================
// Me Tests
// ============================================================================

func TestAuthHandler_Me(t *testing.T) {
	t.Parallel()

	h := newTestAuthHandler(&mockAuthService{})

	t.Run("without account", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Me(rr, httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil))

		helpers.AssertProblemDetails(t, rr, http.StatusUnauthorized, model.ErrCodeUnauthorized)
	})

	t.Run("with account", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
		req = req.WithContext(context.WithValue(req.Context(), middleware.AccountKey, newTestAccount()))
		rr := httptest.NewRecorder()
		h.Me(rr, req)

		helpers.AssertStatus(t, rr, http.StatusOK)
		if got := helpers.GetDataFromResponse(t, rr)["email"]; got != "dev@example.com" {
			t.Errorf("expected email dev@example.com, got %v", got)
		}
	})
}
