package handler

import (
	"context"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/forgo/freelancehub/api/internal/middleware"
	"github.com/forgo/freelancehub/api/internal/model"
	"github.com/forgo/freelancehub/api/internal/service"
)

// AuthService is the subset of the auth service the handler calls
type AuthService interface {
	Register(ctx context.Context, req service.RegisterRequest) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService AuthService
	now         func() time.Time
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		now:         time.Now,
	}
}

// RegisterRequest represents the register endpoint request body
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest represents the login endpoint request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse represents an issued bearer token
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User  *model.AccountView `json:"user"`
	Token TokenResponse      `json:"token"`
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterRequest{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, h.toAuthResponse(result), map[string]string{
		"self": "/v1/auth/me",
	})
}

// Login handles POST /v1/auth/login.
// Accepts a JSON body or an OAuth2 password-grant style form
// (username, password).
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLogin(r)
	if !ok {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	var fieldErrors []model.FieldError
	if strings.TrimSpace(req.Email) == "" {
		fieldErrors = append(fieldErrors, model.FieldError{Field: "email", Message: "email is required"})
	}
	if req.Password == "" {
		fieldErrors = append(fieldErrors, model.FieldError{Field: "password", Message: "password is required"})
	}
	if len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, h.toAuthResponse(result), map[string]string{
		"self": "/v1/auth/me",
	})
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	account := middleware.GetAccount(r.Context())
	if account == nil {
		WriteError(w, model.NewUnauthorizedError("Could not validate credentials"))
		return
	}

	WriteData(w, http.StatusOK, account, nil)
}

func decodeLogin(r *http.Request) (LoginRequest, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return LoginRequest{}, false
		}
		email := r.PostForm.Get("username")
		if email == "" {
			email = r.PostForm.Get("email")
		}
		return LoginRequest{Email: email, Password: r.PostForm.Get("password")}, true
	}

	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		return LoginRequest{}, false
	}
	return req, true
}

func (h *AuthHandler) toAuthResponse(result *service.AuthResult) AuthResponse {
	expiresIn := int(result.ExpiresAt.Sub(h.now()).Seconds())
	if expiresIn < 0 {
		expiresIn = 0
	}
	return AuthResponse{
		User: result.Account,
		Token: TokenResponse{
			AccessToken: result.Token,
			TokenType:   "bearer",
			ExpiresIn:   expiresIn,
			ExpiresAt:   result.ExpiresAt,
		},
	}
}
