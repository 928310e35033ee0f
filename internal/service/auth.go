package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/freelancehub/api/internal/credential"
	"github.com/forgo/freelancehub/api/internal/database"
	"github.com/forgo/freelancehub/api/internal/model"
	"github.com/forgo/freelancehub/api/pkg/jwt"
)

// AccountStore defines the interface for account storage
type AccountStore interface {
	// GetByEmail returns nil, nil when no account has the (normalized) email
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	// Create returns an error wrapping database.ErrDuplicate if the email is taken
	Create(ctx context.Context, account *model.Account) error
}

// CredentialHasher hashes and verifies plaintext secrets
type CredentialHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
	VerifyDummy(plaintext string) bool
}

// TokenCodec mints and decodes session tokens
type TokenCodec interface {
	Mint(subject string) (string, jwt.Claims, error)
	Decode(token string) (*jwt.Claims, error)
}

// AuthService handles registration, login and bearer token authorization
type AuthService struct {
	accounts AccountStore
	hasher   CredentialHasher
	tokens   TokenCodec
	logger   *slog.Logger
	now      func() time.Time
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	Accounts AccountStore
	Hasher   CredentialHasher
	Tokens   TokenCodec
	Logger   *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		accounts: cfg.Accounts,
		hasher:   cfg.Hasher,
		tokens:   cfg.Tokens,
		logger:   logger.With(slog.String("service", "auth")),
		now:      time.Now,
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
	Password  string `json:"-"`
}

// AuthResult is returned by a successful register or login
type AuthResult struct {
	Account   *model.AccountView
	Token     string
	ExpiresAt time.Time
}

// NormalizeEmail is the identity key used for every account lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and signs the caller in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	req.Email = NormalizeEmail(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if err := validateStruct(ErrInvalidAccount, req); err != nil {
		return nil, err
	}
	if err := credential.CheckStrength(req.Password); err != nil {
		return nil, ErrWeakCredential
	}

	existing, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, storeError("looking up account", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		ID:        uuid.New().String(),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Hash:      hash,
		CreatedAt: s.now().UTC(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		// Lost a race with a concurrent registration for the same email
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, storeError("creating account", err)
	}

	s.logger.Info("account registered", slog.String("account_id", account.ID))

	return s.issue(account)
}

// Login verifies an email/password pair and issues a fresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	account, err := s.accounts.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, storeError("looking up account", err)
	}

	if account == nil {
		s.hasher.VerifyDummy(password)
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, account.Hash) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(account)
}

// Authorize resolves a bearer token to the account it was issued for.
// Every token failure and a since-deleted account yield ErrUnauthorized.
func (s *AuthService) Authorize(ctx context.Context, token string) (*model.AccountView, error) {
	claims, err := s.tokens.Decode(token)
	if err != nil {
		s.logger.Debug("token rejected", slog.String("reason", tokenFailureKind(err)))
		return nil, ErrUnauthorized
	}

	account, err := s.accounts.GetByEmail(ctx, NormalizeEmail(claims.Subject))
	if err != nil {
		return nil, storeError("resolving token subject", err)
	}
	if account == nil {
		s.logger.Debug("token rejected", slog.String("reason", ErrAccountNotFound.Error()))
		return nil, ErrUnauthorized
	}

	return account.View(), nil
}

func (s *AuthService) issue(account *model.Account) (*AuthResult, error) {
	token, claims, err := s.tokens.Mint(account.Email)
	if err != nil {
		return nil, fmt.Errorf("minting token: %w", err)
	}
	return &AuthResult{
		Account:   account.View(),
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// tokenFailureKind names a decode failure for logs
func tokenFailureKind(err error) string {
	switch {
	case errors.Is(err, jwt.ErrExpired):
		return "expired"
	case errors.Is(err, jwt.ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, jwt.ErrMalformed):
		return "malformed"
	default:
		return "unknown"
	}
}
