package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/forgo/freelancehub/api/internal/model"
	"github.com/forgo/freelancehub/api/internal/service"
)

// Authorizer resolves a bearer token to the account it was issued for
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*model.AccountView, error)
}

// Auth returns a middleware that requires a valid bearer token. Every
// token failure gets the same 401 so callers learn nothing about why.
func Auth(authorizer Authorizer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				model.NewUnauthorizedError("Could not validate credentials").WriteJSON(w)
				return
			}

			account, err := authorizer.Authorize(r.Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrStoreUnavailable) {
					model.NewServiceUnavailableError().WriteJSON(w)
					return
				}
				model.NewUnauthorizedError("Could not validate credentials").WriteJSON(w)
				return
			}

			ctx := context.WithValue(r.Context(), AccountKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header
func bearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// GetAccount extracts the authenticated account from context
func GetAccount(ctx context.Context) *model.AccountView {
	if account, ok := ctx.Value(AccountKey).(*model.AccountView); ok {
		return account
	}
	return nil
}
