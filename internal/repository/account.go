package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/freelancehub/api/internal/database"
	"github.com/forgo/freelancehub/api/internal/model"
)

// AccountRepository handles account data access
type AccountRepository struct {
	db database.Database
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db database.Database) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create stores a new account under its generated ID. A second account
// with the same email fails on the unique index with database.ErrDuplicate.
func (r *AccountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `
		CREATE type::thing('account', $id) CONTENT {
			email: $email,
			first_name: $first_name,
			last_name: $last_name,
			hash: $hash,
			created_at: <datetime> $created_at
		}
	`
	vars := map[string]interface{}{
		"id":         account.ID,
		"email":      account.Email,
		"first_name": account.FirstName,
		"last_name":  account.LastName,
		"hash":       account.Hash,
		"created_at": formatTime(account.CreatedAt),
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByEmail retrieves an account by its normalized email.
// Returns nil, nil when no account exists.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `SELECT * FROM account WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return parseAccount(result)
}

// GetByID retrieves an account by ID. Returns nil, nil when absent.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*model.Account, error) {
	query := `SELECT * FROM type::thing('account', $id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return parseAccount(result)
}

// Delete removes an account
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::thing('account', $id)`
	if err := r.db.Execute(ctx, query, map[string]interface{}{"id": id}); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func parseAccount(result interface{}) (*model.Account, error) {
	if result == nil {
		return nil, nil
	}
	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	return &model.Account{
		ID:        recordKey(data["id"]),
		Email:     getString(data, "email"),
		FirstName: getString(data, "first_name"),
		LastName:  getString(data, "last_name"),
		Hash:      getString(data, "hash"),
		CreatedAt: getTime(data, "created_at"),
	}, nil
}
