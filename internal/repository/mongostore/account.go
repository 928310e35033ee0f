package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/forgo/freelancehub/api/internal/database"
	"github.com/forgo/freelancehub/api/internal/model"
)

type accountDocument struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	FirstName string    `bson:"first_name"`
	LastName  string    `bson:"last_name"`
	Hash      string    `bson:"hash"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d accountDocument) model() *model.Account {
	return &model.Account{
		ID:        d.ID,
		Email:     d.Email,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Hash:      d.Hash,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// AccountStore persists accounts in the users collection
type AccountStore struct {
	coll *mongo.Collection
}

// NewAccountStore creates an account store over the given collection
func NewAccountStore(coll *mongo.Collection) *AccountStore {
	return &AccountStore{coll: coll}
}

// Create inserts an account. The unique email index reports a second
// account for the same email as database.ErrDuplicate.
func (s *AccountStore) Create(ctx context.Context, account *model.Account) error {
	_, err := s.coll.InsertOne(ctx, accountDocument{
		ID:        account.ID,
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Hash:      account.Hash,
		CreatedAt: account.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByEmail retrieves an account by normalized email. Returns nil, nil when absent.
func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	return s.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

// GetByID retrieves an account by ID. Returns nil, nil when absent.
func (s *AccountStore) GetByID(ctx context.Context, id string) (*model.Account, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

// Delete removes an account
func (s *AccountStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func (s *AccountStore) findOne(ctx context.Context, filter bson.D) (*model.Account, error) {
	var doc accountDocument
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return doc.model(), nil
}
