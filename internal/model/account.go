package model

import "time"

// Account represents a registered marketplace user
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Hash      string    `json:"-"` // bcrypt output, never serialized
	CreatedAt time.Time `json:"created_at"`
}

// AccountView is the public projection of an Account.
// It has no credential field.
type AccountView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"created_at"`
}

// View strips the credential from an account
func (a *Account) View() *AccountView {
	if a == nil {
		return nil
	}
	return &AccountView{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		CreatedAt: a.CreatedAt,
	}
}
