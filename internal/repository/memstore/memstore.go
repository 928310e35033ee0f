// Package memstore keeps accounts and projects in process memory.
//
// It backs DB_DRIVER=memory for local development and the handler tests.
// Every value handed in or out is copied, so callers never share state
// with the store.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/forgo/freelancehub/api/internal/database"
	"github.com/forgo/freelancehub/api/internal/model"
)

// AccountStore is a concurrency-safe in-memory account store keyed by email
type AccountStore struct {
	mu      sync.RWMutex
	byEmail map[string]*model.Account
}

// NewAccountStore creates an empty account store
func NewAccountStore() *AccountStore {
	return &AccountStore{byEmail: make(map[string]*model.Account)}
}

// Create stores an account, failing with database.ErrDuplicate if the email is taken
func (s *AccountStore) Create(_ context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[account.Email]; ok {
		return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
	}
	cp := *account
	s.byEmail[account.Email] = &cp
	return nil
}

// GetByEmail returns nil, nil when no account has the email
func (s *AccountStore) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

// Delete removes the account with the given email
func (s *AccountStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byEmail, email)
	return nil
}

// ProjectStore is a concurrency-safe in-memory project store
type ProjectStore struct {
	mu       sync.RWMutex
	projects map[string]*model.Project
}

// NewProjectStore creates an empty project store
func NewProjectStore() *ProjectStore {
	return &ProjectStore{projects: make(map[string]*model.Project)}
}

func copyProject(p *model.Project) *model.Project {
	cp := *p
	cp.TechStack = append([]string(nil), p.TechStack...)
	return &cp
}

// Create stores a project
func (s *ProjectStore) Create(_ context.Context, project *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[project.ID] = copyProject(project)
	return nil
}

// GetByID returns nil, nil when the project does not exist
func (s *ProjectStore) GetByID(_ context.Context, id string) (*model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	return copyProject(p), nil
}

// Find evaluates the predicate against every project, then sorts and paginates
func (s *ProjectStore) Find(_ context.Context, p model.Predicate, opts model.ListOptions) ([]*model.Project, error) {
	s.mu.RLock()
	matched := make([]*model.Project, 0)
	for _, project := range s.projects {
		if p.Matches(project) {
			matched = append(matched, copyProject(project))
		}
	}
	s.mu.RUnlock()

	if opts.Sort.Field == model.FieldCreatedAt {
		sort.SliceStable(matched, func(i, j int) bool {
			a, b := matched[i], matched[j]
			if !a.CreatedAt.Equal(b.CreatedAt) {
				if opts.Sort.Descending {
					return a.CreatedAt.After(b.CreatedAt)
				}
				return a.CreatedAt.Before(b.CreatedAt)
			}
			// ties broken by ID so pages are stable
			if opts.Sort.Descending {
				return a.ID > b.ID
			}
			return a.ID < b.ID
		})
	}

	if opts.Offset >= len(matched) {
		return []*model.Project{}, nil
	}
	matched = matched[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

// UpdateStatus applies the change only if the project is still in from
func (s *ProjectStore) UpdateStatus(_ context.Context, id string, from, to model.ProjectStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok || p.Status != from {
		return false, nil
	}
	p.Status = to
	return true, nil
}
