package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/forgo/freelancehub/api/internal/database"
	"github.com/forgo/freelancehub/api/internal/model"
)

var errStoreDown = errors.New("connection refused")

// ============================================================================
// Account Store Fake
// ============================================================================

type fakeAccountStore struct {
	mu        sync.Mutex
	byEmail   map[string]*model.Account
	creates   int
	getErr    error
	createErr error
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{byEmail: make(map[string]*model.Account)}
}

func (f *fakeAccountStore) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccountStore) Create(_ context.Context, account *model.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[account.Email]; ok {
		return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
	}
	cp := *account
	f.byEmail[account.Email] = &cp
	f.creates++
	return nil
}

func (f *fakeAccountStore) delete(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byEmail, email)
}

func (f *fakeAccountStore) stored(email string) *model.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byEmail[email]
}

// ============================================================================
// Project Store Fake
// ============================================================================

type fakeProjectStore struct {
	mu        sync.Mutex
	projects  map[string]*model.Project
	lastQuery model.Predicate
	lastOpts  model.ListOptions
	err       error
	// beforeUpdate runs inside UpdateStatus to simulate a concurrent writer
	beforeUpdate func()
}

func newFakeProjectStore(seed ...*model.Project) *fakeProjectStore {
	f := &fakeProjectStore{projects: make(map[string]*model.Project)}
	for _, p := range seed {
		f.projects[p.ID] = p
	}
	return f
}

func (f *fakeProjectStore) Find(_ context.Context, p model.Predicate, opts model.ListOptions) ([]*model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = p
	f.lastOpts = opts
	if f.err != nil {
		return nil, f.err
	}

	var matched []*model.Project
	for _, project := range f.projects {
		if p.Matches(project) {
			cp := *project
			matched = append(matched, &cp)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if opts.Sort.Descending {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	if opts.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func (f *fakeProjectStore) GetByID(_ context.Context, id string) (*model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.projects[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjectStore) Create(_ context.Context, project *model.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	cp := *project
	f.projects[project.ID] = &cp
	return nil
}

func (f *fakeProjectStore) UpdateStatus(_ context.Context, id string, from, to model.ProjectStatus) (bool, error) {
	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	p, ok := f.projects[id]
	if !ok || p.Status != from {
		return false, nil
	}
	p.Status = to
	return true, nil
}

// ============================================================================
// Clock
// ============================================================================

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
