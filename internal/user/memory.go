package user

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is a mutex-guarded in-memory Repository enforcing unique
// emails, mirroring the Postgres unique index.
type MemoryRepository struct {
	mu    sync.Mutex
	users map[string]User
}

// NewMemoryRepository creates an empty in-memory repo.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]User)}
}

// GetByEmail returns the user for email, or nil when absent.
func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := u
	return &cp, nil
}

// Insert writes a new user; a duplicate email fails with ErrEmailTaken and
// never overwrites the stored record.
func (r *MemoryRepository) Insert(_ context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return ErrEmailTaken
	}
	r.users[u.Email] = u
	return nil
}

// ListByRole returns all users with the given role, ordered by email.
func (r *MemoryRepository) ListByRole(_ context.Context, role string) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []User
	for _, u := range r.users {
		if u.Role == role {
			res = append(res, u)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Email < res[j].Email })
	return res, nil
}

// UpdateApproval overwrites the approval field if the user exists.
func (r *MemoryRepository) UpdateApproval(_ context.Context, email, approval string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		u.Approval = approval
		r.users[email] = u
	}
	return nil
}
