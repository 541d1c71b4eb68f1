package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepository is a mutex-guarded in-memory Repository, used by the
// test suite and the memory storage backend.
type memoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]*User
}

// NewMemoryRepository creates an empty in-memory Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

func (r *memoryRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (r *memoryRepository) Create(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}

	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()

	stored := copyUser(u)
	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored
	return nil
}

func (r *memoryRepository) Update(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[u.ID]
	if !ok {
		return ErrNotFound
	}

	stored.Name = u.Name
	stored.PasswordHash = u.PasswordHash
	return nil
}

func copyUser(u *User) *User {
	clean := *u
	return &clean
}
