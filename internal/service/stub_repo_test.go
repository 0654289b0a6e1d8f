package service

import (
	"context"
	"sync"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/repository"
)

// memUserRepo is an in-memory UserRepository with the same version-guard
// semantics as the Mongo implementation. forcedConflicts rejects that many
// guarded writes up front to exercise the retry loop.
type memUserRepo struct {
	mu              sync.Mutex
	users           map[string]*domain.User
	forcedConflicts int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) ReplaceCart(_ context.Context, userID string, cart domain.Cart, version int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forcedConflicts > 0 {
		r.forcedConflicts--
		return repository.ErrVersionConflict
	}
	user, ok := r.users[userID]
	if !ok || user.Version != version {
		return repository.ErrVersionConflict
	}
	user.Cart = cart
	user.Version++
	return nil
}

func (r *memUserRepo) ReplaceAddresses(_ context.Context, userID string, addresses []domain.Address, version int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forcedConflicts > 0 {
		r.forcedConflicts--
		return repository.ErrVersionConflict
	}
	user, ok := r.users[userID]
	if !ok || user.Version != version {
		return repository.ErrVersionConflict
	}
	user.Addresses = addresses
	user.Version++
	return nil
}

func (r *memUserRepo) seed(user *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = cloneUser(user)
}

func cloneUser(user *domain.User) *domain.User {
	clone := *user
	if user.Cart != nil {
		clone.Cart = domain.Cart{}
		for id, qty := range user.Cart {
			clone.Cart[id] = qty
		}
	}
	if user.Addresses != nil {
		clone.Addresses = make([]domain.Address, len(user.Addresses))
		copy(clone.Addresses, user.Addresses)
	}
	return &clone
}
