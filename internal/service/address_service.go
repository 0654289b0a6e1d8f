package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/events"
	"github.com/spec-kit/shop-service/internal/repository"
	"github.com/spec-kit/shop-service/pkg/util"
)

// AddressService applies mutations to a user's ordered address book.
// Entries are referenced by zero-based position only; deleting an entry
// shifts every later position down by one.
type AddressService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewAddressService builds the service.
func NewAddressService(users repository.UserRepository, dispatcher events.Dispatcher) *AddressService {
	return &AddressService{users: users, dispatcher: dispatcher}
}

// Add appends the address to the end of the book.
func (s *AddressService) Add(ctx context.Context, userID string, address domain.Address) error {
	err := s.mutate(ctx, userID, func(addresses []domain.Address) []domain.Address {
		return append(addresses, address)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, userID, "add", nil)
	return nil
}

// Edit replaces the entry at index when it exists. An out-of-range index
// appends instead of failing, so clients holding slightly stale positions
// are never rejected.
func (s *AddressService) Edit(ctx context.Context, userID string, index int, address domain.Address) error {
	err := s.mutate(ctx, userID, func(addresses []domain.Address) []domain.Address {
		if index >= 0 && index < len(addresses) {
			addresses[index] = address
			return addresses
		}
		return append(addresses, address)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, userID, "edit", &index)
	return nil
}

// Delete removes the entry at index, shifting later entries down. An
// out-of-range index leaves the book unchanged.
func (s *AddressService) Delete(ctx context.Context, userID string, index int) error {
	err := s.mutate(ctx, userID, func(addresses []domain.Address) []domain.Address {
		kept := make([]domain.Address, 0, len(addresses))
		for i, addr := range addresses {
			if i != index {
				kept = append(kept, addr)
			}
		}
		return kept
	})
	if err != nil {
		return err
	}
	s.publish(ctx, userID, "delete", &index)
	return nil
}

// Addresses returns the user's address book, empty when none exists.
func (s *AddressService) Addresses(ctx context.Context, userID string) ([]domain.Address, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, mapUserLoadError(err)
	}
	if user.Addresses == nil {
		return []domain.Address{}, nil
	}
	return user.Addresses, nil
}

func (s *AddressService) mutate(ctx context.Context, userID string, apply func([]domain.Address) []domain.Address) error {
	for attempt := 0; attempt < mutationAttempts; attempt++ {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return mapUserLoadError(err)
		}

		addresses := make([]domain.Address, len(user.Addresses))
		copy(addresses, user.Addresses)
		addresses = apply(addresses)

		err = s.users.ReplaceAddresses(ctx, userID, addresses, user.Version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return util.NewPersistenceError(err)
		}
	}
	return util.NewPersistenceError(repository.ErrVersionConflict)
}

func (s *AddressService) publish(ctx context.Context, userID, action string, index *int) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAddressBookUpdated,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Payload:   events.AddressBookUpdatedPayload{Action: action, Index: index},
	})
}
