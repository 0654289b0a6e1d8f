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

// mutationAttempts bounds the load-compute-write retry loop when a guarded
// write loses to a concurrent mutation of the same document.
const mutationAttempts = 3

// CartService applies mutations to a user's cart map.
type CartService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewCartService builds the service.
func NewCartService(users repository.UserRepository, dispatcher events.Dispatcher) *CartService {
	return &CartService{users: users, dispatcher: dispatcher}
}

// AddItem increments the held quantity by one, initializing the entry (and
// the cart itself) when absent.
func (s *CartService) AddItem(ctx context.Context, userID, productID string) error {
	err := s.mutate(ctx, userID, func(cart domain.Cart) domain.Cart {
		cart[productID]++
		return cart
	})
	if err != nil {
		return err
	}
	s.publish(ctx, userID, productID, "add")
	return nil
}

// RemoveItem decrements the held quantity by one. Quantities never go
// negative: at one unit (or no entry at all) the key is removed instead.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) error {
	err := s.mutate(ctx, userID, func(cart domain.Cart) domain.Cart {
		if qty := cart[productID]; qty > 1 {
			cart[productID] = qty - 1
		} else {
			delete(cart, productID)
		}
		return cart
	})
	if err != nil {
		return err
	}
	s.publish(ctx, userID, productID, "remove")
	return nil
}

// DeleteItem removes the entry regardless of quantity. Deleting an absent
// entry is a no-op.
func (s *CartService) DeleteItem(ctx context.Context, userID, productID string) error {
	err := s.mutate(ctx, userID, func(cart domain.Cart) domain.Cart {
		delete(cart, productID)
		return cart
	})
	if err != nil {
		return err
	}
	s.publish(ctx, userID, productID, "delete")
	return nil
}

// Cart returns the user's cart, empty when none exists.
func (s *CartService) Cart(ctx context.Context, userID string) (domain.Cart, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, mapUserLoadError(err)
	}
	if user.Cart == nil {
		return domain.Cart{}, nil
	}
	return user.Cart, nil
}

func (s *CartService) mutate(ctx context.Context, userID string, apply func(domain.Cart) domain.Cart) error {
	for attempt := 0; attempt < mutationAttempts; attempt++ {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return mapUserLoadError(err)
		}

		cart := domain.Cart{}
		for id, qty := range user.Cart {
			cart[id] = qty
		}
		cart = apply(cart)

		err = s.users.ReplaceCart(ctx, userID, cart, user.Version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return util.NewPersistenceError(err)
		}
	}
	return util.NewPersistenceError(repository.ErrVersionConflict)
}

func (s *CartService) publish(ctx context.Context, userID, productID, action string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventCartUpdated,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Payload:   events.CartUpdatedPayload{ProductID: productID, Action: action},
	})
}

func mapUserLoadError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return util.NewNotFound("User Not Found")
	}
	return util.NewPersistenceError(err)
}
