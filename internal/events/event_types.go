package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered     EventType = "user_registered"
	EventCartUpdated        EventType = "cart_updated"
	EventAddressBookUpdated EventType = "address_book_updated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CartUpdatedPayload payload.
type CartUpdatedPayload struct {
	ProductID string `json:"product_id"`
	Action    string `json:"action"`
}

// AddressBookUpdatedPayload payload.
type AddressBookUpdatedPayload struct {
	Action string `json:"action"`
	Index  *int   `json:"index,omitempty"`
}
