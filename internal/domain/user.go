package domain

import "time"

// Cart maps a product identifier to the quantity held. Quantities never go
// below one; removing the last unit drops the key instead.
type Cart map[string]int

// Address is a caller-defined record stored positionally in a user's address
// book. Its zero-based position is the only external reference and shifts
// when an earlier entry is deleted.
type Address map[string]any

// User is the single document of record for one shopper. Profile, address
// book and cart live together; Version guards concurrent field writes.
type User struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Addresses    []Address `bson:"addresses"`
	Cart         Cart      `bson:"cart"`
	Version      int64     `bson:"version"`
	CreatedAt    time.Time `bson:"created_at"`
}
