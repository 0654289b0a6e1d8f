package domain

// Product is a read-only catalog entry. Domain is the grouping key for the
// all-products listing and is dropped from the response payload.
type Product struct {
	ID     string `bson:"_id" json:"id"`
	Name   string `bson:"name" json:"name"`
	Domain string `bson:"domain" json:"-"`
}
