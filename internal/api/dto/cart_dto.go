package dto

// CartItemRequest identifies the product targeted by a cart mutation.
type CartItemRequest struct {
	ProductID string `json:"product_id"`
}
