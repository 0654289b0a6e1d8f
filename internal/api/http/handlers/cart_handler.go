package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/service"
	"github.com/spec-kit/shop-service/pkg/util"
)

// CartHandler exposes cart endpoints. All routes sit behind the session
// middleware, which resolves the acting user from the token.
type CartHandler struct {
	carts *service.CartService
}

// NewCartHandler constructs handler.
func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// GetDefault handles POST /getDefaultCart.
func (h *CartHandler) GetDefault(c *fiber.Ctx) error {
	userID, ok := auth.SessionUserID(c)
	if !ok {
		return util.NewInvalidToken()
	}

	cart, err := h.carts.Cart(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "Cart": cart})
}

// Add handles POST /addToCart.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	return h.mutate(c, h.carts.AddItem)
}

// Remove handles POST /removeFromCart.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	return h.mutate(c, h.carts.RemoveItem)
}

// Delete handles POST /deleteFromCart.
func (h *CartHandler) Delete(c *fiber.Ctx) error {
	return h.mutate(c, h.carts.DeleteItem)
}

func (h *CartHandler) mutate(c *fiber.Ctx, op func(ctx context.Context, userID, productID string) error) error {
	userID, ok := auth.SessionUserID(c)
	if !ok {
		return util.NewInvalidToken()
	}

	var req dto.CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload")
	}
	if req.ProductID == "" {
		return util.NewValidationError("product_id required")
	}

	if err := op(c.UserContext(), userID, req.ProductID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
