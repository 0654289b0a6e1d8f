package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/service"
	"github.com/spec-kit/shop-service/pkg/util"
)

// IndexHeader carries the address book position targeted by an edit.
const IndexHeader = "index-to-modify"

// AddressHandler exposes address book endpoints.
type AddressHandler struct {
	addresses *service.AddressService
}

// NewAddressHandler constructs handler.
func NewAddressHandler(addresses *service.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// Get handles POST /getAddress.
func (h *AddressHandler) Get(c *fiber.Ctx) error {
	userID, ok := auth.SessionUserID(c)
	if !ok {
		return util.NewInvalidToken()
	}

	addresses, err := h.addresses.Addresses(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "Address": addresses})
}

// Add handles POST /addAddress. The whole request body is the address record;
// its shape is caller-defined.
func (h *AddressHandler) Add(c *fiber.Ctx) error {
	userID, ok := auth.SessionUserID(c)
	if !ok {
		return util.NewInvalidToken()
	}

	address, err := parseAddress(c)
	if err != nil {
		return err
	}

	if err := h.addresses.Add(c.UserContext(), userID, address); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Edit handles POST /editAddress. The target position arrives in the
// index-to-modify header; a missing or unparsable header appends, matching
// the out-of-range behavior.
func (h *AddressHandler) Edit(c *fiber.Ctx) error {
	userID, ok := auth.SessionUserID(c)
	if !ok {
		return util.NewInvalidToken()
	}

	address, err := parseAddress(c)
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(c.Get(IndexHeader))
	if err != nil {
		index = -1
	}

	if err := h.addresses.Edit(c.UserContext(), userID, index, address); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Delete handles POST /delAddress.
func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	userID, ok := auth.SessionUserID(c)
	if !ok {
		return util.NewInvalidToken()
	}

	var req dto.DeleteAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload")
	}

	if err := h.addresses.Delete(c.UserContext(), userID, req.Index); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

func parseAddress(c *fiber.Ctx) (domain.Address, error) {
	var address domain.Address
	if err := json.Unmarshal(c.Body(), &address); err != nil {
		return nil, util.NewValidationError("invalid payload")
	}
	return address, nil
}
