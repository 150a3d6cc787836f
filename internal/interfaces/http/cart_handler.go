package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/Faraz011/virasat2/internal/application/cart"
	"github.com/Faraz011/virasat2/internal/application/dto"
	"github.com/Faraz011/virasat2/internal/domain"
)

// CartHandler handles the cart ledger endpoints. Mutations require a
// resolved account (401 otherwise); GET degrades to an empty view.
type CartHandler struct {
	uc *cart.UseCase
}

// NewCartHandler builds the handler.
func NewCartHandler(uc *cart.UseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Get godoc
// @Summary      Current cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		// No session: empty view, not an error.
		return c.JSON(dto.CartResponse{Items: []dto.CartItemResponse{}, Subtotal: decimal.Zero})
	}
	out, err := h.uc.GetCart(c.Context(), accountID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Add a product to the cart
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "product_id, quantity (default 1)"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id is required"})
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	out, err := h.uc.AddItem(c.Context(), GetAccountID(c), in.ProductID, in.Quantity)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Set a cart line's quantity
// @Description  Quantity 0 or below removes the line.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "cart line id"
// @Param        body  body  dto.UpdateCartItemRequest  true  "quantity"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/items/{id} [patch]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.UpdateItem(c.Context(), GetAccountID(c), c.Params("id"), in.Quantity)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Remove a cart line
// @Description  Idempotent: removing an absent line returns the unchanged cart.
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "cart line id"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.Context(), GetAccountID(c), c.Params("id"))
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Clear the cart
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	out, err := h.uc.ClearCart(c.Context(), GetAccountID(c))
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(out)
}

// cartError maps ledger errors to status + machine-readable code. The code
// is the discriminator the UI switches on; messages are for humans.
func cartError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "quantity must be at least 1"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product or cart line not found"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "not enough stock available"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
