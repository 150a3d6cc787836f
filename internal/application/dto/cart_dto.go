package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddCartItemRequest input for adding a product to the cart.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

// UpdateCartItemRequest input for setting a line's quantity.
// Zero or negative removes the line (same effect as DELETE).
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse one cart line enriched with product display data.
type CartItemResponse struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"product_id"`
	Quantity      int              `json:"quantity"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	ImageURL      string           `json:"image_url"`
	Slug          string           `json:"slug"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// CartResponse the account's current cart view. Each successful mutation
// returns this refreshed view; it is the client cache's source of truth.
type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}
