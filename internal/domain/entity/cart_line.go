package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one (account, product) quantity record in the cart ledger.
// At most one line exists per pair; quantity is always >= 1 — a line
// driven to zero is deleted, never stored.
type CartLine struct {
	ID        string
	AccountID string
	ProductID string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartLineDetail is a CartLine joined with the product display data the
// storefront needs to render it.
type CartLineDetail struct {
	CartLine
	Name          string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	ImageURL      string
	Slug          string
}
