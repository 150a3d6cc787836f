package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents one saree listing in the catalog.
// StockQuantity is the units available for purchase; the cart ledger
// reads it under a row lock when reserving.
type Product struct {
	ID            string
	CategoryID    string
	SKU           string
	Slug          string // unique, used in storefront URLs
	Name          string
	Description   string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal // pre-discount price; nil when not on sale
	StockQuantity int
	ImageURL      string
	Material      string
	WeaveType     string
	Color         string
	IsFeatured    bool
	IsNew         bool
	IsSale        bool
	Rating        decimal.Decimal
	ReviewCount   int
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined from categories on reads; not persisted on the product row.
	CategoryName string
	CategorySlug string
}
