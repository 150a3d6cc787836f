package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest input for creating a product (admin).
type CreateProductRequest struct {
	CategoryID    string           `json:"category_id" validate:"required,uuid"`
	SKU           string           `json:"sku" validate:"required,max=64"`
	Slug          string           `json:"slug" validate:"required,max=200"`
	Name          string           `json:"name" validate:"required,max=200"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price" validate:"required"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	StockQuantity int              `json:"stock_quantity" validate:"min=0"`
	ImageURL      string           `json:"image_url"`
	Material      string           `json:"material"`
	WeaveType     string           `json:"weave_type"`
	Color         string           `json:"color"`
	IsFeatured    bool             `json:"is_featured"`
	IsNew         bool             `json:"is_new"`
	IsSale        bool             `json:"is_sale"`
}

// UpdateProductRequest input for updating a product (admin); nil fields are untouched.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	StockQuantity *int             `json:"stock_quantity"`
	ImageURL      *string          `json:"image_url"`
	Material      *string          `json:"material"`
	WeaveType     *string          `json:"weave_type"`
	Color         *string          `json:"color"`
	IsFeatured    *bool            `json:"is_featured"`
	IsNew         *bool            `json:"is_new"`
	IsSale        *bool            `json:"is_sale"`
}

// ProductResponse one product as rendered by the storefront.
type ProductResponse struct {
	ID            string           `json:"id"`
	CategoryID    string           `json:"category_id"`
	SKU           string           `json:"sku"`
	Slug          string           `json:"slug"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	StockQuantity int              `json:"stock_quantity"`
	ImageURL      string           `json:"image_url"`
	Material      string           `json:"material"`
	WeaveType     string           `json:"weave_type"`
	Color         string           `json:"color"`
	IsFeatured    bool             `json:"is_featured"`
	IsNew         bool             `json:"is_new"`
	IsSale        bool             `json:"is_sale"`
	Rating        decimal.Decimal  `json:"rating"`
	ReviewCount   int              `json:"review_count"`
	CategoryName  string           `json:"category_name,omitempty"`
	CategorySlug  string           `json:"category_slug,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ProductListResponse page of products.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CategoryResponse one category.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Region      string `json:"region,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// ProductImageResponse one gallery image.
type ProductImageResponse struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	IsPrimary    bool   `json:"is_primary"`
	DisplayOrder int    `json:"display_order"`
}
