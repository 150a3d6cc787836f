package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Faraz011/virasat2/internal/domain"
	"github.com/Faraz011/virasat2/internal/domain/entity"
	"github.com/Faraz011/virasat2/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `
	p.id, p.category_id, p.sku, p.slug, p.name, p.description, p.price, p.original_price,
	p.stock_quantity, p.image_url, p.material, p.weave_type, p.color,
	p.is_featured, p.is_new, p.is_sale, p.rating, p.review_count, p.created_at, p.updated_at`

// ProductRepo implements the ProductRepository port over PostgreSQL (usable with pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the product persistence adapter. Pass a pool or a tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persists a new product.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, category_id, sku, slug, name, description, price, original_price,
			stock_quantity, image_url, material, weave_type, color,
			is_featured, is_new, is_sale, rating, review_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CategoryID, product.SKU, product.Slug, product.Name, product.Description,
		product.Price, product.OriginalPrice, product.StockQuantity, product.ImageURL,
		product.Material, product.WeaveType, product.Color,
		product.IsFeatured, product.IsNew, product.IsSale,
		product.Rating, product.ReviewCount, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update writes an existing product's mutable columns.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, price = $4, original_price = $5,
			stock_quantity = $6, image_url = $7, material = $8, weave_type = $9, color = $10,
			is_featured = $11, is_new = $12, is_sale = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price, product.OriginalPrice,
		product.StockQuantity, product.ImageURL, product.Material, product.WeaveType, product.Color,
		product.IsFeatured, product.IsNew, product.IsSale, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// GetByID fetches a product by id (no category join, no lock).
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), false)
}

// GetBySlug fetches a product by slug with its category joined for display.
func (r *ProductRepo) GetBySlug(slug string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `, c.name, c.slug
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.slug = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, slug), true)
}

// GetForUpdate fetches a product by id and locks its row (SELECT FOR UPDATE).
// Callers must be inside a transaction; the lock serializes concurrent
// stock checks against this product until commit or rollback.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), false)
}

// ListFeatured lists featured products, newest first.
func (r *ProductRepo) ListFeatured(limit int) ([]*entity.Product, error) {
	return r.listByFlag("p.is_featured", limit)
}

// ListNew lists new arrivals, newest first.
func (r *ProductRepo) ListNew(limit int) ([]*entity.Product, error) {
	return r.listByFlag("p.is_new", limit)
}

// ListSale lists on-sale products, newest first.
func (r *ProductRepo) ListSale(limit int) ([]*entity.Product, error) {
	return r.listByFlag("p.is_sale", limit)
}

// listByFlag shared query for the boolean storefront sections. The flag
// column name is one of our own constants, never caller input.
func (r *ProductRepo) listByFlag(flag string, limit int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `, c.name, c.slug
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE ` + flag + ` = true
		ORDER BY p.created_at DESC
		LIMIT $1`
	return r.list(query, limit)
}

// ListByCategorySlug lists a category's products with pagination, newest first.
func (r *ProductRepo) ListByCategorySlug(slug string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `, c.name, c.slug
		FROM products p
		JOIN categories c ON p.category_id = c.id
		WHERE c.slug = $1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3`
	return r.list(query, slug, limit, offset)
}

// Search matches one %query% term case-insensitively across the product's
// text columns and the category name. Plain ILIKE substring match,
// no tokenization, no ranking.
func (r *ProductRepo) Search(query string, limit int) ([]*entity.Product, error) {
	term := "%" + query + "%"
	sql := `
		SELECT ` + productColumns + `, c.name, c.slug
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE
			p.name ILIKE $1 OR
			p.description ILIKE $1 OR
			p.material ILIKE $1 OR
			p.weave_type ILIKE $1 OR
			p.color ILIKE $1 OR
			c.name ILIKE $1
		ORDER BY p.created_at DESC
		LIMIT $2`
	return r.list(sql, term, limit)
}

// ListImages lists a product's gallery images, primary first then display order.
func (r *ProductRepo) ListImages(productID string) ([]*entity.ProductImage, error) {
	query := `
		SELECT id, product_id, url, is_primary, display_order
		FROM product_images
		WHERE product_id = $1
		ORDER BY is_primary DESC, display_order ASC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductImage
	for rows.Next() {
		var img entity.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.IsPrimary, &img.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan product image: %w", err)
		}
		list = append(list, &img)
	}
	return list, rows.Err()
}

func (r *ProductRepo) list(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows, true)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) scanOne(row pgx.Row, withCategory bool) (*entity.Product, error) {
	p, err := scanProduct(row, withCategory)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func scanProduct(row pgx.Row, withCategory bool) (*entity.Product, error) {
	var p entity.Product
	dest := []any{
		&p.ID, &p.CategoryID, &p.SKU, &p.Slug, &p.Name, &p.Description, &p.Price, &p.OriginalPrice,
		&p.StockQuantity, &p.ImageURL, &p.Material, &p.WeaveType, &p.Color,
		&p.IsFeatured, &p.IsNew, &p.IsSale, &p.Rating, &p.ReviewCount, &p.CreatedAt, &p.UpdatedAt,
	}
	if withCategory {
		var catName, catSlug *string
		dest = append(dest, &catName, &catSlug)
		if err := row.Scan(dest...); err != nil {
			return nil, err
		}
		if catName != nil {
			p.CategoryName = *catName
		}
		if catSlug != nil {
			p.CategorySlug = *catSlug
		}
		return &p, nil
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &p, nil
}
