package repository

import "github.com/Faraz011/virasat2/internal/domain/entity"

// ProductRepository defines the persistence port for the Catalog (DIP).
// Read queries join the category for display; GetForUpdate locks the
// product row so a caller inside a transaction can check stock and write
// without a concurrent mutation interleaving.
type ProductRepository interface {
	Create(product *entity.Product) error
	Update(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySlug(slug string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	ListFeatured(limit int) ([]*entity.Product, error)
	ListNew(limit int) ([]*entity.Product, error)
	ListSale(limit int) ([]*entity.Product, error)
	ListByCategorySlug(slug string, limit, offset int) ([]*entity.Product, error)
	Search(query string, limit int) ([]*entity.Product, error)
	ListImages(productID string) ([]*entity.ProductImage, error)
}
