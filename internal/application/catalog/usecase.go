package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"

	"github.com/Faraz011/virasat2/internal/application/dto"
	"github.com/Faraz011/virasat2/internal/domain"
	"github.com/Faraz011/virasat2/internal/domain/entity"
	"github.com/Faraz011/virasat2/internal/domain/repository"
)

const (
	defaultListLimit   = 8
	defaultSearchLimit = 20
	categoriesCacheKey = "__categories"
)

// UseCase catalog reads plus admin product CRUD. Listing and by-slug reads
// go through an expirable LRU so the hot storefront pages do not hit the
// DB on every render. The cache holds display data only: stock decisions
// are made by the cart ledger on the row it locks, never from here.
type UseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository

	products   *expirable.LRU[string, *dto.ProductResponse]
	categories *expirable.LRU[string, []dto.CategoryResponse]
}

// NewUseCase builds the catalog use case. size/ttl configure the read cache.
func NewUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, size int, ttl time.Duration) *UseCase {
	if size <= 0 {
		size = 512
	}
	return &UseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		products:     expirable.NewLRU[string, *dto.ProductResponse](size, nil, ttl),
		categories:   expirable.NewLRU[string, []dto.CategoryResponse](1, nil, ttl),
	}
}

// Categories lists all categories, name-ordered (cached).
func (uc *UseCase) Categories() ([]dto.CategoryResponse, error) {
	if cached, ok := uc.categories.Get(categoriesCacheKey); ok {
		return cached, nil
	}
	list, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{
			ID:          c.ID,
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
			Region:      c.Region,
			ImageURL:    c.ImageURL,
		})
	}
	uc.categories.Add(categoriesCacheKey, out)
	return out, nil
}

// Featured lists featured products, newest first.
func (uc *UseCase) Featured(limit int) (*dto.ProductListResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	list, err := uc.productRepo.ListFeatured(limit)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, 0), nil
}

// NewArrivals lists products flagged as new, newest first.
func (uc *UseCase) NewArrivals(limit int) (*dto.ProductListResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	list, err := uc.productRepo.ListNew(limit)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, 0), nil
}

// OnSale lists products flagged as on sale, newest first.
func (uc *UseCase) OnSale(limit int) (*dto.ProductListResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	list, err := uc.productRepo.ListSale(limit)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, 0), nil
}

// ByCategory lists a category's products with pagination.
func (uc *UseCase) ByCategory(slug string, limit, offset int) (*dto.ProductListResponse, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.productRepo.ListByCategorySlug(slug, limit, offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, offset), nil
}

// BySlug returns one product for its detail page (cached), or nil if absent.
func (uc *UseCase) BySlug(slug string) (*dto.ProductResponse, error) {
	if cached, ok := uc.products.Get(slug); ok {
		return cached, nil
	}
	product, err := uc.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	out := toProductResponse(product)
	uc.products.Add(slug, out)
	return out, nil
}

// Images lists a product's gallery, primary image first.
func (uc *UseCase) Images(slug string) ([]dto.ProductImageResponse, error) {
	product, err := uc.BySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	images, err := uc.productRepo.ListImages(product.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, dto.ProductImageResponse{
			ID:           img.ID,
			URL:          img.URL,
			IsPrimary:    img.IsPrimary,
			DisplayOrder: img.DisplayOrder,
		})
	}
	return out, nil
}

// Search runs a case-insensitive substring match across name, description,
// material, weave type, color and category name. No tokenization, no
// ranking; results come back newest first.
func (uc *UseCase) Search(query string, limit int) (*dto.ProductListResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &dto.ProductListResponse{Items: []dto.ProductResponse{}, Page: dto.PageResponse{Limit: limit}}, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	list, err := uc.productRepo.Search(query, limit)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, 0), nil
}

// Create creates a product (admin). Duplicate slug or SKU surfaces as ErrDuplicate.
func (uc *UseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Slug == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		CategoryID:    in.CategoryID,
		SKU:           in.SKU,
		Slug:          in.Slug,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		StockQuantity: in.StockQuantity,
		ImageURL:      in.ImageURL,
		Material:      in.Material,
		WeaveType:     in.WeaveType,
		Color:         in.Color,
		IsFeatured:    in.IsFeatured,
		IsNew:         in.IsNew,
		IsSale:        in.IsSale,
		Rating:        decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	uc.invalidate(product.Slug)
	return toProductResponse(product), nil
}

// Update updates a product (admin); nil input fields are untouched.
// Returns (nil, nil) when the product does not exist.
func (uc *UseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.OriginalPrice != nil {
		product.OriginalPrice = in.OriginalPrice
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.StockQuantity = *in.StockQuantity
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.Material != nil {
		product.Material = *in.Material
	}
	if in.WeaveType != nil {
		product.WeaveType = *in.WeaveType
	}
	if in.Color != nil {
		product.Color = *in.Color
	}
	if in.IsFeatured != nil {
		product.IsFeatured = *in.IsFeatured
	}
	if in.IsNew != nil {
		product.IsNew = *in.IsNew
	}
	if in.IsSale != nil {
		product.IsSale = *in.IsSale
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	uc.invalidate(product.Slug)
	return toProductResponse(product), nil
}

// invalidate drops cached entries touched by an admin write.
func (uc *UseCase) invalidate(slug string) {
	uc.products.Remove(slug)
	uc.categories.Remove(categoriesCacheKey)
}

func toListResponse(list []*entity.Product, limit, offset int) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		CategoryID:    p.CategoryID,
		SKU:           p.SKU,
		Slug:          p.Slug,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
		Material:      p.Material,
		WeaveType:     p.WeaveType,
		Color:         p.Color,
		IsFeatured:    p.IsFeatured,
		IsNew:         p.IsNew,
		IsSale:        p.IsSale,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		CategoryName:  p.CategoryName,
		CategorySlug:  p.CategorySlug,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
