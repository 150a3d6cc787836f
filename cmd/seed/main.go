// seed applies migrations/schema.sql and loads a small sample saree
// catalog so the storefront has something to render locally.
//
// Usage: go run ./cmd/seed [path/to/schema.sql]
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Faraz011/virasat2/internal/domain/entity"
	"github.com/Faraz011/virasat2/internal/infrastructure/postgres"
	"github.com/Faraz011/virasat2/pkg/config"
	"github.com/Faraz011/virasat2/pkg/logger"
)

func main() {
	schemaPath := "migrations/schema.sql"
	if len(os.Args) > 1 {
		schemaPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load configuration:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", schemaPath).Msg("read schema")
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		log.Fatal().Err(err).Msg("apply schema")
	}
	log.Info().Str("path", schemaPath).Msg("schema applied")

	categoryRepo := postgres.NewCategoryRepository(pool)
	existing, err := categoryRepo.List()
	if err != nil {
		log.Fatal().Err(err).Msg("check categories")
	}
	if len(existing) > 0 {
		log.Info().Int("categories", len(existing)).Msg("catalog already seeded, nothing to do")
		return
	}

	categories := []entity.Category{
		{ID: uuid.New().String(), Name: "Banarasi", Slug: "banarasi", Region: "Varanasi", Description: "Gold and silver brocade silk sarees"},
		{ID: uuid.New().String(), Name: "Kanjivaram", Slug: "kanjivaram", Region: "Kanchipuram", Description: "Heavy mulberry silk with temple borders"},
		{ID: uuid.New().String(), Name: "Chanderi", Slug: "chanderi", Region: "Madhya Pradesh", Description: "Sheer silk-cotton weaves"},
	}
	for _, c := range categories {
		_, err := pool.Exec(ctx,
			`INSERT INTO categories (id, name, slug, description, region, image_url) VALUES ($1, $2, $3, $4, $5, $6)`,
			c.ID, c.Name, c.Slug, c.Description, c.Region, c.ImageURL,
		)
		if err != nil {
			log.Fatal().Err(err).Str("category", c.Slug).Msg("insert category")
		}
	}

	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	products := []struct {
		cat   int
		sku   string
		slug  string
		name  string
		price decimal.Decimal
		stock int
		flags [3]bool // featured, new, sale
	}{
		{0, "BAN-001", "banarasi-red-zari", "Red Zari Banarasi Silk", price("12499.00"), 5, [3]bool{true, true, false}},
		{0, "BAN-002", "banarasi-royal-blue", "Royal Blue Banarasi", price("9999.00"), 8, [3]bool{true, false, false}},
		{1, "KAN-001", "kanjivaram-emerald", "Emerald Kanjivaram", price("18750.00"), 3, [3]bool{true, false, true}},
		{1, "KAN-002", "kanjivaram-temple-gold", "Temple Gold Kanjivaram", price("22000.00"), 2, [3]bool{false, true, false}},
		{2, "CHA-001", "chanderi-pastel-rose", "Pastel Rose Chanderi", price("4250.00"), 15, [3]bool{false, true, true}},
	}
	productRepo := postgres.NewProductRepository(pool)
	now := time.Now()
	for _, p := range products {
		err := productRepo.Create(&entity.Product{
			ID:            uuid.New().String(),
			CategoryID:    categories[p.cat].ID,
			SKU:           p.sku,
			Slug:          p.slug,
			Name:          p.name,
			Price:         p.price,
			StockQuantity: p.stock,
			Material:      "Silk",
			IsFeatured:    p.flags[0],
			IsNew:         p.flags[1],
			IsSale:        p.flags[2],
			Rating:        decimal.Zero,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			log.Fatal().Err(err).Str("sku", p.sku).Msg("insert product")
		}
	}

	log.Info().Int("categories", len(categories)).Int("products", len(products)).Msg("sample catalog seeded")
}
