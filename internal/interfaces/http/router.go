package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Faraz011/virasat2/internal/application/auth"
	"github.com/Faraz011/virasat2/internal/application/cart"
	"github.com/Faraz011/virasat2/internal/application/catalog"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	CatalogUC    *catalog.UseCase
	CartUC       *cart.UseCase
	JWTSecret    string
	CookieTTL    time.Duration
	SecureCookie bool
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieTTL, deps.SecureCookie)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Catalog (public reads, admin writes)
	productHandler := NewProductHandler(deps.CatalogUC)
	api.Get("/categories", productHandler.Categories)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:slug", productHandler.GetBySlug)
	products.Get("/:slug/images", productHandler.Images)
	products.Post("/", AuthMiddleware(deps.JWTSecret), RequireAdmin(), productHandler.Create)
	products.Put("/:id", AuthMiddleware(deps.JWTSecret), RequireAdmin(), productHandler.Update)

	// Cart: GET tolerates a missing session (empty view); mutations require one.
	cartHandler := NewCartHandler(deps.CartUC)
	cartGroup := api.Group("/cart")
	cartGroup.Get("/", OptionalAuth(deps.JWTSecret), cartHandler.Get)
	cartGroup.Post("/items", AuthMiddleware(deps.JWTSecret), cartHandler.AddItem)
	cartGroup.Patch("/items/:id", AuthMiddleware(deps.JWTSecret), cartHandler.UpdateItem)
	cartGroup.Delete("/items/:id", AuthMiddleware(deps.JWTSecret), cartHandler.RemoveItem)
	cartGroup.Delete("/", AuthMiddleware(deps.JWTSecret), cartHandler.Clear)
}
