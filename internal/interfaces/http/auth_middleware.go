package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Faraz011/virasat2/internal/application/dto"
	"github.com/Faraz011/virasat2/pkg/jwt"
)

// Locals keys for the resolved session in Fiber.
const (
	LocalAccountID = "account_id"
	LocalIsAdmin   = "is_admin"
)

// SessionCookie is the cookie the storefront stores the session token in.
const SessionCookie = "session"

// AuthMiddleware validates the session token and puts the account id into
// c.Locals. The token comes from the Authorization Bearer header or, as
// the storefront's browser flow uses, the session cookie. Requests with
// no valid token get 401.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "you must be logged in"})
		}
		accountID, isAdmin, err := jwt.Parse(jwtSecret, token)
		if err != nil || accountID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired session"})
		}
		c.Locals(LocalAccountID, accountID)
		c.Locals(LocalIsAdmin, isAdmin)
		return c.Next()
	}
}

// OptionalAuth resolves the session when present and continues either way.
// A missing or invalid token is "no account", never an error — reads like
// GET /api/cart degrade to an empty view instead of failing.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token != "" {
			if accountID, isAdmin, err := jwt.Parse(jwtSecret, token); err == nil && accountID != "" {
				c.Locals(LocalAccountID, accountID)
				c.Locals(LocalIsAdmin, isAdmin)
			}
		}
		return c.Next()
	}
}

// RequireAdmin authorizes admin routes. Run after AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !GetIsAdmin(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "admin access required"})
		}
		return c.Next()
	}
}

// tokenFromRequest extracts the token from the Bearer header, falling
// back to the session cookie.
func tokenFromRequest(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return c.Cookies(SessionCookie)
}

// GetAccountID returns the account id from the context (after auth middleware).
func GetAccountID(c *fiber.Ctx) string {
	v := c.Locals(LocalAccountID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetIsAdmin returns the admin flag from the context (after auth middleware).
func GetIsAdmin(c *fiber.Ctx) bool {
	v := c.Locals(LocalIsAdmin)
	if v == nil {
		return false
	}
	b, _ := v.(bool)
	return b
}
