// Package middleware provides HTTP middleware for the fiber app:
// token validation and role gating ahead of the handlers.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"walletcore/internal/config"
	"walletcore/internal/models"
	"walletcore/internal/services/authz"
)

// Auth validates the Bearer token and stores the claims and principal
// in the request context.
func Auth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.ParseWithClaims(tokenString, &models.UserClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return config.JWTSecret(), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}

		claims, ok := token.Claims.(*models.UserClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid claims"})
		}

		c.Locals("claims", claims)
		c.Locals("principal", authz.Principal{UserID: claims.UserID, Role: claims.Role})
		return c.Next()
	}
}

// Principal extracts the authenticated principal stored by Auth.
func Principal(c *fiber.Ctx) (authz.Principal, bool) {
	p, ok := c.Locals("principal").(authz.Principal)
	return p, ok
}

// RequireAdmin rejects requests whose principal is not administrador.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := Principal(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		if !p.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient permissions"})
		}
		return c.Next()
	}
}
