package middleware

import (
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// UserContextMiddleware resolves the acting user. The Gateway forwards
// identity in X-User-ID / X-User-Tier headers; direct callers may instead
// present a Bearer JWT with user_id and tier claims.
func UserContextMiddleware() fiber.Handler {
	secret := os.Getenv("JWT_SECRET")

	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		tier := c.Get("X-User-Tier")

		if userID == "" && secret != "" {
			if token := bearerToken(c); token != "" {
				claims, err := parseClaims(token, secret)
				if err != nil {
					log.Printf("❌ [USER_CTX] Invalid bearer token for %s: %v", c.Path(), err)
					return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
						"error": "invalid authentication token",
					})
				}
				userID, _ = claims["user_id"].(string)
				tier, _ = claims["tier"].(string)
			}
		}

		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing user identity — request must carry X-User-ID or a bearer token",
			})
		}
		if tier == "" {
			tier = "free"
		}

		c.Locals("user_id", userID)
		c.Locals("user_tier", tier)
		return c.Next()
	}
}

// RequireTier guards a route group behind a user tier (e.g. "admin").
// Must run after UserContextMiddleware.
func RequireTier(tier string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current, _ := c.Locals("user_tier").(string)
		if current != tier {
			log.Printf("🚫 [USER_CTX] tier %q required for %s, got %q", tier, c.Path(), current)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "insufficient permissions",
			})
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return ""
	}
	return token
}

func parseClaims(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
