package middleware

import (
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GatewayAuthMiddleware validates the service token from the Gateway. When
// ENGAGEMENT_SERVICE_TOKEN is unset the check is skipped, which keeps local
// runs and tests working without a gateway in front.
func GatewayAuthMiddleware() fiber.Handler {
	expectedToken := os.Getenv("ENGAGEMENT_SERVICE_TOKEN")
	if expectedToken == "" {
		log.Println("⚠️  ENGAGEMENT_SERVICE_TOKEN not set — gateway auth disabled")
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return func(c *fiber.Ctx) error {
		token := c.Get("X-Service-Token")
		if token == "" {
			// Fall back to Authorization: Bearer <token>
			authHeader := c.Get("Authorization")
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if token != expectedToken {
			log.Printf("❌ [GATEWAY_AUTH] Invalid or missing service token for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid gateway authentication token",
			})
		}
		return c.Next()
	}
}
