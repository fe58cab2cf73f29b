// handlers/admin_routes.go
package handlers

import (
	"journal-engagement-system/middleware"
	"journal-engagement-system/services"
	"journal-engagement-system/workers"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes wires feature toggles and the referral ledger.
func SetupAdminRoutes(
	app *fiber.App,
	toggles *services.FeatureToggleService,
	referrals *services.ReferralService,
	notifier *workers.NotifyWorker,
) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	// --- Referrals ---

	secured.Post("/user/referrals/code", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		code, err := referrals.GenerateCode(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"referral_code": code})
	})

	secured.Get("/user/referrals", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		list, err := referrals.UserReferrals(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		stats, err := referrals.Stats(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"referrals": list, "stats": stats})
	})

	secured.Post("/referrals", func(c *fiber.Ctx) error {
		var body struct {
			ReferrerID     string `json:"referrer_id"`
			ReferredUserID string `json:"referred_user_id"`
			ReferralCode   string `json:"referral_code"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid referral payload"})
		}

		// The code resolves the referrer when the caller only has the code
		if body.ReferrerID == "" && body.ReferralCode != "" {
			owner, ok, err := referrals.ResolveCode(body.ReferralCode)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
			}
			if !ok {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown referral code"})
			}
			body.ReferrerID = owner
		}
		if body.ReferrerID == "" || body.ReferredUserID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "referrer and referred user are required"})
		}

		ref, err := referrals.CreateReferral(body.ReferrerID, body.ReferredUserID, body.ReferralCode)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(ref)
	})

	secured.Post("/referrals/:id/complete", func(c *fiber.Ctx) error {
		ref, events, ok, err := referrals.CompleteReferral(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "referral not found"})
		}
		notifier.Publish(events...)
		return c.JSON(ref)
	})

	// --- Feature toggles ---

	secured.Get("/features/:name/enabled", func(c *fiber.Ctx) error {
		tier := c.Locals("user_tier").(string)

		enabled, err := toggles.IsFeatureEnabled(c.Params("name"), tier)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"enabled": enabled})
	})

	// 🔒 Admin-only routes
	admin := secured.Group("/admin", middleware.RequireTier("admin"))

	admin.Get("/features", func(c *fiber.Ctx) error {
		all, err := toggles.All()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"features": all})
	})

	admin.Put("/features/:name", func(c *fiber.Ctx) error {
		var body struct {
			Enabled           bool   `json:"enabled"`
			UserSegment       string `json:"user_segment"`
			RolloutPercentage int    `json:"rollout_percentage"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid toggle payload"})
		}
		if body.UserSegment == "" {
			body.UserSegment = "all"
		}

		toggle, ok, err := toggles.ToggleFeature(c.Params("name"), body.Enabled, body.UserSegment, body.RolloutPercentage)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown feature"})
		}
		return c.JSON(toggle)
	})
}
