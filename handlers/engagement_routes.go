// handlers/engagement_routes.go
package handlers

import (
	"journal-engagement-system/middleware"
	"journal-engagement-system/models"
	"journal-engagement-system/services"
	"journal-engagement-system/workers"

	"github.com/gofiber/fiber/v2"
)

// SetupEngagementRoutes wires the progress, achievement, streak, challenge
// and analytics surfaces. Derived events go back in the response AND to the
// notify worker; persistence already happened inside the services.
func SetupEngagementRoutes(
	app *fiber.App,
	progression *services.ProgressionService,
	achievements *services.AchievementService,
	streaks *services.StreakService,
	challenges *services.ChallengeService,
	analytics *services.AnalyticsService,
	behavior *services.BehaviorService,
	notifier *workers.NotifyWorker,
) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	// --- Progress ledger ---

	secured.Post("/user/activity", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var delta services.ActivityDelta
		if err := c.BodyParser(&delta); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid activity payload"})
		}

		prog, events, err := progression.RecordActivity(userID, delta)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		// Activity may have crossed achievement thresholds too
		unlocked, unlockEvents, err := achievements.Evaluate(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		events = append(events, unlockEvents...)
		notifier.Publish(events...)

		return c.JSON(fiber.Map{
			"progress":         prog,
			"new_achievements": unlocked,
			"events":           events,
		})
	})

	secured.Get("/user/progress", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		prog, err := progression.Progress(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		stats, err := progression.Stats(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"progress": prog, "stats": stats})
	})

	// --- Achievements ---

	secured.Get("/user/achievements", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		all, err := achievements.All(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"achievements": all})
	})

	secured.Post("/user/achievements/evaluate", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		unlocked, events, err := achievements.Evaluate(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		notifier.Publish(events...)
		return c.JSON(fiber.Map{"new_achievements": unlocked, "events": events})
	})

	// --- Streaks ---

	secured.Post("/user/checkins", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		checkIn, err := streaks.CheckIn(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(checkIn)
	})

	secured.Post("/user/checkins/:id/complete", func(c *fiber.Ctx) error {
		var body struct {
			JournalWritten bool   `json:"journal_written"`
			Reflection     string `json:"reflection"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid check-in payload"})
		}

		result, err := streaks.CompleteCheckIn(c.Params("id"), body.JournalWritten, body.Reflection)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if !result.Found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "check-in not found"})
		}
		notifier.Publish(result.Events...)
		return c.JSON(result)
	})

	secured.Get("/user/streak", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		streak, err := streaks.CurrentStreak(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		milestones, err := streaks.AchievedMilestones(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"current_streak": streak, "milestones": milestones})
	})

	// --- Daily challenges ---

	secured.Get("/user/challenges", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		list, err := challenges.GetDailyChallenges(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		stats, err := challenges.CompletionStats(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"challenges": list, "stats": stats})
	})

	secured.Post("/user/challenges/:id/complete", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		result, events, err := challenges.CompleteChallenge(userID, c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		notifier.Publish(events...)
		return c.JSON(result)
	})

	// --- Analytics ---

	secured.Post("/analytics/mood-trend", func(c *fiber.Ctx) error {
		var body struct {
			Samples []models.MoodSample `json:"samples"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid mood payload"})
		}
		return c.JSON(analytics.AnalyzeMoodTrend(body.Samples))
	})

	secured.Post("/analytics/mode-recommendation", func(c *fiber.Ctx) error {
		var body struct {
			CurrentMode string                `json:"current_mode"`
			Entries     []models.JournalEntry `json:"entries"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid entries payload"})
		}

		analysis := behavior.AnalyzeBehavior(body.Entries)
		rec := behavior.ShouldRecommendModeChange(body.CurrentMode, analysis)
		return c.JSON(fiber.Map{
			"behavior":       analysis,
			"recommendation": rec, // null when confidence is low or mode already matches
		})
	})
}
