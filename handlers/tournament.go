package handlers

import (
	"journal-engagement-system/middleware"
	"journal-engagement-system/models"
	"journal-engagement-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTournamentRoutes(app *fiber.App, tournaments *services.TournamentService) {
	// 🔓 Public listing of currently active tournaments
	app.Get("/tournaments/active", func(c *fiber.Ctx) error {
		active, err := tournaments.GetActiveTournaments()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"tournaments": active})
	})

	// 🔐 Authenticated routes
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/tournaments", func(c *fiber.Ctx) error {
		all, err := tournaments.GetAllTournaments()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"tournaments": all})
	})

	secured.Get("/tournaments/:id", func(c *fiber.Ctx) error {
		t, ok, err := tournaments.GetTournamentByID(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tournament not found"})
		}
		return c.JSON(t)
	})

	secured.Post("/tournaments", func(c *fiber.Ctx) error {
		var body struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Type        string `json:"type"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tournament payload"})
		}
		if body.Name == "" || body.Type == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and type are required"})
		}

		t, err := tournaments.CreateTournament(body.Name, body.Description, body.Type)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(t)
	})

	secured.Post("/tournaments/:id/join", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		joined, err := tournaments.JoinTournament(c.Params("id"), userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"joined": joined})
	})

	secured.Put("/tournaments/:id/leaderboard", func(c *fiber.Ctx) error {
		var body struct {
			Entries []models.LeaderboardEntry `json:"entries"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid leaderboard payload"})
		}

		updated, err := tournaments.UpdateLeaderboard(c.Params("id"), body.Entries)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if !updated {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tournament not found"})
		}

		t, _, err := tournaments.GetTournamentByID(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"leaderboard": t.Leaderboard})
	})
}
