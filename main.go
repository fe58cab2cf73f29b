package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"journal-engagement-system/handlers"
	"journal-engagement-system/middleware"
	"journal-engagement-system/services"
	"journal-engagement-system/store"
	"journal-engagement-system/utils"
	"journal-engagement-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		AppName: "journal-engagement-system",
	})

	// 🔐 GLOBAL: only Gateway requests allowed (skipped when no token is configured)
	app.Use(middleware.GatewayAuthMiddleware())

	app.Use(cors.New(cors.Config{
		AllowOrigins: utils.GetEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID, X-User-ID, X-User-Tier, X-Service-Token",
	}))

	// The rule engine only talks to the store interfaces; Postgres backs them
	// when DATABASE_URL is set, process-local maps otherwise.
	var st *store.Store
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatal("failed to connect to database:", err)
		}
		if err := store.Migrate(db); err != nil {
			log.Fatal("failed to migrate database:", err)
		}
		st = store.NewGorm(db)
		log.Println("✅ Store backed by Postgres")
	} else {
		st = store.NewMemory()
		log.Println("⚠️  DATABASE_URL not set — using in-memory store (state is lost on restart)")
	}

	progressionService := services.NewProgressionService(st)
	achievementService := services.NewAchievementService(st)
	streakService := services.NewStreakService(st, progressionService)
	challengeService := services.NewChallengeService(st, progressionService)
	tournamentService := services.NewTournamentService(st)
	analyticsService := services.NewAnalyticsService()
	behaviorService := services.NewBehaviorService()
	referralService := services.NewReferralService(st, progressionService)
	toggleService := services.NewFeatureToggleService(st)

	if err := toggleService.EnsureDefaults(); err != nil {
		log.Fatal("failed to seed feature toggles:", err)
	}
	if err := tournamentService.InitializeDefaultTournaments(); err != nil {
		log.Fatal("failed to seed default tournaments:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifyWorker := workers.NewNotifyWorker(os.Getenv("NOTIFY_WEBHOOK_URL"))
	go notifyWorker.Run(ctx)

	tournamentService.StartStatusSweep()

	handlers.SetupEngagementRoutes(app, progressionService, achievementService, streakService, challengeService, analyticsService, behaviorService, notifyWorker)
	handlers.SetupTournamentRoutes(app, tournamentService)
	handlers.SetupAdminRoutes(app, toggleService, referralService, notifyWorker)

	addr := ":" + utils.GetEnv("PORT", "5300")
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Engagement engine running on http://localhost%s", addr)
	log.Println("✅ Tournament status sweep running (every 1m)")
	log.Println("✅ Notify worker running")

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
