package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cardforge-games/cardforge/backend/config"
	"github.com/cardforge-games/cardforge/backend/handlers"
	"github.com/cardforge-games/cardforge/backend/middleware"
	webmodels "github.com/cardforge-games/cardforge/backend/models"
	webservices "github.com/cardforge-games/cardforge/backend/services"
	"github.com/cardforge-games/cardforge/cardforge"
	"github.com/cardforge-games/cardforge/cardforge/database"
	"github.com/cardforge-games/cardforge/cardforge/database/repositories"
	"github.com/cardforge-games/cardforge/cardforge/economy"
	"github.com/cardforge-games/cardforge/cardforge/gacha"
	"github.com/cardforge-games/cardforge/cardforge/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	customHandler := logger.NewHandler("CardForge")
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting CardForge API",
		slog.String("version", version),
		slog.String("commit", commit))

	cfg, err := cardforge.LoadConfig(configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	webCfg := config.NewWebAppConfig(cfg, os.Getenv("CARDFORGE_ENV") != "production")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slog.Info("Connecting to database...")
	db, err := database.New(ctx, database.DBConfig{
		Host:         cfg.DB.Host,
		Port:         cfg.DB.Port,
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Database:     cfg.DB.Database,
		PoolSize:     cfg.DB.PoolSize,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxLifetime:  cfg.DB.MaxLifetime,
	})
	if err != nil {
		slog.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("Database connected successfully")

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize schema", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := db.Seed(ctx, cfg.Game.StarterCredits); err != nil {
		slog.Error("Failed to seed database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	packRepo := repositories.NewPackRepository(db.BunDB())
	repos := webmodels.NewRepositories(
		repositories.NewUserRepository(db.BunDB()),
		repositories.NewCardRepository(db.BunDB(), packRepo),
		repositories.NewElementRepository(db.BunDB()),
		packRepo,
		repositories.NewOwnedCardRepository(db.BunDB()),
	)

	spacesService := webservices.NewSpacesService(
		cfg.Spaces.Key,
		cfg.Spaces.Secret,
		cfg.Spaces.Region,
		cfg.Spaces.Bucket,
		cfg.Spaces.CardRoot,
	)

	txManager := economy.NewTxManager(db.BunDB())
	ledger := economy.NewCreditLedger(db.BunDB())
	inventory := economy.NewInventory(db.BunDB())
	opener := gacha.NewOpener(repos.Pack, ledger, inventory, txManager, cfg.Game.CardsPerPack, nil)

	cardMgmtService := webservices.NewCardManagementService(repos, spacesService)
	authService := webservices.NewAuthService(repos.User, cfg.Game.StarterCredits)
	sessionService := webservices.NewSessionService(webCfg)

	app := fiber.New(fiber.Config{
		AppName:      "CardForge API",
		ServerHeader: "CardForge",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Web.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With,X-CSRF-Token,Cookie",
		AllowCredentials: true,
	}))
	app.Use(middleware.LoggingMiddleware())
	app.Use(middleware.EnsureCSRFCookie(webCfg.SecureCookies()))

	webApp := &handlers.WebApp{
		Config:          webCfg,
		DB:              db,
		Repos:           repos,
		SpacesService:   spacesService,
		CardMgmtService: cardMgmtService,
		AuthService:     authService,
		SessionService:  sessionService,
		Ledger:          ledger,
		Inventory:       inventory,
		Opener:          opener,
		Version:         version,
		Commit:          commit,
	}

	setupRoutes(app, webApp)

	slog.Info("Starting server", slog.String("address", cfg.Web.Addr))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Web.Addr); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-c
	slog.Info("Shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}

	db.Close()

	slog.Info("Server shutdown complete")
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App, webApp *handlers.WebApp) {
	app.Get("/health", handlers.HealthCheck(webApp))

	api := app.Group("/api")
	api.Get("/csrf-token", handlers.CSRFToken(webApp))

	// Authentication
	auth := api.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimit(), middleware.CSRFProtect(), handlers.Register(webApp))
	auth.Post("/login", middleware.AuthRateLimit(), middleware.CSRFProtect(), handlers.Login(webApp))
	auth.Post("/logout", handlers.Logout(webApp))
	auth.Get("/me", middleware.AuthRequired(webApp.SessionService), handlers.Me(webApp))

	authed := api.Group("", middleware.AuthRequired(webApp.SessionService))
	admin := authed.Group("", middleware.AdminRequired(), middleware.CSRFProtect())

	// Elements
	authed.Get("/elements", handlers.ElementsList(webApp))
	admin.Post("/elements", middleware.AuditLogMiddleware("element_create"), handlers.ElementsCreate(webApp))

	// Cards
	authed.Get("/cards", handlers.CardsList(webApp))
	authed.Get("/cards/:id", handlers.CardsDetail(webApp))
	admin.Post("/cards", middleware.AuditLogMiddleware("card_create"), handlers.CardsCreate(webApp))
	admin.Put("/cards/:id", middleware.AuditLogMiddleware("card_update"), handlers.CardsUpdate(webApp))
	admin.Delete("/cards/:id", middleware.AuditLogMiddleware("card_delete"), handlers.CardsDelete(webApp))
	admin.Post("/cards/:id/image", middleware.AuditLogMiddleware("card_image_upload"), handlers.CardsUploadImage(webApp))

	// Packs and drop tables
	authed.Get("/packs", handlers.PacksList(webApp))
	authed.Get("/packs/:id", handlers.PacksDetail(webApp))
	admin.Post("/packs", middleware.AuditLogMiddleware("pack_create"), handlers.PacksCreate(webApp))
	admin.Put("/packs/:id", middleware.AuditLogMiddleware("pack_update"), handlers.PacksUpdate(webApp))
	admin.Delete("/packs/:id", middleware.AuditLogMiddleware("pack_delete"), handlers.PacksDelete(webApp))

	authed.Get("/packs/:packId/cards", handlers.PackCardsList(webApp))
	admin.Post("/packs/:packId/cards", middleware.AuditLogMiddleware("pack_card_add"), handlers.PackCardsAdd(webApp))
	admin.Put("/packs/:packId/cards/:cardId", middleware.AuditLogMiddleware("pack_card_update"), handlers.PackCardsUpdate(webApp))
	admin.Delete("/packs/:packId/cards/:cardId", middleware.AuditLogMiddleware("pack_card_remove"), handlers.PackCardsRemove(webApp))

	// Opening, credits, collection
	authed.Post("/packs/:packId/open", middleware.CSRFProtect(), middleware.OpenRateLimit(), handlers.OpenPack(webApp))
	authed.Get("/credits", handlers.CreditsBalance(webApp))
	authed.Post("/credits/purchase", middleware.CSRFProtect(), handlers.CreditsPurchase(webApp))
	authed.Get("/collection", handlers.CollectionList(webApp))

	// Admin dashboard
	admin.Get("/admin/stats", handlers.DashboardStatsAPI(webApp))

	app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error": fiber.Map{
				"code":    fiber.StatusNotFound,
				"message": "The requested endpoint does not exist",
			},
		})
	})
}
