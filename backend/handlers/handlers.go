package handlers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cardforge-games/cardforge/backend/config"
	webmodels "github.com/cardforge-games/cardforge/backend/models"
	webservices "github.com/cardforge-games/cardforge/backend/services"
	"github.com/cardforge-games/cardforge/backend/utils"
	"github.com/cardforge-games/cardforge/cardforge/database"
	"github.com/cardforge-games/cardforge/cardforge/economy"
	"github.com/cardforge-games/cardforge/cardforge/gacha"
)

// WebApp represents the web application with all dependencies
type WebApp struct {
	Config          *config.WebAppConfig
	DB              *database.DB
	Repos           *webmodels.Repositories
	SpacesService   *webservices.SpacesService
	CardMgmtService *webservices.CardManagementService
	AuthService     *webservices.AuthService
	SessionService  *webservices.SessionService
	Ledger          *economy.CreditLedger
	Inventory       *economy.Inventory
	Opener          *gacha.Opener
	Version         string
	Commit          string
}

// GetSession gets the current user session
func (w *WebApp) GetSession(c *fiber.Ctx) (*webmodels.UserSession, error) {
	return w.SessionService.GetSession(c)
}

// parseInt64 is a utility function to parse int64 from string
func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// getDashboardStats retrieves admin dashboard statistics
func getDashboardStats(ctx context.Context, webApp *WebApp) (*webmodels.DashboardStats, error) {
	totalCards, err := webApp.Repos.Card.GetCardCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get card count: %w", err)
	}

	packs, err := webApp.Repos.Pack.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get packs: %w", err)
	}

	elements, err := webApp.Repos.Element.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get elements: %w", err)
	}

	return &webmodels.DashboardStats{
		TotalCards:    totalCards,
		TotalPacks:    len(packs),
		TotalElements: len(elements),
	}, nil
}

// HealthCheck reports service and database health
func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := webmodels.NewHealthCheck(webApp.Version)

		ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
		defer cancel()

		if err := webApp.DB.Ping(ctx); err != nil {
			health.AddComponent("database", "unhealthy", err.Error(), nil)
		} else {
			health.AddComponent("database", "healthy", "", nil)
		}

		status := fiber.StatusOK
		if health.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(health)
	}
}

// DashboardStatsAPI returns admin dashboard statistics
func DashboardStatsAPI(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := getDashboardStats(c.Context(), webApp)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load dashboard stats")
		}
		return utils.SendSuccess(c, stats, "Dashboard stats retrieved successfully")
	}
}
