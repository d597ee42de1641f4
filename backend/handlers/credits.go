package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/cardforge-games/cardforge/backend/models"
	"github.com/cardforge-games/cardforge/backend/utils"
	"github.com/cardforge-games/cardforge/cardforge/economy"
)

// maxCreditPurchase caps one top-up; the original store UI sold bundles up
// to this size.
const maxCreditPurchase = 10000

// CreditsBalance returns the authenticated user's balance
func CreditsBalance(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := utils.ExtractUserSession(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		balance, err := webApp.Ledger.Balance(c.Context(), session.UserID)
		if errors.Is(err, economy.ErrUserNotFound) {
			return utils.SendNotFound(c, "Account no longer exists")
		}
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load balance")
		}

		return utils.SendSuccess(c, fiber.Map{"credits": balance}, "")
	}
}

// CreditsPurchase adds credits to the authenticated user's balance
func CreditsPurchase(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := utils.ExtractUserSession(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		var req webmodels.CreditPurchaseRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if req.Amount <= 0 || req.Amount > maxCreditPurchase {
			return utils.SendBadRequest(c, "Amount must be between 1 and 10000", nil)
		}

		total, err := webApp.Ledger.Credit(c.Context(), session.UserID, req.Amount)
		if errors.Is(err, economy.ErrUserNotFound) {
			return utils.SendNotFound(c, "Account no longer exists")
		}
		if err != nil {
			slog.Error("Credit purchase failed",
				slog.Int64("user_id", session.UserID),
				slog.Int64("amount", req.Amount),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to add credits")
		}

		slog.Info("Credits purchased",
			slog.Int64("user_id", session.UserID),
			slog.Int64("amount", req.Amount),
			slog.Int64("total", total))

		return utils.SendSuccess(c, fiber.Map{"credits": total}, "Credits added")
	}
}
