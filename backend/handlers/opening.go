package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/cardforge-games/cardforge/backend/utils"
	"github.com/cardforge-games/cardforge/cardforge/economy"
	"github.com/cardforge-games/cardforge/cardforge/gacha"
)

// OpenPack runs the pack-opening flow for the authenticated user and maps
// the orchestrator's error taxonomy onto HTTP statuses.
func OpenPack(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := utils.ExtractUserSession(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		packID, err := parseInt64(c.Params("packId"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid pack ID", nil)
		}

		result, err := webApp.Opener.OpenPack(c.Context(), session.UserID, packID)

		var insufficient *economy.InsufficientCreditsError
		switch {
		case err == nil:
			return utils.SendSuccess(c, result, "Pack opened")

		case errors.Is(err, gacha.ErrPackNotFound):
			return utils.SendNotFound(c, "Pack not found")

		case errors.Is(err, gacha.ErrEmptyPack):
			return utils.SendBadRequest(c, "Pack has no cards", nil)

		case errors.As(err, &insufficient):
			return utils.SendError(c, fiber.StatusBadRequest, "INSUFFICIENT_CREDITS",
				"Not enough credits to open this pack", map[string]string{
					"required": fmt.Sprintf("%d", insufficient.Required),
					"current":  fmt.Sprintf("%d", insufficient.Current),
				})

		default:
			// Nothing was committed; the client can safely retry.
			slog.Error("Pack opening failed",
				slog.Int64("user_id", session.UserID),
				slog.Int64("pack_id", packID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to open pack")
		}
	}
}
