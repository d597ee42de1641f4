package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/cardforge-games/cardforge/backend/models"
	"github.com/cardforge-games/cardforge/backend/utils"
)

// CollectionList returns the authenticated user's owned cards, newest first
func CollectionList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := utils.ExtractUserSession(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		owned, err := webApp.Repos.OwnedCard.GetAllByUserID(c.Context(), session.UserID)
		if err != nil {
			slog.Error("Failed to load collection",
				slog.Int64("user_id", session.UserID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to load collection")
		}

		entries := make([]*webmodels.CollectionEntry, 0, len(owned))
		var totalCopies int64
		for _, oc := range owned {
			entries = append(entries, webmodels.NewCollectionEntry(oc))
			totalCopies += oc.Quantity
		}

		return utils.SendSuccess(c, fiber.Map{
			"cards":        entries,
			"unique_cards": len(entries),
			"total_copies": totalCopies,
		}, "Collection retrieved successfully")
	}
}
