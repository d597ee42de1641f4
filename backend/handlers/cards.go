package handlers

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/cardforge-games/cardforge/backend/models"
	webservices "github.com/cardforge-games/cardforge/backend/services"
	"github.com/cardforge-games/cardforge/backend/utils"
)

// CardsList returns the card catalog, optionally fuzzy-filtered by name
func CardsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cards, err := webApp.CardMgmtService.SearchCards(c.Context(), c.Query("search"))
		if err != nil {
			slog.Error("Failed to list cards", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to list cards")
		}
		return utils.SendSuccess(c, cards, "Cards retrieved successfully")
	}
}

// CardsDetail returns a single card with its element
func CardsDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cardID, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid card ID", nil)
		}

		card, err := webApp.Repos.Card.GetByID(c.Context(), cardID)
		if errors.Is(err, sql.ErrNoRows) {
			return utils.SendNotFound(c, "Card not found")
		}
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load card")
		}

		return utils.SendSuccess(c, card, "Card retrieved successfully")
	}
}

// CardsCreate creates a card
func CardsCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.CardCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		if errs := utils.ValidateCardCreateRequest(&req); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		card, err := webApp.CardMgmtService.CreateCard(c.Context(), &req)
		if errors.Is(err, webservices.ErrElementNotFound) {
			return utils.SendBadRequest(c, "Unknown element", nil)
		}
		if err != nil {
			slog.Error("Failed to create card", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to create card")
		}

		return utils.SendCreated(c, card, "Card created")
	}
}

// CardsUpdate applies a partial card update
func CardsUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cardID, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid card ID", nil)
		}

		var req webmodels.CardUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		card, err := webApp.CardMgmtService.UpdateCard(c.Context(), cardID, &req)
		switch {
		case errors.Is(err, webservices.ErrCardNotFound):
			return utils.SendNotFound(c, "Card not found")
		case errors.Is(err, webservices.ErrElementNotFound):
			return utils.SendBadRequest(c, "Unknown element", nil)
		case err != nil:
			slog.Error("Failed to update card",
				slog.Int64("card_id", cardID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to update card")
		}

		return utils.SendSuccess(c, card, "Card updated")
	}
}

// CardsDelete deletes a card unless copies of it are still owned
func CardsDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cardID, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid card ID", nil)
		}

		report, err := webApp.CardMgmtService.DeleteCard(c.Context(), cardID)
		if errors.Is(err, webservices.ErrCardNotFound) {
			return utils.SendNotFound(c, "Card not found")
		}
		if err != nil {
			slog.Error("Failed to delete card",
				slog.Int64("card_id", cardID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to delete card")
		}

		if !report.Deleted {
			resp := webmodels.NewErrorResponse("CARD_IN_USE", report.BlockedBy, nil)
			resp.Data = report
			return utils.SendJSON(c, fiber.StatusConflict, resp)
		}

		return utils.SendSuccess(c, report, "Card deleted")
	}
}

// CardsUploadImage attaches uploaded art to a card
func CardsUploadImage(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cardID, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid card ID", nil)
		}

		file, err := c.FormFile("image")
		if err != nil {
			return utils.SendBadRequest(c, "Image file is required", nil)
		}

		if errs := utils.ValidateImageUpload(file); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		card, err := webApp.CardMgmtService.AttachImage(c.Context(), cardID, file)
		if errors.Is(err, webservices.ErrCardNotFound) {
			return utils.SendNotFound(c, "Card not found")
		}
		if err != nil {
			slog.Error("Failed to upload card image",
				slog.Int64("card_id", cardID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to upload image")
		}

		return utils.SendSuccess(c, card, "Image uploaded")
	}
}
