package handlers

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/cardforge-games/cardforge/backend/models"
	"github.com/cardforge-games/cardforge/backend/utils"
	dbmodels "github.com/cardforge-games/cardforge/cardforge/database/models"
	"github.com/cardforge-games/cardforge/cardforge/database/repositories"
)

// PacksList returns all packs annotated with their drop-table sizes
func PacksList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		packs, err := webApp.Repos.Pack.GetAll(c.Context())
		if err != nil {
			slog.Error("Failed to list packs", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to list packs")
		}

		summaries := make([]*webmodels.PackSummary, 0, len(packs))
		for _, pack := range packs {
			count, err := webApp.Repos.Pack.GetCardCount(c.Context(), pack.ID)
			if err != nil {
				return utils.SendInternalServerError(c, "Failed to count pack cards")
			}
			summaries = append(summaries, &webmodels.PackSummary{Pack: pack, CardCount: count})
		}

		return utils.SendSuccess(c, summaries, "Packs retrieved successfully")
	}
}

// PacksDetail returns a pack with its full drop table
func PacksDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		packID, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid pack ID", nil)
		}

		pack, err := webApp.Repos.Pack.GetByID(c.Context(), packID)
		if errors.Is(err, sql.ErrNoRows) {
			return utils.SendNotFound(c, "Pack not found")
		}
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load pack")
		}

		combos, err := webApp.Repos.Pack.GetCombinations(c.Context(), packID)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load pack cards")
		}

		return utils.SendSuccess(c, &webmodels.PackDetail{Pack: pack, Combinations: combos}, "Pack retrieved successfully")
	}
}

// PacksCreate creates a pack
func PacksCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.PackCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		if errs := utils.ValidatePackCreateRequest(&req); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		pack := &dbmodels.Pack{Name: req.Name, Cost: req.Cost}
		if err := webApp.Repos.Pack.Create(c.Context(), pack); err != nil {
			slog.Error("Failed to create pack",
				slog.String("name", req.Name),
				slog.String("error", err.Error()))
			return utils.SendConflict(c, "Pack already exists", nil)
		}

		return utils.SendCreated(c, pack, "Pack created")
	}
}

// PacksUpdate applies a partial pack update
func PacksUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		packID, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid pack ID", nil)
		}

		var req webmodels.PackUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		pack, err := webApp.Repos.Pack.GetByID(c.Context(), packID)
		if errors.Is(err, sql.ErrNoRows) {
			return utils.SendNotFound(c, "Pack not found")
		}
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load pack")
		}

		if req.Name != nil {
			pack.Name = *req.Name
		}
		if req.Cost != nil {
			if *req.Cost < 0 {
				return utils.SendBadRequest(c, "Cost must not be negative", nil)
			}
			pack.Cost = *req.Cost
		}

		if err := webApp.Repos.Pack.Update(c.Context(), pack); err != nil {
			slog.Error("Failed to update pack",
				slog.Int64("pack_id", packID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to update pack")
		}

		return utils.SendSuccess(c, pack, "Pack updated")
	}
}

// PacksDelete removes a pack and its drop table
func PacksDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		packID, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid pack ID", nil)
		}

		if _, err := webApp.Repos.Pack.GetByID(c.Context(), packID); errors.Is(err, sql.ErrNoRows) {
			return utils.SendNotFound(c, "Pack not found")
		} else if err != nil {
			return utils.SendInternalServerError(c, "Failed to load pack")
		}

		if err := webApp.Repos.Pack.Delete(c.Context(), packID); err != nil {
			slog.Error("Failed to delete pack",
				slog.Int64("pack_id", packID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to delete pack")
		}

		return utils.SendSuccess(c, nil, "Pack deleted")
	}
}

// PackCardsList returns a pack's drop table
func PackCardsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		packID, err := parseInt64(c.Params("packId"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid pack ID", nil)
		}

		if _, err := webApp.Repos.Pack.GetByID(c.Context(), packID); errors.Is(err, sql.ErrNoRows) {
			return utils.SendNotFound(c, "Pack not found")
		} else if err != nil {
			return utils.SendInternalServerError(c, "Failed to load pack")
		}

		combos, err := webApp.Repos.Pack.GetCombinations(c.Context(), packID)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load pack cards")
		}

		return utils.SendSuccess(c, combos, "Pack cards retrieved successfully")
	}
}

// PackCardsAdd adds a card to a pack's drop table
func PackCardsAdd(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		packID, err := parseInt64(c.Params("packId"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid pack ID", nil)
		}

		var req webmodels.CombinationAddRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if errs := utils.ValidateDropRate(req.DropRate); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		if _, err := webApp.Repos.Pack.GetByID(c.Context(), packID); errors.Is(err, sql.ErrNoRows) {
			return utils.SendNotFound(c, "Pack not found")
		} else if err != nil {
			return utils.SendInternalServerError(c, "Failed to load pack")
		}
		if _, err := webApp.Repos.Card.GetByID(c.Context(), req.CardID); errors.Is(err, sql.ErrNoRows) {
			return utils.SendNotFound(c, "Card not found")
		} else if err != nil {
			return utils.SendInternalServerError(c, "Failed to load card")
		}

		combo := &dbmodels.PackCombination{
			PackID:   packID,
			CardID:   req.CardID,
			DropRate: req.DropRate,
		}
		if err := webApp.Repos.Pack.AddCard(c.Context(), combo); err != nil {
			// unique (pack_id, card_id) index
			return utils.SendConflict(c, "Card is already in this pack", nil)
		}

		return utils.SendCreated(c, combo, "Card added to pack")
	}
}

// PackCardsUpdate changes the drop rate of an existing entry
func PackCardsUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		packID, err := parseInt64(c.Params("packId"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid pack ID", nil)
		}
		cardID, err := parseInt64(c.Params("cardId"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid card ID", nil)
		}

		var req webmodels.CombinationUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if errs := utils.ValidateDropRate(req.DropRate); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		err = webApp.Repos.Pack.UpdateDropRate(c.Context(), packID, cardID, req.DropRate)
		if errors.Is(err, repositories.ErrCombinationNotFound) {
			return utils.SendNotFound(c, "Card is not in this pack")
		}
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to update drop rate")
		}

		return utils.SendSuccess(c, nil, "Drop rate updated")
	}
}

// PackCardsRemove removes a card from a pack's drop table
func PackCardsRemove(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		packID, err := parseInt64(c.Params("packId"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid pack ID", nil)
		}
		cardID, err := parseInt64(c.Params("cardId"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid card ID", nil)
		}

		err = webApp.Repos.Pack.RemoveCard(c.Context(), packID, cardID)
		if errors.Is(err, repositories.ErrCombinationNotFound) {
			return utils.SendNotFound(c, "Card is not in this pack")
		}
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to remove card from pack")
		}

		return utils.SendSuccess(c, nil, "Card removed from pack")
	}
}
