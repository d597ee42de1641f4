package handlers

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/cardforge-games/cardforge/backend/models"
	"github.com/cardforge-games/cardforge/backend/utils"
	dbmodels "github.com/cardforge-games/cardforge/cardforge/database/models"
)

// ElementsList returns all elements
func ElementsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		elements, err := webApp.Repos.Element.GetAll(c.Context())
		if err != nil {
			slog.Error("Failed to list elements", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to list elements")
		}
		return utils.SendSuccess(c, elements, "Elements retrieved successfully")
	}
}

// ElementsCreate creates an element
func ElementsCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.ElementCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			return utils.SendBadRequest(c, "Name is required", nil)
		}

		element := &dbmodels.Element{Name: req.Name}
		if err := webApp.Repos.Element.Create(c.Context(), element); err != nil {
			slog.Error("Failed to create element",
				slog.String("name", req.Name),
				slog.String("error", err.Error()))
			return utils.SendConflict(c, "Element already exists", nil)
		}

		return utils.SendCreated(c, element, "Element created")
	}
}
