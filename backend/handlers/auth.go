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

// Register creates an account and logs the new user in
func Register(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		if errs := utils.ValidateRegisterRequest(&req); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		user, err := webApp.AuthService.Register(c.Context(), req.Username, req.Password)
		if errors.Is(err, webservices.ErrUsernameTaken) {
			return utils.SendConflict(c, "Username already taken", nil)
		}
		if err != nil {
			slog.Error("Registration failed",
				slog.String("username", req.Username),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to create account")
		}

		if _, err := webApp.SessionService.CreateSession(c, user); err != nil {
			return utils.SendInternalServerError(c, "Failed to create session")
		}

		return utils.SendCreated(c, webmodels.NewUserProfile(user), "Account created")
	}
}

// Login verifies credentials and issues a session cookie
func Login(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		user, err := webApp.AuthService.Login(c.Context(), req.Username, req.Password)
		if errors.Is(err, webservices.ErrInvalidCredentials) {
			return utils.SendUnauthorized(c, "Invalid username or password")
		}
		if err != nil {
			slog.Error("Login failed",
				slog.String("username", req.Username),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to log in")
		}

		if _, err := webApp.SessionService.CreateSession(c, user); err != nil {
			return utils.SendInternalServerError(c, "Failed to create session")
		}

		return utils.SendSuccess(c, webmodels.NewUserProfile(user), "Logged in")
	}
}

// Logout clears the session cookie
func Logout(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		webApp.SessionService.DestroySession(c)
		return utils.SendSuccess(c, nil, "Logged out")
	}
}

// Me returns the profile and balance of the authenticated user
func Me(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := utils.ExtractUserSession(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		user, err := webApp.Repos.User.GetByID(c.Context(), session.UserID)
		if errors.Is(err, sql.ErrNoRows) {
			// Session outlived the account
			webApp.SessionService.DestroySession(c)
			return utils.SendUnauthorized(c, "Account no longer exists")
		}
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load profile")
		}

		return utils.SendSuccess(c, webmodels.NewUserProfile(user), "")
	}
}

// CSRFToken returns the double-submit token for the client to echo back in
// request headers. The middleware has already set the cookie.
func CSRFToken(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, fiber.Map{
			"csrf_token": c.Cookies("csrf_token"),
		}, "")
	}
}
