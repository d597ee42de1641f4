package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/cardforge-games/cardforge/backend/utils"
)

const (
	CSRFCookieName = "csrf_token"
	CSRFHeaderName = "X-CSRF-Token"

	csrfTokenBytes = 32
)

// NewCSRFToken generates a random double-submit token.
func NewCSRFToken() (string, error) {
	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// EnsureCSRFCookie sets the double-submit cookie when the client does not
// have one yet. The cookie is deliberately readable by scripts so the
// frontend can echo it back in the request header.
func EnsureCSRFCookie(secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Cookies(CSRFCookieName) == "" {
			token, err := NewCSRFToken()
			if err != nil {
				return utils.SendInternalServerError(c, "Failed to issue CSRF token")
			}
			c.Cookie(&fiber.Cookie{
				Name:     CSRFCookieName,
				Value:    token,
				Path:     "/",
				Secure:   secure,
				HTTPOnly: false,
				SameSite: "Lax",
			})
		}
		return c.Next()
	}
}

// CSRFProtect enforces the double-submit check on state-changing methods:
// the request header must match the cookie.
func CSRFProtect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		cookie := c.Cookies(CSRFCookieName)
		header := c.Get(CSRFHeaderName)

		if cookie == "" || header == "" ||
			subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			slog.Warn("CSRF check failed",
				slog.String("method", c.Method()),
				slog.String("path", c.Path()),
				slog.String("ip", utils.GetIPAddress(c)))
			return utils.SendForbidden(c, "CSRF token mismatch")
		}

		return c.Next()
	}
}
