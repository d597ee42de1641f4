package services

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/cardforge-games/cardforge/backend/config"
	"github.com/cardforge-games/cardforge/backend/models"
	dbmodels "github.com/cardforge-games/cardforge/cardforge/database/models"
)

const SessionCookieName = "cardforge_token"

// SessionService manages stateless JWT sessions carried in an HttpOnly
// cookie. There is no server-side session store; the token is the session.
type SessionService struct {
	config *config.WebAppConfig
}

type sessionClaims struct {
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
	jwt.RegisteredClaims
}

// NewSessionService creates a new session service
func NewSessionService(cfg *config.WebAppConfig) *SessionService {
	return &SessionService{
		config: cfg,
	}
}

// CreateSession issues a signed session token for the user and sets the
// session cookie.
func (s *SessionService) CreateSession(c *fiber.Ctx, user *dbmodels.User) (*models.UserSession, error) {
	secret := s.config.Config.Web.JWTSecret
	if secret == "" {
		return nil, fmt.Errorf("jwt secret not configured")
	}

	expiresAt := time.Now().Add(s.config.SessionTTL())
	claims := sessionClaims{
		Username: user.Username,
		Admin:    user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.config.SessionTTL() / time.Second),
		Secure:   s.config.SecureCookies(),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	slog.Info("Session created for user",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
		slog.Bool("is_admin", user.IsAdmin))

	return &models.UserSession{
		UserID:    user.ID,
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		ExpiresAt: expiresAt,
	}, nil
}

// GetSession validates the session cookie and returns the session it carries.
func (s *SessionService) GetSession(c *fiber.Ctx) (*models.UserSession, error) {
	cookie := c.Cookies(SessionCookieName)
	if cookie == "" {
		return nil, fmt.Errorf("no session cookie found")
	}

	var claims sessionClaims
	token, err := jwt.ParseWithClaims(cookie, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return []byte(s.config.Config.Web.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed session subject: %w", err)
	}

	return &models.UserSession{
		UserID:    userID,
		Username:  claims.Username,
		IsAdmin:   claims.Admin,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// DestroySession removes the session cookie
func (s *SessionService) DestroySession(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   s.config.SecureCookies(),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
