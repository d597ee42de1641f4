package config

import (
	"time"

	"github.com/cardforge-games/cardforge/cardforge"
)

// WebAppConfig contains web-specific configuration
type WebAppConfig struct {
	Config      *cardforge.Config
	Debug       bool
	Environment string
}

// NewWebAppConfig creates a new web app configuration
func NewWebAppConfig(cfg *cardforge.Config, debug bool) *WebAppConfig {
	environment := "production"
	if debug {
		environment = "development"
	}

	return &WebAppConfig{
		Config:      cfg,
		Debug:       debug,
		Environment: environment,
	}
}

// SessionTTL returns the configured session lifetime.
func (w *WebAppConfig) SessionTTL() time.Duration {
	return time.Duration(w.Config.Web.SessionTTL) * time.Hour
}

// SecureCookies reports whether session cookies must carry the Secure flag.
func (w *WebAppConfig) SecureCookies() bool {
	return w.Config.Web.SecureCookies || w.Environment == "production"
}

// GetDatabaseConfig returns the database configuration
func (w *WebAppConfig) GetDatabaseConfig() cardforge.DBConfig {
	return w.Config.DB
}

// GetWebConfig returns the web configuration
func (w *WebAppConfig) GetWebConfig() cardforge.WebConfig {
	return w.Config.Web
}

// GetGameConfig returns the gameplay configuration
func (w *WebAppConfig) GetGameConfig() cardforge.GameConfig {
	return w.Config.Game
}

// GetSpacesConfig returns the spaces configuration
func (w *WebAppConfig) GetSpacesConfig() cardforge.SpacesConfig {
	return w.Config.Spaces
}

// GetLogConfig returns the log configuration
func (w *WebAppConfig) GetLogConfig() cardforge.LogConfig {
	return w.Config.Log
}
