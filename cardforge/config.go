package cardforge

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

type Config struct {
	Log    LogConfig    `toml:"log"`
	DB     DBConfig     `toml:"db"`
	Web    WebConfig    `toml:"web"`
	Game   GameConfig   `toml:"game"`
	Spaces SpacesConfig `toml:"spaces"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

type WebConfig struct {
	Addr           string   `toml:"addr"`
	JWTSecret      string   `toml:"jwt_secret"`
	CSRFSecret     string   `toml:"csrf_secret"`
	SecureCookies  bool     `toml:"secure_cookies"`
	SessionTTL     int      `toml:"session_ttl"` // hours
	AllowedOrigins []string `toml:"allowed_origins"`
}

type GameConfig struct {
	CardsPerPack   int   `toml:"cards_per_pack"`
	StarterCredits int64 `toml:"starter_credits"`
}

type SpacesConfig struct {
	Key      string `toml:"key"`
	Secret   string `toml:"secret"`
	Region   string `toml:"region"`
	Bucket   string `toml:"bucket"`
	CardRoot string `toml:"cardroot"`
}

func (c *Config) applyDefaults() {
	if c.Web.Addr == "" {
		c.Web.Addr = ":8080"
	}
	if c.Web.SessionTTL <= 0 {
		c.Web.SessionTTL = 24
	}
	if c.Game.CardsPerPack <= 0 {
		c.Game.CardsPerPack = 5
	}
	if c.Game.StarterCredits < 0 {
		c.Game.StarterCredits = 0
	}
}
