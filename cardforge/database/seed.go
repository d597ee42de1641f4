package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/cardforge-games/cardforge/cardforge/database/models"
)

var defaultElements = []string{"Water", "Wind", "Fire", "Earth", "Dark", "Holy"}

type seedCard struct {
	Name    string
	Rarity  string
	Element string
	Power   int
}

var starterCards = []seedCard{
	{"Tide Sprite", models.RarityCommon, "Water", 12},
	{"Gale Hawk", models.RarityCommon, "Wind", 14},
	{"Ember Imp", models.RarityCommon, "Fire", 15},
	{"Stone Golem", models.RarityRare, "Earth", 28},
	{"Night Stalker", models.RarityRare, "Dark", 30},
	{"Dawn Seraph", models.RarityEpic, "Holy", 52},
	{"Inferno Drake", models.RarityEpic, "Fire", 55},
	{"Abyssal Leviathan", models.RarityLegendary, "Water", 90},
}

// Seed populates reference data and default accounts on an empty database.
// It is idempotent: a database that already has users is left untouched.
func (db *DB) Seed(ctx context.Context, starterCredits int64) error {
	count, err := db.bunDB.NewSelect().Model((*models.User)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if count > 0 {
		slog.Info("Database already seeded, skipping", slog.String("type", "db"))
		return nil
	}

	if err := db.seedElements(ctx); err != nil {
		return err
	}
	if err := db.seedUsers(ctx, starterCredits); err != nil {
		return err
	}
	if err := db.seedCatalog(ctx); err != nil {
		return err
	}

	slog.Info("Database seeded", slog.String("type", "db"))
	return nil
}

func (db *DB) seedElements(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range defaultElements {
		element := &models.Element{Name: name}
		g.Go(func() error {
			_, err := db.bunDB.NewInsert().
				Model(element).
				On("CONFLICT (name) DO NOTHING").
				Exec(gctx)
			if err != nil {
				return fmt.Errorf("failed to insert element %q: %w", element.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (db *DB) seedUsers(ctx context.Context, starterCredits int64) error {
	users := []struct {
		usernameEnv, passwordEnv string
		username, password       string
		admin                    bool
	}{
		{"DEFAULT_TEST_USER", "DEFAULT_TEST_PASS", "test", "test", false},
		{"DEFAULT_ADMIN_USER", "DEFAULT_ADMIN_PASS", "admin", "admin", true},
	}

	for _, u := range users {
		username := u.username
		if v := os.Getenv(u.usernameEnv); v != "" {
			username = v
		}
		password := u.password
		if v := os.Getenv(u.passwordEnv); v != "" {
			password = v
		} else {
			slog.Warn("Using default password for seeded account, set "+u.passwordEnv+" in production",
				slog.String("username", username))
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %q: %w", username, err)
		}

		now := time.Now()
		user := &models.User{
			Username:     username,
			PasswordHash: string(hash),
			IsAdmin:      u.admin,
			Credits:      starterCredits,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := db.bunDB.NewInsert().Model(user).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert user %q: %w", username, err)
		}
	}
	return nil
}

func (db *DB) seedCatalog(ctx context.Context) error {
	var elements []*models.Element
	if err := db.bunDB.NewSelect().Model(&elements).Scan(ctx); err != nil {
		return fmt.Errorf("failed to load elements: %w", err)
	}
	elementIDs := make(map[string]int64, len(elements))
	for _, e := range elements {
		elementIDs[e.Name] = e.ID
	}

	now := time.Now()
	cardIDs := make(map[string]int64, len(starterCards))
	for _, sc := range starterCards {
		card := &models.Card{
			Name:      sc.Name,
			Rarity:    sc.Rarity,
			ElementID: elementIDs[sc.Element],
			Power:     sc.Power,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := db.bunDB.NewInsert().Model(card).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert card %q: %w", sc.Name, err)
		}
		cardIDs[sc.Name] = card.ID
	}

	pack := &models.Pack{Name: "Starter Pack", Cost: 50, CreatedAt: now}
	if _, err := db.bunDB.NewInsert().Model(pack).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert starter pack: %w", err)
	}

	combinations := []struct {
		card string
		rate float64
	}{
		{"Tide Sprite", 20},
		{"Gale Hawk", 20},
		{"Ember Imp", 20},
		{"Stone Golem", 15},
		{"Night Stalker", 15},
		{"Dawn Seraph", 5},
		{"Inferno Drake", 4},
		{"Abyssal Leviathan", 1},
	}
	for _, combo := range combinations {
		pc := &models.PackCombination{
			PackID:   pack.ID,
			CardID:   cardIDs[combo.card],
			DropRate: combo.rate,
		}
		if _, err := db.bunDB.NewInsert().Model(pc).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert pack combination for %q: %w", combo.card, err)
		}
	}

	return nil
}
