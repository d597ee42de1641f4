package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"

	"github.com/sahilm/fuzzy"

	webmodels "github.com/cardforge-games/cardforge/backend/models"
	"github.com/cardforge-games/cardforge/cardforge/database/models"
)

var (
	ErrCardNotFound    = errors.New("card not found")
	ErrElementNotFound = errors.New("element not found")
)

// CardManagementService provides card catalog operations for the admin API
type CardManagementService struct {
	repos         *webmodels.Repositories
	spacesService *SpacesService
}

// NewCardManagementService creates a new card management service
func NewCardManagementService(repos *webmodels.Repositories, spacesService *SpacesService) *CardManagementService {
	return &CardManagementService{
		repos:         repos,
		spacesService: spacesService,
	}
}

// CreateCard validates the element reference and stores a new card.
func (cms *CardManagementService) CreateCard(ctx context.Context, req *webmodels.CardCreateRequest) (*models.Card, error) {
	if _, err := cms.repos.Element.GetByID(ctx, req.ElementID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrElementNotFound
		}
		return nil, fmt.Errorf("failed to resolve element: %w", err)
	}

	card := &models.Card{
		Name:      req.Name,
		Rarity:    req.Rarity,
		ElementID: req.ElementID,
		Power:     req.Power,
		ImageURL:  req.ImageURL,
	}
	if err := cms.repos.Card.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	slog.Info("Card created",
		slog.Int64("card_id", card.ID),
		slog.String("name", card.Name),
		slog.String("rarity", card.Rarity))

	return cms.repos.Card.GetByID(ctx, card.ID)
}

// UpdateCard applies a partial update to an existing card.
func (cms *CardManagementService) UpdateCard(ctx context.Context, cardID int64, req *webmodels.CardUpdateRequest) (*models.Card, error) {
	card, err := cms.repos.Card.GetByID(ctx, cardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load card: %w", err)
	}

	if req.Name != nil {
		card.Name = *req.Name
	}
	if req.Rarity != nil {
		if !models.ValidRarity(*req.Rarity) {
			return nil, fmt.Errorf("invalid rarity %q", *req.Rarity)
		}
		card.Rarity = *req.Rarity
	}
	if req.ElementID != nil {
		if _, err := cms.repos.Element.GetByID(ctx, *req.ElementID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrElementNotFound
			}
			return nil, fmt.Errorf("failed to resolve element: %w", err)
		}
		card.ElementID = *req.ElementID
	}
	if req.Power != nil {
		if *req.Power < 0 {
			return nil, fmt.Errorf("power must not be negative")
		}
		card.Power = *req.Power
	}
	if req.ImageURL != nil {
		card.ImageURL = *req.ImageURL
	}

	if err := cms.repos.Card.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	return cms.repos.Card.GetByID(ctx, card.ID)
}

// DeleteCard removes a card unless it is still owned, and cleans up its
// stored image after a successful delete.
func (cms *CardManagementService) DeleteCard(ctx context.Context, cardID int64) (*models.DeletionReport, error) {
	card, err := cms.repos.Card.GetByID(ctx, cardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load card: %w", err)
	}

	report, err := cms.repos.Card.SafeDelete(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete card: %w", err)
	}

	if report.Deleted && card.ImageURL != "" && cms.spacesService != nil {
		if err := cms.spacesService.DeleteCardImage(ctx, card.ImageURL); err != nil {
			// The card is already gone; an orphaned image is not fatal.
			slog.Warn("Failed to delete card image",
				slog.Int64("card_id", cardID),
				slog.String("error", err.Error()))
		}
	}

	return report, nil
}

// SearchCards returns cards whose names fuzzy-match the query, best match
// first. An empty query returns the full catalog.
func (cms *CardManagementService) SearchCards(ctx context.Context, query string) ([]*models.Card, error) {
	cards, err := cms.repos.Card.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	if query == "" {
		return cards, nil
	}

	names := make([]string, len(cards))
	for i, card := range cards {
		names[i] = card.Name
	}

	// fuzzy.Find returns matches ranked best-first
	matches := fuzzy.Find(query, names)

	results := make([]*models.Card, 0, len(matches))
	for _, match := range matches {
		results = append(results, cards[match.Index])
	}
	return results, nil
}

// AttachImage uploads card art and records its URL on the card.
func (cms *CardManagementService) AttachImage(ctx context.Context, cardID int64, file *multipart.FileHeader) (*models.Card, error) {
	card, err := cms.repos.Card.GetByID(ctx, cardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load card: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	url, err := cms.spacesService.UploadCardImage(ctx, card.ID, card.Name, src, contentType)
	if err != nil {
		return nil, err
	}

	previous := card.ImageURL
	card.ImageURL = url
	if err := cms.repos.Card.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to record image url: %w", err)
	}

	if previous != "" && previous != url {
		if err := cms.spacesService.DeleteCardImage(ctx, previous); err != nil {
			slog.Warn("Failed to delete replaced card image",
				slog.Int64("card_id", cardID),
				slog.String("error", err.Error()))
		}
	}

	return card, nil
}
