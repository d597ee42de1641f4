package models

import (
	"time"

	dbmodels "github.com/cardforge-games/cardforge/cardforge/database/models"
)

// UserSession represents an authenticated user session
type UserSession struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisterRequest represents a registration form submission
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents a login form submission
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CardCreateRequest represents the payload for creating a card
type CardCreateRequest struct {
	Name      string `json:"name"`
	Rarity    string `json:"rarity"`
	ElementID int64  `json:"element_id"`
	Power     int    `json:"power"`
	ImageURL  string `json:"image_url"`
}

// CardUpdateRequest represents a partial card update. Nil fields are left
// unchanged.
type CardUpdateRequest struct {
	Name      *string `json:"name"`
	Rarity    *string `json:"rarity"`
	ElementID *int64  `json:"element_id"`
	Power     *int    `json:"power"`
	ImageURL  *string `json:"image_url"`
}

// ElementCreateRequest represents the payload for creating an element
type ElementCreateRequest struct {
	Name string `json:"name"`
}

// PackCreateRequest represents the payload for creating a pack
type PackCreateRequest struct {
	Name string `json:"name"`
	Cost int64  `json:"cost"`
}

// PackUpdateRequest represents a partial pack update
type PackUpdateRequest struct {
	Name *string `json:"name"`
	Cost *int64  `json:"cost"`
}

// CombinationAddRequest adds a card to a pack's drop table
type CombinationAddRequest struct {
	CardID   int64   `json:"card_id"`
	DropRate float64 `json:"drop_rate"`
}

// CombinationUpdateRequest changes the drop rate of an existing entry
type CombinationUpdateRequest struct {
	DropRate float64 `json:"drop_rate"`
}

// CreditPurchaseRequest represents a credit top-up
type CreditPurchaseRequest struct {
	Amount int64 `json:"amount"`
}

// UserProfile is the current-user payload returned by /api/auth/me
type UserProfile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	Credits   int64     `json:"credits"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserProfile builds a profile payload from a stored user
func NewUserProfile(u *dbmodels.User) *UserProfile {
	return &UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		IsAdmin:   u.IsAdmin,
		Credits:   u.Credits,
		CreatedAt: u.CreatedAt,
	}
}

// PackSummary is a pack list entry annotated with its drop-table size
type PackSummary struct {
	*dbmodels.Pack
	CardCount int `json:"card_count"`
}

// PackDetail is a pack with its full drop table
type PackDetail struct {
	*dbmodels.Pack
	Combinations []*dbmodels.PackCombination `json:"combinations"`
}

// CollectionEntry is one owned card in a user's collection view
type CollectionEntry struct {
	CardID       int64     `json:"card_id"`
	Name         string    `json:"name"`
	Rarity       string    `json:"rarity"`
	Power        int       `json:"power"`
	ImageURL     string    `json:"image_url,omitempty"`
	ElementName  string    `json:"element_name,omitempty"`
	Quantity     int64     `json:"quantity"`
	AcquiredDate time.Time `json:"acquired_date"`
}

// NewCollectionEntry flattens an owned-card row and its card relation
func NewCollectionEntry(oc *dbmodels.OwnedCard) *CollectionEntry {
	entry := &CollectionEntry{
		CardID:       oc.CardID,
		Quantity:     oc.Quantity,
		AcquiredDate: oc.AcquiredDate,
	}
	if oc.Card != nil {
		entry.Name = oc.Card.Name
		entry.Rarity = oc.Card.Rarity
		entry.Power = oc.Card.Power
		entry.ImageURL = oc.Card.ImageURL
		if oc.Card.Element != nil {
			entry.ElementName = oc.Card.Element.Name
		}
	}
	return entry
}

// DashboardStats represents admin dashboard statistics
type DashboardStats struct {
	TotalCards    int64 `json:"total_cards"`
	TotalPacks    int   `json:"total_packs"`
	TotalElements int   `json:"total_elements"`
}

// FieldValidationError represents a single invalid request field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
