package models

import (
	"github.com/cardforge-games/cardforge/cardforge/database/repositories"
)

// Repositories groups all repository interfaces for easy injection
type Repositories struct {
	User      repositories.UserRepository
	Card      repositories.CardRepository
	Element   repositories.ElementRepository
	Pack      repositories.PackRepository
	OwnedCard repositories.OwnedCardRepository
}

// NewRepositories creates a new repositories group from individual repositories
func NewRepositories(
	user repositories.UserRepository,
	card repositories.CardRepository,
	element repositories.ElementRepository,
	pack repositories.PackRepository,
	ownedCard repositories.OwnedCardRepository,
) *Repositories {
	return &Repositories{
		User:      user,
		Card:      card,
		Element:   element,
		Pack:      pack,
		OwnedCard: ownedCard,
	}
}
