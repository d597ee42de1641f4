package repositories

import (
	"context"

	"github.com/cardforge-games/cardforge/cardforge/database/models"
	"github.com/uptrace/bun"
)

type OwnedCardRepository interface {
	GetByUserAndCard(ctx context.Context, userID, cardID int64) (*models.OwnedCard, error)
	GetAllByUserID(ctx context.Context, userID int64) ([]*models.OwnedCard, error)
	CountCopies(ctx context.Context, cardID int64) (int64, error)
}

type ownedCardRepository struct {
	db *bun.DB
}

func NewOwnedCardRepository(db *bun.DB) OwnedCardRepository {
	return &ownedCardRepository{db: db}
}

func (r *ownedCardRepository) GetByUserAndCard(ctx context.Context, userID, cardID int64) (*models.OwnedCard, error) {
	owned := new(models.OwnedCard)
	err := r.db.NewSelect().
		Model(owned).
		Where("user_id = ? AND card_id = ?", userID, cardID).
		Scan(ctx)
	return owned, err
}

func (r *ownedCardRepository) GetAllByUserID(ctx context.Context, userID int64) ([]*models.OwnedCard, error) {
	var owned []*models.OwnedCard
	err := r.db.NewSelect().
		Model(&owned).
		Relation("Card").
		Relation("Card.Element").
		Where("oc.user_id = ?", userID).
		Order("oc.acquired_date DESC").
		Scan(ctx)
	return owned, err
}

func (r *ownedCardRepository) CountCopies(ctx context.Context, cardID int64) (int64, error) {
	var copies int64
	err := r.db.NewSelect().
		Model((*models.OwnedCard)(nil)).
		ColumnExpr("COALESCE(SUM(quantity), 0)").
		Where("card_id = ?", cardID).
		Scan(ctx, &copies)
	return copies, err
}
