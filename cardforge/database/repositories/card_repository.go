package repositories

import (
	"context"
	"time"

	"github.com/cardforge-games/cardforge/cardforge/database/models"
	"github.com/uptrace/bun"
)

const defaultQueryTimeout = 10 * time.Second

type CardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	GetByID(ctx context.Context, id int64) (*models.Card, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*models.Card, error)
	GetAll(ctx context.Context) ([]*models.Card, error)
	Update(ctx context.Context, card *models.Card) error
	SafeDelete(ctx context.Context, cardID int64) (*models.DeletionReport, error)
	GetCardCount(ctx context.Context) (int64, error)
}

// CombinationPurger invalidates cached pack combination tables. Card
// mutations go through it because cached combinations embed card fields.
type CombinationPurger interface {
	PurgeCombinations()
}

type cardRepository struct {
	db     *bun.DB
	combos CombinationPurger
}

func NewCardRepository(db *bun.DB, combos CombinationPurger) CardRepository {
	return &cardRepository{db: db, combos: combos}
}

func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	card.CreatedAt = time.Now()
	card.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(card).
		Returning("id").
		Exec(ctx)

	return err
}

func (r *cardRepository) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	card := new(models.Card)
	err := r.db.NewSelect().
		Model(card).
		Relation("Element").
		Where("c.id = ?", id).
		Scan(ctx)

	return card, err
}

func (r *cardRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Relation("Element").
		Where("c.id IN (?)", bun.In(ids)).
		Scan(ctx)

	return cards, err
}

func (r *cardRepository) GetAll(ctx context.Context) ([]*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Relation("Element").
		Order("c.id ASC").
		Scan(ctx)

	return cards, err
}

func (r *cardRepository) Update(ctx context.Context, card *models.Card) error {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	card.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(card).
		WherePK().
		Exec(ctx)
	if err == nil && r.combos != nil {
		r.combos.PurgeCombinations()
	}
	return err
}

// SafeDelete refuses to delete a card that is still referenced by any user's
// inventory and reports what blocks (or what was removed alongside) the card.
func (r *cardRepository) SafeDelete(ctx context.Context, cardID int64) (*models.DeletionReport, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	card := new(models.Card)
	if err := r.db.NewSelect().Model(card).Where("id = ?", cardID).Scan(ctx); err != nil {
		return nil, err
	}

	report := &models.DeletionReport{
		CardID:   card.ID,
		CardName: card.Name,
	}

	var ownership struct {
		Copies int64
		Users  int
	}
	err := r.db.NewSelect().
		Model((*models.OwnedCard)(nil)).
		ColumnExpr("COALESCE(SUM(quantity), 0) AS copies").
		ColumnExpr("COUNT(DISTINCT user_id) AS users").
		Where("card_id = ?", cardID).
		Scan(ctx, &ownership.Copies, &ownership.Users)
	if err != nil {
		return nil, err
	}
	report.OwnedCopies = ownership.Copies
	report.OwningUsers = ownership.Users

	packEntries, err := r.db.NewSelect().
		Model((*models.PackCombination)(nil)).
		Where("card_id = ?", cardID).
		Count(ctx)
	if err != nil {
		return nil, err
	}
	report.PackEntries = packEntries

	if report.OwnedCopies > 0 {
		report.BlockedBy = "card is owned by users"
		return report, nil
	}

	err = r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.PackCombination)(nil)).
			Where("card_id = ?", cardID).
			Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().
			Model((*models.Card)(nil)).
			Where("id = ?", cardID).
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if r.combos != nil {
		r.combos.PurgeCombinations()
	}

	report.Deleted = true
	return report, nil
}

func (r *cardRepository) GetCardCount(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	count, err := r.db.NewSelect().
		Model((*models.Card)(nil)).
		Count(ctx)
	return int64(count), err
}
