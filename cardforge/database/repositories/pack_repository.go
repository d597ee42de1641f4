package repositories

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/uptrace/bun"

	"github.com/cardforge-games/cardforge/cardforge/database/models"
)

const combinationCacheSize = 128

type PackRepository interface {
	Create(ctx context.Context, pack *models.Pack) error
	GetByID(ctx context.Context, id int64) (*models.Pack, error)
	GetAll(ctx context.Context) ([]*models.Pack, error)
	Update(ctx context.Context, pack *models.Pack) error
	Delete(ctx context.Context, id int64) error

	AddCard(ctx context.Context, combo *models.PackCombination) error
	UpdateDropRate(ctx context.Context, packID, cardID int64, dropRate float64) error
	RemoveCard(ctx context.Context, packID, cardID int64) error
	GetCombinations(ctx context.Context, packID int64) ([]*models.PackCombination, error)
	GetCardCount(ctx context.Context, packID int64) (int, error)
	PurgeCombinations()
}

type packRepository struct {
	db *bun.DB

	// combination tables are read on every pack opening; cache them until a
	// combination mutation invalidates the pack's entry
	combinations *lru.Cache
}

func NewPackRepository(db *bun.DB) PackRepository {
	cache, _ := lru.New(combinationCacheSize)
	return &packRepository{db: db, combinations: cache}
}

func (r *packRepository) Create(ctx context.Context, pack *models.Pack) error {
	pack.CreatedAt = time.Now()
	_, err := r.db.NewInsert().
		Model(pack).
		Returning("id").
		Exec(ctx)
	return err
}

func (r *packRepository) GetByID(ctx context.Context, id int64) (*models.Pack, error) {
	pack := new(models.Pack)
	err := r.db.NewSelect().
		Model(pack).
		Where("id = ?", id).
		Scan(ctx)
	return pack, err
}

func (r *packRepository) GetAll(ctx context.Context) ([]*models.Pack, error) {
	var packs []*models.Pack
	err := r.db.NewSelect().
		Model(&packs).
		Order("created_at DESC").
		Scan(ctx)
	return packs, err
}

func (r *packRepository) Update(ctx context.Context, pack *models.Pack) error {
	_, err := r.db.NewUpdate().
		Model(pack).
		WherePK().
		Exec(ctx)
	return err
}

func (r *packRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.PackCombination)(nil)).
			Where("pack_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().
			Model((*models.Pack)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
	if err == nil {
		r.combinations.Remove(id)
	}
	return err
}

func (r *packRepository) AddCard(ctx context.Context, combo *models.PackCombination) error {
	_, err := r.db.NewInsert().
		Model(combo).
		Returning("id").
		Exec(ctx)
	if err == nil {
		r.combinations.Remove(combo.PackID)
	}
	return err
}

func (r *packRepository) UpdateDropRate(ctx context.Context, packID, cardID int64, dropRate float64) error {
	result, err := r.db.NewUpdate().
		Model((*models.PackCombination)(nil)).
		Set("drop_rate = ?", dropRate).
		Where("pack_id = ? AND card_id = ?", packID, cardID).
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrCombinationNotFound
	}
	r.combinations.Remove(packID)
	return nil
}

func (r *packRepository) RemoveCard(ctx context.Context, packID, cardID int64) error {
	result, err := r.db.NewDelete().
		Model((*models.PackCombination)(nil)).
		Where("pack_id = ? AND card_id = ?", packID, cardID).
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrCombinationNotFound
	}
	r.combinations.Remove(packID)
	return nil
}

// GetCombinations returns a pack's drop-rate table ordered by descending
// drop rate, ties broken by ascending card id. The order is part of the draw
// contract and must be stable between calls.
func (r *packRepository) GetCombinations(ctx context.Context, packID int64) ([]*models.PackCombination, error) {
	if cached, ok := r.combinations.Get(packID); ok {
		return cached.([]*models.PackCombination), nil
	}

	var combos []*models.PackCombination
	err := r.db.NewSelect().
		Model(&combos).
		Relation("Card").
		Relation("Card.Element").
		Where("pc.pack_id = ?", packID).
		Order("pc.drop_rate DESC", "pc.card_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	r.combinations.Add(packID, combos)
	return combos, nil
}

// PurgeCombinations drops every cached combination table. Cached rows embed
// card and element fields, so card mutations call this to keep draw results
// current.
func (r *packRepository) PurgeCombinations() {
	r.combinations.Purge()
}

func (r *packRepository) GetCardCount(ctx context.Context, packID int64) (int, error) {
	return r.db.NewSelect().
		Model((*models.PackCombination)(nil)).
		Where("pack_id = ?", packID).
		Count(ctx)
}
