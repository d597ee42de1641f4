package repositories

import (
	"context"

	"github.com/cardforge-games/cardforge/cardforge/database/models"
	"github.com/uptrace/bun"
)

type ElementRepository interface {
	Create(ctx context.Context, element *models.Element) error
	GetByID(ctx context.Context, id int64) (*models.Element, error)
	GetAll(ctx context.Context) ([]*models.Element, error)
}

type elementRepository struct {
	db *bun.DB
}

func NewElementRepository(db *bun.DB) ElementRepository {
	return &elementRepository{db: db}
}

func (r *elementRepository) Create(ctx context.Context, element *models.Element) error {
	_, err := r.db.NewInsert().Model(element).Exec(ctx)
	return err
}

func (r *elementRepository) GetByID(ctx context.Context, id int64) (*models.Element, error) {
	element := new(models.Element)
	err := r.db.NewSelect().
		Model(element).
		Where("id = ?", id).
		Scan(ctx)
	return element, err
}

func (r *elementRepository) GetAll(ctx context.Context) ([]*models.Element, error) {
	var elements []*models.Element
	err := r.db.NewSelect().
		Model(&elements).
		Order("name ASC").
		Scan(ctx)
	return elements, err
}
