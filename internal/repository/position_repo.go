package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noobie-hq/noobie-api/internal/models"
)

// PositionRepository provides access to position records.
type PositionRepository interface {
	GetByID(ctx context.Context, id uint) (models.Position, error)
}

type positionRepository struct {
	db *gorm.DB
}

// NewPositionRepository constructs a position repository.
func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &positionRepository{db: db}
}

func (r *positionRepository) GetByID(ctx context.Context, id uint) (models.Position, error) {
	var position models.Position
	if err := r.db.WithContext(ctx).First(&position, id).Error; err != nil {
		return models.Position{}, err
	}

	return position, nil
}
