package repository

import (
	"context"

	"github.com/cardwall/backend/internal/domain"

	"gorm.io/gorm"
)

// ItemRepository defines the interface for item data operations
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	FindByID(ctx context.Context, id uint) (*domain.Item, error)
}

type gormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GORM item repository
func NewGormItemRepository(db *gorm.DB) ItemRepository {
	return &gormItemRepository{db: db}
}

func (r *gormItemRepository) Create(ctx context.Context, item *domain.Item) error {
	result := r.db.WithContext(ctx).Create(item)
	return result.Error
}

func (r *gormItemRepository) FindByID(ctx context.Context, id uint) (*domain.Item, error) {
	var item domain.Item
	result := r.db.WithContext(ctx).First(&item, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &item, nil
}
