package repository

import (
	"context"

	"github.com/cardwall/backend/internal/domain"

	"gorm.io/gorm"
)

// CardRepository defines the interface for card data operations
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	FindByID(ctx context.Context, id uint) (*domain.Card, error)
	FindAll(ctx context.Context) ([]domain.Card, error)
	FindByColumn(ctx context.Context, col domain.Column) ([]domain.Card, error)
	MaxPosition(ctx context.Context, col domain.Column) (int, error)
	SaveAll(ctx context.Context, cards []*domain.Card) error
	Delete(ctx context.Context, id uint) error
}

// gormCardRepository implements CardRepository using GORM
type gormCardRepository struct {
	db *gorm.DB
}

// NewGormCardRepository creates a new GORM card repository
func NewGormCardRepository(db *gorm.DB) CardRepository {
	return &gormCardRepository{db: db}
}

func (r *gormCardRepository) Create(ctx context.Context, card *domain.Card) error {
	result := r.db.WithContext(ctx).Create(card)
	return result.Error
}

func (r *gormCardRepository) FindByID(ctx context.Context, id uint) (*domain.Card, error) {
	var card domain.Card
	result := r.db.WithContext(ctx).First(&card, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &card, nil
}

// FindAll retrieves every card in board order (column, then position).
func (r *gormCardRepository) FindAll(ctx context.Context) ([]domain.Card, error) {
	var cards []domain.Card
	result := r.db.WithContext(ctx).
		Order("board_column").
		Order("position").
		Find(&cards)
	if result.Error != nil {
		return nil, result.Error
	}
	return cards, nil
}

// FindByColumn retrieves the cards of a single column ordered by position.
func (r *gormCardRepository) FindByColumn(ctx context.Context, col domain.Column) ([]domain.Card, error) {
	var cards []domain.Card
	result := r.db.WithContext(ctx).
		Where("board_column = ?", col).
		Order("position").
		Find(&cards)
	if result.Error != nil {
		return nil, result.Error
	}
	return cards, nil
}

// MaxPosition returns the highest position in a column, or -1 when the
// column is empty, so the next card lands at MaxPosition+1.
func (r *gormCardRepository) MaxPosition(ctx context.Context, col domain.Column) (int, error) {
	var max int
	result := r.db.WithContext(ctx).
		Model(&domain.Card{}).
		Where("board_column = ?", col).
		Select("COALESCE(MAX(position), -1)").
		Scan(&max)
	if result.Error != nil {
		return 0, result.Error
	}
	return max, nil
}

// SaveAll persists a batch of cards in one transaction. Used by move and
// delete to keep column positions contiguous.
func (r *gormCardRepository) SaveAll(ctx context.Context, cards []*domain.Card) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, card := range cards {
			if err := tx.Save(card).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *gormCardRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Card{}, id)
	return result.Error
}
