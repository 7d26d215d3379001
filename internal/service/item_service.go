package service

import (
	"context"
	"errors"
	"log/slog"
	"unicode/utf8"

	"github.com/cardwall/backend/internal/domain"
	"github.com/cardwall/backend/internal/repository"

	"gorm.io/gorm"
)

// CreateItemRequest holds the data needed to create a new item.
type CreateItemRequest struct {
	Name string `json:"name"`
}

// ItemResponse is the representation of an item returned by the service.
type ItemResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ItemService manages the minimal demo entity.
type ItemService interface {
	CreateItem(ctx context.Context, req CreateItemRequest) (*ItemResponse, error)
	GetItemByID(ctx context.Context, id uint) (*ItemResponse, error)
}

type itemService struct {
	repo repository.ItemRepository
}

// NewItemService creates a new instance of itemService.
func NewItemService(repo repository.ItemRepository) ItemService {
	return &itemService{repo: repo}
}

func (s *itemService) CreateItem(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	if n := utf8.RuneCountInString(req.Name); n < 1 || n > 100 {
		return nil, &ValidationError{Field: "name", Message: "must be between 1 and 100 characters"}
	}

	item := &domain.Item{Name: req.Name}
	if err := s.repo.Create(ctx, item); err != nil {
		slog.Error("failed to create item", "error", err)
		return nil, errors.New("failed to create item")
	}
	return &ItemResponse{ID: item.ID, Name: item.Name}, nil
}

func (s *itemService) GetItemByID(ctx context.Context, id uint) (*ItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		slog.Error("failed to fetch item", "id", id, "error", err)
		return nil, errors.New("failed to retrieve item")
	}
	return &ItemResponse{ID: item.ID, Name: item.Name}, nil
}
