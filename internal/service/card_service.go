package service

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/cardwall/backend/internal/domain"
	"github.com/cardwall/backend/internal/repository"

	"gorm.io/gorm"
)

const (
	minTitleLength = 3
	maxTitleLength = 255
)

// CreateCardRequest holds the data needed to create a new card.
type CreateCardRequest struct {
	Title  string `json:"title"`
	Column string `json:"column"`
}

// MoveCardRequest moves a card to a column (and position within it).
// Position beyond either end of the column is clamped.
type MoveCardRequest struct {
	ColumnID string `json:"column_id"`
	Position int    `json:"position"`
}

// CardResponse is the standard representation of a card returned by the service.
type CardResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Column    string `json:"column"`
	Position  int    `json:"position"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CardService contains the board's core business logic.
type CardService interface {
	CreateCard(ctx context.Context, userID uint, req CreateCardRequest) (*CardResponse, error)
	GetCardByID(ctx context.Context, id uint) (*CardResponse, error)
	GetAllCards(ctx context.Context) ([]CardResponse, error)
	MoveCard(ctx context.Context, id uint, req MoveCardRequest) (*CardResponse, error)
	DeleteCard(ctx context.Context, id uint) error
}

type cardService struct {
	repo repository.CardRepository
}

// NewCardService creates a new instance of cardService.
func NewCardService(repo repository.CardRepository) CardService {
	return &cardService{repo: repo}
}

// CreateCard validates the request and appends the card at the end of its
// column.
func (s *cardService) CreateCard(ctx context.Context, userID uint, req CreateCardRequest) (*CardResponse, error) {
	if n := utf8.RuneCountInString(req.Title); n < minTitleLength || n > maxTitleLength {
		return nil, &ValidationError{Field: "title", Message: "must be between 3 and 255 characters"}
	}
	col, ok := domain.ParseColumn(req.Column)
	if !ok {
		return nil, &ValidationError{Field: "column", Message: "must be one of: todo, in-progress, done"}
	}

	maxPos, err := s.repo.MaxPosition(ctx, col)
	if err != nil {
		slog.Error("failed to read column position", "column", col, "error", err)
		return nil, errors.New("failed to create card")
	}

	card := &domain.Card{
		Title:    req.Title,
		Column:   col,
		Position: maxPos + 1,
		UserID:   userID,
	}
	if err := s.repo.Create(ctx, card); err != nil {
		slog.Error("failed to create card", "error", err)
		return nil, errors.New("failed to create card")
	}

	return cardToResponse(card), nil
}

func (s *cardService) GetCardByID(ctx context.Context, id uint) (*CardResponse, error) {
	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		slog.Error("failed to fetch card", "id", id, "error", err)
		return nil, errors.New("failed to retrieve card")
	}
	return cardToResponse(card), nil
}

func (s *cardService) GetAllCards(ctx context.Context) ([]CardResponse, error) {
	cards, err := s.repo.FindAll(ctx)
	if err != nil {
		slog.Error("failed to fetch cards", "error", err)
		return nil, errors.New("failed to retrieve cards")
	}

	responses := make([]CardResponse, 0, len(cards))
	for i := range cards {
		responses = append(responses, *cardToResponse(&cards[i]))
	}
	return responses, nil
}

// MoveCard places the card at the requested position of the target column,
// clamping the position and keeping positions in the affected columns
// contiguous.
func (s *cardService) MoveCard(ctx context.Context, id uint, req MoveCardRequest) (*CardResponse, error) {
	target, ok := domain.ParseColumn(req.ColumnID)
	if !ok {
		return nil, &ValidationError{Field: "column_id", Message: "must be one of: todo, in-progress, done"}
	}

	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		slog.Error("failed to fetch card for move", "id", id, "error", err)
		return nil, errors.New("failed to move card")
	}

	source := card.Column

	targetCards, err := s.repo.FindByColumn(ctx, target)
	if err != nil {
		slog.Error("failed to fetch target column", "column", target, "error", err)
		return nil, errors.New("failed to move card")
	}

	// Exclude the moving card itself; it is re-inserted below.
	others := make([]*domain.Card, 0, len(targetCards))
	for i := range targetCards {
		if targetCards[i].ID == card.ID {
			continue
		}
		others = append(others, &targetCards[i])
	}

	pos := req.Position
	if pos < 0 {
		pos = 0
	}
	if pos > len(others) {
		pos = len(others)
	}

	card.Column = target
	newOrder := make([]*domain.Card, 0, len(others)+1)
	newOrder = append(newOrder, others[:pos]...)
	newOrder = append(newOrder, card)
	newOrder = append(newOrder, others[pos:]...)

	dirty := make([]*domain.Card, 0, len(newOrder))
	for i, c := range newOrder {
		if c.Position != i || c.ID == card.ID {
			c.Position = i
			dirty = append(dirty, c)
		}
	}

	// Close the gap the card left behind in its source column.
	if source != target {
		sourceCards, err := s.repo.FindByColumn(ctx, source)
		if err != nil {
			slog.Error("failed to fetch source column", "column", source, "error", err)
			return nil, errors.New("failed to move card")
		}
		i := 0
		for j := range sourceCards {
			if sourceCards[j].ID == card.ID {
				continue
			}
			if sourceCards[j].Position != i {
				sourceCards[j].Position = i
				dirty = append(dirty, &sourceCards[j])
			}
			i++
		}
	}

	if err := s.repo.SaveAll(ctx, dirty); err != nil {
		slog.Error("failed to persist move", "id", id, "error", err)
		return nil, errors.New("failed to move card")
	}

	return cardToResponse(card), nil
}

// DeleteCard removes the card and re-indexes its column.
func (s *cardService) DeleteCard(ctx context.Context, id uint) error {
	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCardNotFound
		}
		slog.Error("failed to fetch card for delete", "id", id, "error", err)
		return errors.New("failed to delete card")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		slog.Error("failed to delete card", "id", id, "error", err)
		return errors.New("failed to delete card")
	}

	remaining, err := s.repo.FindByColumn(ctx, card.Column)
	if err != nil {
		slog.Error("failed to fetch column after delete", "column", card.Column, "error", err)
		return errors.New("failed to delete card")
	}
	dirty := make([]*domain.Card, 0, len(remaining))
	for i := range remaining {
		if remaining[i].Position != i {
			remaining[i].Position = i
			dirty = append(dirty, &remaining[i])
		}
	}
	if len(dirty) > 0 {
		if err := s.repo.SaveAll(ctx, dirty); err != nil {
			slog.Error("failed to re-index column after delete", "column", card.Column, "error", err)
			return errors.New("failed to delete card")
		}
	}
	return nil
}

func cardToResponse(card *domain.Card) *CardResponse {
	return &CardResponse{
		ID:        card.ID,
		Title:     card.Title,
		Column:    string(card.Column),
		Position:  card.Position,
		CreatedAt: card.CreatedAt.Format(time.RFC3339),
		UpdatedAt: card.UpdatedAt.Format(time.RFC3339),
	}
}
