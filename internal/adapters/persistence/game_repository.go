package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/mlorenz/robotgame-go/internal/domain/game"
	"github.com/mlorenz/robotgame-go/internal/domain/shared"
)

// GormGameRepository implements game.Repository using GORM. Aggregates are
// read and written whole as JSON documents.
type GormGameRepository struct {
	db *gorm.DB
}

// NewGormGameRepository creates a new GORM game repository
func NewGormGameRepository(db *gorm.DB) *GormGameRepository {
	return &GormGameRepository{db: db}
}

// FindByID retrieves a game by ID
func (r *GormGameRepository) FindByID(ctx context.Context, id shared.GameID) (*domain.Game, error) {
	if id.IsZero() {
		return nil, shared.NewGameNotFoundError(id)
	}

	var model GameRecordModel
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewGameNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to find game: %w", result.Error)
	}

	var g domain.Game
	if err := json.Unmarshal([]byte(model.Document), &g); err != nil {
		return nil, fmt.Errorf("failed to decode game document %s: %w", id, err)
	}
	return &g, nil
}

// Save persists a game, creating or replacing its document
func (r *GormGameRepository) Save(ctx context.Context, g *domain.Game) error {
	document, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to encode game document: %w", err)
	}

	model := &GameRecordModel{
		ID:       g.ID.String(),
		Document: string(document),
	}
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save game: %w", result.Error)
	}
	return nil
}

// Delete removes a game record
func (r *GormGameRepository) Delete(ctx context.Context, id shared.GameID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&GameRecordModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete game: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewGameNotFoundError(id)
	}
	return nil
}

// ListIDs returns the IDs of all stored games
func (r *GormGameRepository) ListIDs(ctx context.Context) ([]shared.GameID, error) {
	var raw []string
	result := r.db.WithContext(ctx).Model(&GameRecordModel{}).Order("id").Pluck("id", &raw)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list games: %w", result.Error)
	}
	ids := make([]shared.GameID, len(raw))
	for i, id := range raw {
		ids[i] = shared.GameID(id)
	}
	return ids, nil
}
