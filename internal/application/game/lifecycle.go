package game

import (
	"context"
	"fmt"
	"log"

	"github.com/mlorenz/robotgame-go/internal/application/mediator"
	domain "github.com/mlorenz/robotgame-go/internal/domain/game"
	"github.com/mlorenz/robotgame-go/internal/domain/shared"
)

// StartGameCommand flips a game with at least one player to Started
type StartGameCommand struct {
	GameID shared.GameID
}

// EndGameCommand ends a started game ahead of its round limit
type EndGameCommand struct {
	GameID shared.GameID
}

// DeleteGameCommand removes a game record entirely
type DeleteGameCommand struct {
	GameID shared.GameID
}

// LifecycleHandler serves the start/end/delete game commands. All three
// mutate (or remove) the persisted record and therefore run under the
// game's advisory lock.
type LifecycleHandler struct {
	games domain.Repository
	lock  domain.Lock
}

// NewLifecycleHandler creates the handler
func NewLifecycleHandler(games domain.Repository, lock domain.Lock) *LifecycleHandler {
	return &LifecycleHandler{games: games, lock: lock}
}

// Handle dispatches on the three lifecycle command types
func (h *LifecycleHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch cmd := request.(type) {
	case *StartGameCommand:
		return h.withGame(ctx, cmd.GameID, func(g *domain.Game) error { return g.Start() })
	case *EndGameCommand:
		return h.withGame(ctx, cmd.GameID, func(g *domain.Game) error { return g.End() })
	case *DeleteGameCommand:
		return h.delete(ctx, cmd.GameID)
	default:
		return nil, fmt.Errorf("invalid request type")
	}
}

func (h *LifecycleHandler) withGame(ctx context.Context, id shared.GameID, mutate func(*domain.Game) error) (mediator.Response, error) {
	if err := h.lock.Acquire(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to acquire game lock: %w", err)
	}
	defer func() {
		if err := h.lock.Release(ctx, id); err != nil {
			log.Printf("[game %s] failed to release lock: %v", id, err)
		}
	}()

	g, err := h.games.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(g); err != nil {
		return nil, err
	}
	if err := h.games.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to persist game: %w", err)
	}
	log.Printf("[game %s] status is now %s", g.ID, g.Status)
	return NewGameDTO(g), nil
}

func (h *LifecycleHandler) delete(ctx context.Context, id shared.GameID) (mediator.Response, error) {
	if err := h.lock.Acquire(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to acquire game lock: %w", err)
	}
	defer func() {
		if err := h.lock.Release(ctx, id); err != nil {
			log.Printf("[game %s] failed to release lock: %v", id, err)
		}
	}()

	if err := h.games.Delete(ctx, id); err != nil {
		return nil, err
	}
	log.Printf("[game %s] deleted", id)
	return &GameDTO{ID: id}, nil
}

// ListGamesQuery lists the identifiers of all stored games
type ListGamesQuery struct{}

// ListGamesResponse carries the stored game IDs
type ListGamesResponse struct {
	GameIDs []shared.GameID
}

// ListGamesHandler scans the store for game records
type ListGamesHandler struct {
	games domain.Repository
}

// NewListGamesHandler creates the handler
func NewListGamesHandler(games domain.Repository) *ListGamesHandler {
	return &ListGamesHandler{games: games}
}

// Handle returns all stored game IDs
func (h *ListGamesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListGamesQuery); !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	ids, err := h.games.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return &ListGamesResponse{GameIDs: ids}, nil
}
