package game

import (
	"context"
	"fmt"
	"log"

	"github.com/mlorenz/robotgame-go/internal/application/mediator"
	domain "github.com/mlorenz/robotgame-go/internal/domain/game"
	"github.com/mlorenz/robotgame-go/internal/domain/shared"
)

// CreateGameCommand requests a fresh game with a newly generated world.
// Zero values fall back to the configured defaults.
type CreateGameCommand struct {
	MapSize    int
	MaxRounds  int
	MaxPlayers int
}

// CreateGameResponse returns the identifier of the created game
type CreateGameResponse struct {
	GameID shared.GameID
}

// Defaults carries the configured fallbacks for game creation and joining
type Defaults struct {
	MapSize       int
	MaxRounds     int
	MaxPlayers    int
	StartingMoney int
}

// CreateGameHandler creates a game record from a generated world snapshot.
// No lock is needed: the fresh ID cannot be contended.
type CreateGameHandler struct {
	games    domain.Repository
	worlds   domain.WorldProvider
	defaults Defaults
}

// NewCreateGameHandler creates the handler
func NewCreateGameHandler(games domain.Repository, worlds domain.WorldProvider, defaults Defaults) *CreateGameHandler {
	return &CreateGameHandler{games: games, worlds: worlds, defaults: defaults}
}

// Handle generates the world, builds the aggregate and persists it
func (h *CreateGameHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	size := cmd.MapSize
	if size <= 0 {
		size = h.defaults.MapSize
	}
	maxRounds := cmd.MaxRounds
	if maxRounds <= 0 {
		maxRounds = h.defaults.MaxRounds
	}
	maxPlayers := cmd.MaxPlayers
	if maxPlayers <= 0 {
		maxPlayers = h.defaults.MaxPlayers
	}

	gameMap, err := h.worlds.NewWorld(size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate world: %w", err)
	}

	g := domain.NewGame(shared.NewGameID(), maxRounds, maxPlayers, gameMap)
	if err := h.games.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to persist new game: %w", err)
	}

	log.Printf("[game %s] created (map size %d, max rounds %d, max players %d)", g.ID, size, maxRounds, maxPlayers)
	return &CreateGameResponse{GameID: g.ID}, nil
}
