package game

import (
	"context"
	"fmt"
	"log"

	"github.com/mlorenz/robotgame-go/internal/application/mediator"
	domain "github.com/mlorenz/robotgame-go/internal/domain/game"
	"github.com/mlorenz/robotgame-go/internal/domain/shared"
)

// JoinGameCommand adds a player to a game that has not started yet
type JoinGameCommand struct {
	GameID     shared.GameID
	PlayerName string
}

// JoinGameResponse acknowledges the join
type JoinGameResponse struct {
	GameID     shared.GameID
	PlayerName string
	Players    []string
}

// JoinGameHandler joins a player under the game's advisory lock so two
// concurrent joins cannot lose each other's write
type JoinGameHandler struct {
	games    domain.Repository
	lock     domain.Lock
	defaults Defaults
}

// NewJoinGameHandler creates the handler
func NewJoinGameHandler(games domain.Repository, lock domain.Lock, defaults Defaults) *JoinGameHandler {
	return &JoinGameHandler{games: games, lock: lock, defaults: defaults}
}

// Handle loads the game, adds the player and writes the record back
func (h *JoinGameHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*JoinGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	if err := h.lock.Acquire(ctx, cmd.GameID); err != nil {
		return nil, fmt.Errorf("failed to acquire game lock: %w", err)
	}
	defer func() {
		if err := h.lock.Release(ctx, cmd.GameID); err != nil {
			log.Printf("[game %s] failed to release lock: %v", cmd.GameID, err)
		}
	}()

	g, err := h.games.FindByID(ctx, cmd.GameID)
	if err != nil {
		return nil, err
	}
	if err := g.AddPlayer(cmd.PlayerName, h.defaults.StartingMoney); err != nil {
		return nil, err
	}
	if err := h.games.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to persist join: %w", err)
	}

	log.Printf("[game %s] player %s joined (%d players)", g.ID, cmd.PlayerName, len(g.Players))
	return &JoinGameResponse{GameID: g.ID, PlayerName: cmd.PlayerName, Players: append([]string(nil), g.Players...)}, nil
}
