package round

import (
	"context"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/mlorenz/robotgame-go/internal/application/mediator"
	"github.com/mlorenz/robotgame-go/internal/domain/command"
	"github.com/mlorenz/robotgame-go/internal/domain/game"
	"github.com/mlorenz/robotgame-go/internal/domain/shared"
)

// Submission status values returned to the dispatch boundary
const (
	StatusWaiting  = "WAITING_FOR_PLAYERS"
	StatusResolved = "ROUND_RESOLVED"
)

// SubmitCommandsCommand carries one player's command batch for the current
// round of a game
type SubmitCommandsCommand struct {
	GameID     shared.GameID     `validate:"required"`
	PlayerName string            `validate:"required"`
	Commands   []command.Command `validate:"required,min=1"`
}

// SubmitCommandsResponse tells the caller whether the submission is parked
// until the remaining players are ready or triggered a resolution
type SubmitCommandsResponse struct {
	Status        string
	Round         int  // current round after the submission
	ResolvedRound int  // round that was resolved, when Status is ROUND_RESOLVED
	GameEnded     bool // true when the resolution ended the game
}

// SubmitCommandsHandler is the command intake and readiness gate.
//
// The per-game lock serializes the whole read-modify-write cycle: load the
// game record, overwrite the player's queues, evaluate readiness, possibly
// run the resolution pipeline inline, and write the record back once. A
// storage failure inside the critical section is fatal for this request
// (the pre-submission state stays persisted); the lock is still released.
type SubmitCommandsHandler struct {
	games    game.Repository
	lock     game.Lock
	resolver *Resolver
	validate *validator.Validate
}

// NewSubmitCommandsHandler creates the intake handler
func NewSubmitCommandsHandler(games game.Repository, lock game.Lock, resolver *Resolver) *SubmitCommandsHandler {
	return &SubmitCommandsHandler{
		games:    games,
		lock:     lock,
		resolver: resolver,
		validate: validator.New(),
	}
}

// Handle executes the submission:
//  1. Validate the request and every command payload
//  2. Acquire the game's advisory lock
//  3. Load the game record and check it is Started
//  4. Overwrite the player's command queues (stale queues are an error
//     condition: logged and discarded, last write wins)
//  5. Evaluate the readiness gate
//  6. If not ready, persist and acknowledge the wait; if ready, run the
//     pipeline, transition the round and persist the result
func (h *SubmitCommandsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SubmitCommandsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if err := h.validate.Struct(cmd); err != nil {
		return nil, shared.NewValidationError("submission", err.Error())
	}

	batch := make([]command.Command, len(cmd.Commands))
	for i, c := range cmd.Commands {
		c.GameID = cmd.GameID
		c.PlayerName = cmd.PlayerName
		if err := c.Validate(); err != nil {
			return nil, err
		}
		batch[i] = c
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
	if g.Status != game.StatusStarted {
		return nil, shared.NewGameStatusError(string(g.Status), fmt.Sprintf("commands can only be submitted to a %s game", game.StatusStarted))
	}

	state := g.CurrentState()
	player, ok := state.Player(cmd.PlayerName)
	if !ok {
		return nil, shared.NewValidationError("playerName", fmt.Sprintf("player %q has not joined game %s", cmd.PlayerName, cmd.GameID))
	}

	if discarded := player.ReplaceCommands(batch); discarded > 0 {
		log.Printf("[game %s] player %s resubmitted before resolution, discarding %d stale commands", cmd.GameID, cmd.PlayerName, discarded)
	}

	if !roundReady(state) {
		if err := h.games.Save(ctx, g); err != nil {
			return nil, fmt.Errorf("failed to persist submission: %w", err)
		}
		return &SubmitCommandsResponse{Status: StatusWaiting, Round: g.CurrentRound}, nil
	}

	result, err := h.resolver.Resolve(g)
	if err != nil {
		return nil, fmt.Errorf("round resolution failed: %w", err)
	}
	if err := h.games.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to persist resolved round: %w", err)
	}

	return &SubmitCommandsResponse{
		Status:        StatusResolved,
		Round:         result.NewRound,
		ResolvedRound: result.ResolvedRound,
		GameEnded:     result.GameEnded,
	}, nil
}
