package game

import (
	"fmt"

	"github.com/mlorenz/robotgame-go/internal/domain/shared"
	"github.com/mlorenz/robotgame-go/internal/domain/world"
)

// Game is the aggregate persisted per game ID: lifecycle status, the
// participating players and the full round history.
//
// Rounds is an append-only log indexed by round number (round numbers are
// dense integers starting at 0), so Rounds[n] is the authoritative snapshot
// of round n and past entries are never overwritten.
type Game struct {
	ID           shared.GameID `json:"id"`
	Status       Status        `json:"status"`
	MaxRounds    int           `json:"maxRounds"`
	MaxPlayers   int           `json:"maxPlayers"`
	Players      []string      `json:"players"`
	CurrentRound int           `json:"currentRound"`
	Rounds       []*RoundState `json:"rounds"`
}

// NewGame creates a game in Created status with a round-zero snapshot of
// the generated world
func NewGame(id shared.GameID, maxRounds, maxPlayers int, m *world.GameMap) *Game {
	return &Game{
		ID:         id,
		Status:     StatusCreated,
		MaxRounds:  maxRounds,
		MaxPlayers: maxPlayers,
		Rounds:     []*RoundState{NewRoundState(m)},
	}
}

// HasPlayer reports whether the named player has joined
func (g *Game) HasPlayer(name string) bool {
	for _, existing := range g.Players {
		if existing == name {
			return true
		}
	}
	return false
}

// AddPlayer joins a player while the game is still in Created status.
// Names are unique; a name may not join twice.
func (g *Game) AddPlayer(name string, startingMoney int) error {
	if g.Status != StatusCreated {
		return shared.NewGameStatusError(string(g.Status), fmt.Sprintf("players can only join a game in %s status", StatusCreated))
	}
	if name == "" {
		return shared.NewValidationError("playerName", "must not be empty")
	}
	if g.HasPlayer(name) {
		return shared.NewValidationError("playerName", fmt.Sprintf("player %q already joined", name))
	}
	if g.MaxPlayers > 0 && len(g.Players) >= g.MaxPlayers {
		return shared.NewGameStatusError(string(g.Status), fmt.Sprintf("game is full (%d players)", g.MaxPlayers))
	}
	g.Players = append(g.Players, name)
	g.CurrentState().Players[name] = NewPlayerState(name, startingMoney)
	return nil
}

// Start flips the game to Started. At least one player must have joined.
func (g *Game) Start() error {
	if !g.Status.CanTransitionTo(StatusStarted) {
		return shared.NewGameStatusError(string(g.Status), fmt.Sprintf("cannot start a game in %s status", g.Status))
	}
	if len(g.Players) == 0 {
		return shared.NewGameStatusError(string(g.Status), "cannot start a game without players")
	}
	g.Status = StatusStarted
	return nil
}

// End flips the game to Ended. Ended is absorbing.
func (g *Game) End() error {
	if !g.Status.CanTransitionTo(StatusEnded) {
		return shared.NewGameStatusError(string(g.Status), fmt.Sprintf("cannot end a game in %s status", g.Status))
	}
	g.Status = StatusEnded
	return nil
}

// CurrentState returns the snapshot of the current round
func (g *Game) CurrentState() *RoundState {
	return g.Rounds[g.CurrentRound]
}

// StateAt returns the recorded snapshot of a past or current round
func (g *Game) StateAt(round int) (*RoundState, error) {
	if round < 0 || round >= len(g.Rounds) {
		return nil, shared.NewValidationError("round", fmt.Sprintf("round %d not recorded (have 0..%d)", round, len(g.Rounds)-1))
	}
	return g.Rounds[round], nil
}

// AppendRound records the post-resolution snapshot under the next round
// number and advances the round counter. The prior round's entry stays
// untouched under its original number.
func (g *Game) AppendRound(next *RoundState) error {
	if next.Round != g.CurrentRound+1 {
		return fmt.Errorf("round history must stay dense: expected round %d, got %d", g.CurrentRound+1, next.Round)
	}
	g.Rounds = append(g.Rounds, next)
	g.CurrentRound = next.Round
	return nil
}
