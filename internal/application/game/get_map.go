package game

import (
	"context"
	"fmt"

	"github.com/mlorenz/robotgame-go/internal/application/mediator"
	domain "github.com/mlorenz/robotgame-go/internal/domain/game"
	"github.com/mlorenz/robotgame-go/internal/domain/shared"
)

// GetMapQuery reads a round's planet graph. Round defaults to the current
// round when negative. When PlayerName is set the result is fog-filtered
// to that player's visited set; unvisited planets render as unknown
// placeholders rather than being omitted.
type GetMapQuery struct {
	GameID     shared.GameID
	Round      int // -1 selects the current round
	PlayerName string
}

// GetMapHandler is the read-only fog-of-war projection over a recorded
// round state. It never mutates the game.
type GetMapHandler struct {
	games domain.Repository
}

// NewGetMapHandler creates the handler
func NewGetMapHandler(games domain.Repository) *GetMapHandler {
	return &GetMapHandler{games: games}
}

// Handle loads the round snapshot and projects it for the caller
func (h *GetMapHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetMapQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	g, err := h.games.FindByID(ctx, query.GameID)
	if err != nil {
		return nil, err
	}

	round := query.Round
	if round < 0 {
		round = g.CurrentRound
	}
	state, err := g.StateAt(round)
	if err != nil {
		return nil, err
	}

	var visited func(shared.PlanetID) bool
	if query.PlayerName != "" {
		player, ok := state.Player(query.PlayerName)
		if !ok {
			return nil, shared.NewValidationError("playerName", fmt.Sprintf("player %q has not joined game %s", query.PlayerName, query.GameID))
		}
		visited = player.HasVisited
	}

	dto := &MapDTO{GameID: g.ID, Round: state.Round}
	for _, id := range state.Map.PlanetIDs() {
		planet, _ := state.Map.PlanetByID(id)
		if visited != nil && !visited(id) {
			dto.Planets = append(dto.Planets, PlanetDTO{ID: id, Unknown: true})
			continue
		}
		planetDTO := PlanetDTO{
			ID:                 planet.ID,
			MovementDifficulty: planet.MovementDifficulty,
			Neighbours:         planet.Neighbours,
		}
		if planet.Deposit != nil {
			deposit := *planet.Deposit
			planetDTO.Resource = &deposit
		}
		if coordinate, ok := state.Map.CoordinateOf(id); ok {
			planetDTO.Coordinate = &coordinate
		}
		dto.Planets = append(dto.Planets, planetDTO)
	}
	return dto, nil
}
