package game

import (
	"context"
	"fmt"
	"sort"

	"github.com/mlorenz/robotgame-go/internal/application/mediator"
	domain "github.com/mlorenz/robotgame-go/internal/domain/game"
	"github.com/mlorenz/robotgame-go/internal/domain/shared"
)

// GetPlayerViewQuery reads one player's slice of a round: their robots,
// balance, kill records and the enemy robots their units can currently
// see. Round defaults to the current round when negative.
type GetPlayerViewQuery struct {
	GameID      shared.GameID
	PlayerName  string
	Round       int // -1 selects the current round
	IncludeDead bool
}

// GetPlayerViewHandler builds the ownership-filtered projection. Enemy
// robots are included only when they share a planet with one of the
// player's alive robots; dead enemies are hidden unless asked for.
type GetPlayerViewHandler struct {
	games domain.Repository
}

// NewGetPlayerViewHandler creates the handler
func NewGetPlayerViewHandler(games domain.Repository) *GetPlayerViewHandler {
	return &GetPlayerViewHandler{games: games}
}

// Handle loads the round snapshot and projects the player's view
func (h *GetPlayerViewHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetPlayerViewQuery)
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

	player, ok := state.Player(query.PlayerName)
	if !ok {
		return nil, shared.NewValidationError("playerName", fmt.Sprintf("player %q has not joined game %s", query.PlayerName, query.GameID))
	}

	view := &PlayerViewDTO{
		GameID:         g.ID,
		Round:          state.Round,
		Name:           player.Name,
		Money:          player.Money,
		TotalMoneyMade: player.TotalMoneyMade,
	}

	occupied := make(map[shared.PlanetID]bool)
	for _, id := range player.RobotIDs() {
		robot := player.Robots[id]
		if robot.IsAlive() {
			view.AliveRobots = append(view.AliveRobots, newRobotDTO(robot))
			occupied[robot.Planet] = true
		} else {
			view.DeadRobots = append(view.DeadRobots, newRobotDTO(robot))
		}
	}

	for _, attackerID := range sortRobotIDs(player.KilledRobots) {
		for _, record := range player.KilledRobots[attackerID] {
			view.Kills = append(view.Kills, KillDTO{
				AttackerRobot: attackerID,
				VictimPlayer:  record.VictimPlayer,
				VictimRobot:   record.VictimRobot.ID,
			})
		}
	}

	for _, name := range state.PlayerNames() {
		if name == player.Name {
			continue
		}
		enemy, _ := state.Player(name)
		for _, id := range enemy.RobotIDs() {
			robot := enemy.Robots[id]
			if !occupied[robot.Planet] {
				continue
			}
			if !robot.IsAlive() && !query.IncludeDead {
				continue
			}
			view.KnownEnemies = append(view.KnownEnemies, EnemyRobotDTO{
				ID:     robot.ID,
				Owner:  name,
				Planet: robot.Planet,
				Health: robot.Health,
				Alive:  robot.IsAlive(),
			})
		}
	}

	return view, nil
}

func sortRobotIDs(records map[shared.RobotID][]domain.KillRecord) []shared.RobotID {
	ids := make([]shared.RobotID, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
