package game

import (
	"sort"

	"github.com/mlorenz/robotgame-go/internal/domain/shared"
	"github.com/mlorenz/robotgame-go/internal/domain/world"
)

// RoundState is the complete world and player state at one round number.
// Once recorded in the game's history a RoundState is never mutated; the
// resolution pipeline works on a clone.
type RoundState struct {
	Round   int                     `json:"round"`
	Map     *world.GameMap          `json:"map"`
	Players map[string]*PlayerState `json:"players"`
}

// NewRoundState creates the state for round zero of a fresh world
func NewRoundState(m *world.GameMap) *RoundState {
	return &RoundState{
		Round:   0,
		Map:     m,
		Players: make(map[string]*PlayerState),
	}
}

// Player returns the state of the named player in this round
func (rs *RoundState) Player(name string) (*PlayerState, bool) {
	p, ok := rs.Players[name]
	return p, ok
}

// PlayerNames returns the participating player names in lexicographic
// order. Phases iterate players in this order so resolution stays
// deterministic regardless of map iteration order.
func (rs *RoundState) PlayerNames() []string {
	names := make([]string, 0, len(rs.Players))
	for name := range rs.Players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FindRobot looks a robot up across all players and returns it together
// with its owner's state
func (rs *RoundState) FindRobot(id shared.RobotID) (*world.Robot, *PlayerState, bool) {
	for _, name := range rs.PlayerNames() {
		player := rs.Players[name]
		if robot, ok := player.Robots[id]; ok {
			return robot, player, true
		}
	}
	return nil, nil, false
}

// Clone returns a deep copy of the round state
func (rs *RoundState) Clone() *RoundState {
	players := make(map[string]*PlayerState, len(rs.Players))
	for name, player := range rs.Players {
		players[name] = player.Clone()
	}
	return &RoundState{
		Round:   rs.Round,
		Map:     rs.Map.Clone(),
		Players: players,
	}
}
