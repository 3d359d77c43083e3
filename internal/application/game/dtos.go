package game

import (
	domain "github.com/mlorenz/robotgame-go/internal/domain/game"
	"github.com/mlorenz/robotgame-go/internal/domain/shared"
	"github.com/mlorenz/robotgame-go/internal/domain/world"
)

// GameDTO is the boundary representation of a game's header data
type GameDTO struct {
	ID           shared.GameID `json:"id"`
	Status       string        `json:"status"`
	MaxRounds    int           `json:"maxRounds"`
	MaxPlayers   int           `json:"maxPlayers"`
	Players      []string      `json:"players"`
	CurrentRound int           `json:"currentRound"`
}

// NewGameDTO maps the aggregate header to its DTO
func NewGameDTO(g *domain.Game) *GameDTO {
	players := append([]string(nil), g.Players...)
	return &GameDTO{
		ID:           g.ID,
		Status:       string(g.Status),
		MaxRounds:    g.MaxRounds,
		MaxPlayers:   g.MaxPlayers,
		Players:      players,
		CurrentRound: g.CurrentRound,
	}
}

// PlanetDTO is one planet as seen by a caller. Unknown planets (outside
// the requesting player's visited set) carry only their ID and the unknown
// marker; they are rendered, not omitted.
type PlanetDTO struct {
	ID                 shared.PlanetID                     `json:"id"`
	Unknown            bool                                `json:"unknown,omitempty"`
	MovementDifficulty int                                 `json:"movementDifficulty,omitempty"`
	Resource           *world.Deposit                      `json:"resource,omitempty"`
	Neighbours         map[world.Direction]shared.PlanetID `json:"neighbours,omitempty"`
	Coordinate         *world.Coordinate                   `json:"coordinate,omitempty"`
}

// MapDTO is a round's planet graph, possibly fog-filtered
type MapDTO struct {
	GameID  shared.GameID `json:"gameId"`
	Round   int           `json:"round"`
	Planets []PlanetDTO   `json:"planets"`
}

// RobotDTO is one robot's full state, exposed only to its owner
type RobotDTO struct {
	ID        shared.RobotID         `json:"id"`
	Planet    shared.PlanetID        `json:"planetId"`
	Health    int                    `json:"health"`
	Energy    int                    `json:"energy"`
	Levels    world.StatLevels       `json:"levels"`
	Inventory map[world.Resource]int `json:"inventory"`
	MoneyMade int                    `json:"moneyMade"`
}

func newRobotDTO(r *world.Robot) RobotDTO {
	inventory := make(map[world.Resource]int, len(r.Inventory))
	for resource, amount := range r.Inventory {
		inventory[resource] = amount
	}
	return RobotDTO{
		ID:        r.ID,
		Planet:    r.Planet,
		Health:    r.Health,
		Energy:    r.Energy,
		Levels:    r.Levels,
		Inventory: inventory,
		MoneyMade: r.MoneyMade,
	}
}

// EnemyRobotDTO is a sighted enemy robot: position and visible condition,
// without inventory or earnings
type EnemyRobotDTO struct {
	ID     shared.RobotID  `json:"id"`
	Owner  string          `json:"owner"`
	Planet shared.PlanetID `json:"planetId"`
	Health int             `json:"health"`
	Alive  bool            `json:"alive"`
}

// KillDTO is one kill record from the requesting player's perspective
type KillDTO struct {
	AttackerRobot shared.RobotID `json:"attackerRobotId"`
	VictimPlayer  string         `json:"victimPlayer"`
	VictimRobot   shared.RobotID `json:"victimRobotId"`
}

// PlayerViewDTO is the ownership-filtered view of one player's round state
type PlayerViewDTO struct {
	GameID         shared.GameID   `json:"gameId"`
	Round          int             `json:"round"`
	Name           string          `json:"name"`
	Money          int             `json:"money"`
	TotalMoneyMade int             `json:"totalMoneyMade"`
	AliveRobots    []RobotDTO      `json:"aliveRobots"`
	DeadRobots     []RobotDTO      `json:"deadRobots"`
	Kills          []KillDTO       `json:"kills"`
	KnownEnemies   []EnemyRobotDTO `json:"knownEnemies"`
}
