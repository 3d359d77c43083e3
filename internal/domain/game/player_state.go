package game

import (
	"sort"

	"github.com/mlorenz/robotgame-go/internal/domain/command"
	"github.com/mlorenz/robotgame-go/internal/domain/shared"
	"github.com/mlorenz/robotgame-go/internal/domain/world"
)

// KillRecord notes an enemy robot destroyed by one of this player's robots
type KillRecord struct {
	VictimPlayer string       `json:"victimPlayer"`
	VictimRobot  *world.Robot `json:"victimRobot"`
}

// PlayerState is one player's state within a single round.
// VisitedPlanets only ever grows; it is the fog-of-war memory.
// KilledRobots is keyed by the attacking robot's ID; a single robot can
// accumulate several kills across a round.
type PlayerState struct {
	Name           string                             `json:"name"`
	Money          int                                `json:"money"`
	TotalMoneyMade int                                `json:"totalMoneyMade"`
	VisitedPlanets map[shared.PlanetID]bool           `json:"visitedPlanets"`
	Commands       map[command.Type][]command.Command `json:"commands"`
	Robots         map[shared.RobotID]*world.Robot    `json:"robots"`
	KilledRobots   map[shared.RobotID][]KillRecord    `json:"killedRobots"`
}

// NewPlayerState creates a player with starting money, no robots and no
// visited planets
func NewPlayerState(name string, startingMoney int) *PlayerState {
	return &PlayerState{
		Name:           name,
		Money:          startingMoney,
		VisitedPlanets: make(map[shared.PlanetID]bool),
		Commands:       make(map[command.Type][]command.Command),
		Robots:         make(map[shared.RobotID]*world.Robot),
		KilledRobots:   make(map[shared.RobotID][]KillRecord),
	}
}

// HasQueuedCommands reports whether any per-type queue is non-empty
func (p *PlayerState) HasQueuedCommands() bool {
	for _, queue := range p.Commands {
		if len(queue) > 0 {
			return true
		}
	}
	return false
}

// ReplaceCommands discards any stale queues and enqueues the new batch,
// each command into the queue of its own type. It returns the number of
// stale commands discarded so the caller can log the overwrite.
func (p *PlayerState) ReplaceCommands(batch []command.Command) int {
	discarded := 0
	for _, queue := range p.Commands {
		discarded += len(queue)
	}
	p.Commands = make(map[command.Type][]command.Command)
	for _, cmd := range batch {
		p.Commands[cmd.Type] = append(p.Commands[cmd.Type], cmd)
	}
	return discarded
}

// TakeCommands drains and returns the queue for one command type
func (p *PlayerState) TakeCommands(t command.Type) []command.Command {
	queue := p.Commands[t]
	delete(p.Commands, t)
	return queue
}

// PurgeCommandsForRobot removes queued commands of the given types that
// reference the robot. Used to stop dead robots from acting in later phases.
func (p *PlayerState) PurgeCommandsForRobot(robotID shared.RobotID, types ...command.Type) int {
	purged := 0
	for _, t := range types {
		queue := p.Commands[t]
		if len(queue) == 0 {
			continue
		}
		kept := queue[:0]
		for _, cmd := range queue {
			if id, ok := cmd.RobotID(); ok && id == robotID {
				purged++
				continue
			}
			kept = append(kept, cmd)
		}
		p.Commands[t] = kept
	}
	return purged
}

// RobotByID returns the player's robot with the given ID
func (p *PlayerState) RobotByID(id shared.RobotID) (*world.Robot, bool) {
	r, ok := p.Robots[id]
	return r, ok
}

// AddRobot registers a newly purchased robot
func (p *PlayerState) AddRobot(r *world.Robot) {
	p.Robots[r.ID] = r
}

// RobotIDs returns the player's robot IDs in lexicographic order
func (p *PlayerState) RobotIDs() []shared.RobotID {
	ids := make([]shared.RobotID, 0, len(p.Robots))
	for id := range p.Robots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AliveRobotCount returns the number of robots that can still act
func (p *PlayerState) AliveRobotCount() int {
	alive := 0
	for _, r := range p.Robots {
		if r.IsAlive() {
			alive++
		}
	}
	return alive
}

// Visit marks a planet as visited and reports whether this was a discovery
// (first visit). The visited set never shrinks.
func (p *PlayerState) Visit(planet shared.PlanetID) bool {
	if p.VisitedPlanets[planet] {
		return false
	}
	p.VisitedPlanets[planet] = true
	return true
}

// HasVisited reports whether the player has ever been on the planet
func (p *PlayerState) HasVisited(planet shared.PlanetID) bool {
	return p.VisitedPlanets[planet]
}

// Credit adds sale proceeds to the player's money and lifetime earnings
func (p *PlayerState) Credit(amount int) {
	p.Money += amount
	p.TotalMoneyMade += amount
}

// Debit spends money; the caller must have checked the balance
func (p *PlayerState) Debit(amount int) {
	p.Money -= amount
}

// RecordKill appends a kill record for the attacking robot
func (p *PlayerState) RecordKill(attacker shared.RobotID, victimPlayer string, victim *world.Robot) {
	p.KilledRobots[attacker] = append(p.KilledRobots[attacker], KillRecord{
		VictimPlayer: victimPlayer,
		VictimRobot:  victim,
	})
}

// Clone returns a deep copy of the player state
func (p *PlayerState) Clone() *PlayerState {
	visited := make(map[shared.PlanetID]bool, len(p.VisitedPlanets))
	for id, v := range p.VisitedPlanets {
		visited[id] = v
	}
	commands := make(map[command.Type][]command.Command, len(p.Commands))
	for t, queue := range p.Commands {
		commands[t] = append([]command.Command(nil), queue...)
	}
	robots := make(map[shared.RobotID]*world.Robot, len(p.Robots))
	for id, r := range p.Robots {
		robots[id] = r.Clone()
	}
	kills := make(map[shared.RobotID][]KillRecord, len(p.KilledRobots))
	for id, records := range p.KilledRobots {
		cloned := make([]KillRecord, len(records))
		for i, record := range records {
			cloned[i] = KillRecord{
				VictimPlayer: record.VictimPlayer,
				VictimRobot:  record.VictimRobot.Clone(),
			}
		}
		kills[id] = cloned
	}
	return &PlayerState{
		Name:           p.Name,
		Money:          p.Money,
		TotalMoneyMade: p.TotalMoneyMade,
		VisitedPlanets: visited,
		Commands:       commands,
		Robots:         robots,
		KilledRobots:   kills,
	}
}
