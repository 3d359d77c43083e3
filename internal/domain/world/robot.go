package world

import (
	"fmt"

	"github.com/mlorenz/robotgame-go/internal/domain/shared"
)

// Stat names a single upgradeable robot attribute
type Stat string

const (
	StatHealth      Stat = "HEALTH"
	StatDamage      Stat = "DAMAGE"
	StatMining      Stat = "MINING"
	StatMiningSpeed Stat = "MINING_SPEED"
	StatEnergy      Stat = "ENERGY"
	StatEnergyRegen Stat = "ENERGY_REGEN"
	StatStorage     Stat = "STORAGE"
)

// StatLevels holds the per-stat upgrade levels of a robot.
// Each stat levels up independently.
type StatLevels struct {
	Health      Level `json:"healthLevel"`
	Damage      Level `json:"damageLevel"`
	Mining      Level `json:"miningLevel"`
	MiningSpeed Level `json:"miningSpeedLevel"`
	Energy      Level `json:"energyLevel"`
	EnergyRegen Level `json:"energyRegenLevel"`
	Storage     Level `json:"storageLevel"`
}

// Get returns the level of the named stat
func (l StatLevels) Get(stat Stat) (Level, error) {
	switch stat {
	case StatHealth:
		return l.Health, nil
	case StatDamage:
		return l.Damage, nil
	case StatMining:
		return l.Mining, nil
	case StatMiningSpeed:
		return l.MiningSpeed, nil
	case StatEnergy:
		return l.Energy, nil
	case StatEnergyRegen:
		return l.EnergyRegen, nil
	case StatStorage:
		return l.Storage, nil
	default:
		return 0, fmt.Errorf("unknown stat: %s", stat)
	}
}

// Robot is a player-owned unit on the planet graph.
// Health and energy never exceed the ceilings implied by their levels.
// A robot with health 0 is dead: it stays addressable for inspection but is
// excluded from movement, mining, selling, attacking and regeneration.
type Robot struct {
	ID        shared.RobotID   `json:"id"`
	Planet    shared.PlanetID  `json:"planetId"`
	Health    int              `json:"health"`
	Energy    int              `json:"energy"`
	Levels    StatLevels       `json:"levels"`
	Inventory map[Resource]int `json:"inventory"`
	MoneyMade int              `json:"moneyMade"`
}

// NewRobot creates a level-0 robot at full health and energy on the given planet
func NewRobot(id shared.RobotID, planet shared.PlanetID) *Robot {
	levels := StatLevels{}
	return &Robot{
		ID:        id,
		Planet:    planet,
		Health:    levels.Health.MaxHealth(),
		Energy:    levels.Energy.MaxEnergy(),
		Levels:    levels,
		Inventory: make(map[Resource]int),
	}
}

// IsAlive reports whether the robot can still act
func (r *Robot) IsAlive() bool {
	return r.Health > 0
}

// TakeDamage reduces health, flooring at 0
func (r *Robot) TakeDamage(amount int) {
	if amount >= r.Health {
		r.Health = 0
		return
	}
	r.Health -= amount
}

// DrainEnergy debits energy, flooring at 0
func (r *Robot) DrainEnergy(amount int) {
	if amount >= r.Energy {
		r.Energy = 0
		return
	}
	r.Energy -= amount
}

// Regenerate restores energy by the regen amount for the robot's level,
// capped at the level's energy ceiling. Dead robots cannot regenerate.
func (r *Robot) Regenerate() error {
	if !r.IsAlive() {
		return shared.NewCommandRejectedError("robot %s is dead and cannot regenerate", r.ID)
	}
	max := r.Levels.Energy.MaxEnergy()
	r.Energy += r.Levels.EnergyRegen.EnergyRegen()
	if r.Energy > max {
		r.Energy = max
	}
	return nil
}

// MoveTo relocates the robot to a neighbor planet, debiting the movement
// difficulty of the planet it leaves from. The caller is responsible for
// the adjacency check.
func (r *Robot) MoveTo(target shared.PlanetID, difficulty int) error {
	if !r.IsAlive() {
		return shared.NewCommandRejectedError("robot %s is dead and cannot move", r.ID)
	}
	if r.Energy < difficulty {
		return shared.NewCommandRejectedError("robot %s has %d energy but needs %d to move", r.ID, r.Energy, difficulty)
	}
	r.Energy -= difficulty
	r.Planet = target
	return nil
}

// UsedStorage returns the number of resource units currently held
func (r *Robot) UsedStorage() int {
	used := 0
	for _, amount := range r.Inventory {
		used += amount
	}
	return used
}

// FreeStorage returns the remaining inventory capacity
func (r *Robot) FreeStorage() int {
	free := r.Levels.Storage.MaxStorage() - r.UsedStorage()
	if free < 0 {
		return 0
	}
	return free
}

// InventoryFull reports whether the robot has no storage space left
func (r *Robot) InventoryFull() bool {
	return r.FreeStorage() == 0
}

// InventoryEmpty reports whether the robot holds nothing
func (r *Robot) InventoryEmpty() bool {
	return r.UsedStorage() == 0
}

// AddToInventory stores mined resources on the robot
func (r *Robot) AddToInventory(resource Resource, amount int) {
	if amount <= 0 {
		return
	}
	if r.Inventory == nil {
		r.Inventory = make(map[Resource]int)
	}
	r.Inventory[resource] += amount
}

// InventoryValue returns the total sale value of the robot's inventory
func (r *Robot) InventoryValue() int {
	value := 0
	for resource, amount := range r.Inventory {
		value += resource.UnitPrice() * amount
	}
	return value
}

// ClearInventory empties the robot's inventory after a sale
func (r *Robot) ClearInventory() {
	r.Inventory = make(map[Resource]int)
}

// Upgrade raises the named stat to the target level. Levels are strictly
// monotonic: a target at or below the current level is rejected.
func (r *Robot) Upgrade(stat Stat, target Level) error {
	if !target.Valid() {
		return shared.NewCommandRejectedError("invalid upgrade level %d for robot %s", target, r.ID)
	}
	current, err := r.Levels.Get(stat)
	if err != nil {
		return shared.NewCommandRejectedError("robot %s: %v", r.ID, err)
	}
	if target <= current {
		return shared.NewCommandRejectedError("robot %s already has %s level %d, cannot set %d", r.ID, stat, current, target)
	}
	switch stat {
	case StatHealth:
		r.Levels.Health = target
	case StatDamage:
		r.Levels.Damage = target
	case StatMining:
		r.Levels.Mining = target
	case StatMiningSpeed:
		r.Levels.MiningSpeed = target
	case StatEnergy:
		r.Levels.Energy = target
	case StatEnergyRegen:
		r.Levels.EnergyRegen = target
	case StatStorage:
		r.Levels.Storage = target
	}
	return nil
}

// RestoreHealth refills health to the current level ceiling
func (r *Robot) RestoreHealth() {
	r.Health = r.Levels.Health.MaxHealth()
}

// RestoreEnergy refills energy to the current level ceiling
func (r *Robot) RestoreEnergy() {
	r.Energy = r.Levels.Energy.MaxEnergy()
}

// Clone returns a deep copy of the robot
func (r *Robot) Clone() *Robot {
	inventory := make(map[Resource]int, len(r.Inventory))
	for resource, amount := range r.Inventory {
		inventory[resource] = amount
	}
	clone := *r
	clone.Inventory = inventory
	return &clone
}
