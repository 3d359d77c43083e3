package world

import "fmt"

// Level is a discrete upgrade level for a single robot stat.
// Levels are bounded 0..5; the stat tables below are total over that range.
type Level int

// MaxLevel is the highest reachable upgrade level
const MaxLevel Level = 5

var (
	healthByLevel      = [MaxLevel + 1]int{10, 25, 50, 100, 200, 500}
	damageByLevel      = [MaxLevel + 1]int{1, 2, 5, 10, 20, 50}
	miningSpeedByLevel = [MaxLevel + 1]int{2, 6, 10, 15, 20, 40}
	energyByLevel      = [MaxLevel + 1]int{20, 30, 40, 60, 100, 200}
	energyRegenByLevel = [MaxLevel + 1]int{4, 6, 8, 10, 15, 20}
	storageByLevel     = [MaxLevel + 1]int{20, 50, 100, 200, 400, 1000}
	upgradeCostByLevel = [MaxLevel + 1]int{0, 50, 100, 200, 500, 1000}
)

// ParseLevel converts an integer into a Level, rejecting out-of-range values
func ParseLevel(value int) (Level, error) {
	l := Level(value)
	if !l.Valid() {
		return 0, fmt.Errorf("level out of range: %d", value)
	}
	return l, nil
}

// Valid reports whether l is within the supported 0..5 range
func (l Level) Valid() bool {
	return l >= 0 && l <= MaxLevel
}

// MaxHealth returns the health ceiling for a health stat at level l
func (l Level) MaxHealth() int {
	return healthByLevel[l]
}

// Damage returns the damage dealt per attack at damage level l
func (l Level) Damage() int {
	return damageByLevel[l]
}

// MiningSpeed returns the units mined per round at mining-speed level l
func (l Level) MiningSpeed() int {
	return miningSpeedByLevel[l]
}

// MaxEnergy returns the energy ceiling at energy level l
func (l Level) MaxEnergy() int {
	return energyByLevel[l]
}

// EnergyRegen returns the energy restored per regeneration at level l
func (l Level) EnergyRegen() int {
	return energyRegenByLevel[l]
}

// MaxStorage returns the inventory capacity at storage level l
func (l Level) MaxStorage() int {
	return storageByLevel[l]
}

// UpgradeCost returns the purchase price of reaching level l
func (l Level) UpgradeCost() int {
	return upgradeCostByLevel[l]
}

// MineableResources returns the resource types a robot with mining level l
// can extract. Each level unlocks one additional resource; levels 4 and 5
// both cover the full set.
func (l Level) MineableResources() []Resource {
	all := Resources()
	unlocked := int(l) + 1
	if unlocked > len(all) {
		unlocked = len(all)
	}
	return all[:unlocked]
}

// CanMine reports whether mining level l unlocks resource r
func (l Level) CanMine(r Resource) bool {
	for _, mineable := range l.MineableResources() {
		if mineable == r {
			return true
		}
	}
	return false
}
