package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mlorenz/robotgame-go/internal/domain/world"
)

// Shop item names understood by BUYING commands
const (
	ItemRobot         = "ROBOT"
	ItemHealthRestore = "HEALTH_RESTORE"
	ItemEnergyRestore = "ENERGY_RESTORE"
)

// Prices for plain items. Upgrade prices come from the level cost table.
const (
	RobotPrice         = 100
	HealthRestorePrice = 50
	EnergyRestorePrice = 75
)

// OrderKind distinguishes the three things a BUYING command can request
type OrderKind int

const (
	OrderRobot OrderKind = iota
	OrderUpgrade
	OrderRestore
)

// Order is a parsed shop order. Exactly one interpretation of the item
// name: a robot purchase, a stat upgrade, or a restore.
type Order struct {
	Kind OrderKind

	// Upgrade fields, set when Kind == OrderUpgrade
	Stat        world.Stat
	TargetLevel world.Level

	// Restore field, set when Kind == OrderRestore
	RestoreStat world.Stat

	unitPrice int
}

// UnitPrice returns the price of a single unit of the order
func (o Order) UnitPrice() int {
	return o.unitPrice
}

// NeedsRobot reports whether the order targets an existing robot
func (o Order) NeedsRobot() bool {
	return o.Kind != OrderRobot
}

// upgradePrefixes maps item-name prefixes to upgradeable stats. MAX_HEALTH
// and MAX_ENERGY raise the ceilings; HEALTH_RESTORE/ENERGY_RESTORE refill
// to the current ceiling without changing levels.
var upgradePrefixes = []struct {
	prefix string
	stat   world.Stat
}{
	{"MAX_HEALTH_", world.StatHealth},
	{"MAX_ENERGY_", world.StatEnergy},
	{"ENERGY_REGEN_", world.StatEnergyRegen},
	{"MINING_SPEED_", world.StatMiningSpeed},
	{"MINING_", world.StatMining},
	{"DAMAGE_", world.StatDamage},
	{"STORAGE_", world.StatStorage},
}

// ParseItem interprets a BUYING item name. Unknown names are an error; the
// buy phase drops such commands with a diagnostic.
func ParseItem(name string) (Order, error) {
	switch name {
	case ItemRobot:
		return Order{Kind: OrderRobot, unitPrice: RobotPrice}, nil
	case ItemHealthRestore:
		return Order{Kind: OrderRestore, RestoreStat: world.StatHealth, unitPrice: HealthRestorePrice}, nil
	case ItemEnergyRestore:
		return Order{Kind: OrderRestore, RestoreStat: world.StatEnergy, unitPrice: EnergyRestorePrice}, nil
	}

	for _, candidate := range upgradePrefixes {
		if !strings.HasPrefix(name, candidate.prefix) {
			continue
		}
		raw := strings.TrimPrefix(name, candidate.prefix)
		value, err := strconv.Atoi(raw)
		if err != nil {
			return Order{}, fmt.Errorf("invalid upgrade level in item name %q", name)
		}
		level, err := world.ParseLevel(value)
		if err != nil {
			return Order{}, fmt.Errorf("item %q: %w", name, err)
		}
		if level == 0 {
			return Order{}, fmt.Errorf("item %q: level 0 cannot be purchased", name)
		}
		return Order{
			Kind:        OrderUpgrade,
			Stat:        candidate.stat,
			TargetLevel: level,
			unitPrice:   level.UpgradeCost(),
		}, nil
	}

	return Order{}, fmt.Errorf("unknown shop item %q", name)
}
