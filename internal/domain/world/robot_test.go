package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlorenz/robotgame-go/internal/domain/shared"
)

func TestNewRobot(t *testing.T) {
	r := NewRobot(shared.NewRobotID(), "planet-1")

	assert.Equal(t, 10, r.Health)
	assert.Equal(t, 20, r.Energy)
	assert.True(t, r.IsAlive())
	assert.True(t, r.InventoryEmpty())
	assert.Equal(t, shared.PlanetID("planet-1"), r.Planet)
}

func TestRobot_TakeDamage(t *testing.T) {
	r := NewRobot(shared.NewRobotID(), "p")

	r.TakeDamage(4)
	assert.Equal(t, 6, r.Health)

	// Overkill floors at zero
	r.TakeDamage(100)
	assert.Equal(t, 0, r.Health)
	assert.False(t, r.IsAlive())
}

func TestRobot_DrainEnergy(t *testing.T) {
	r := NewRobot(shared.NewRobotID(), "p")

	r.DrainEnergy(15)
	assert.Equal(t, 5, r.Energy)

	r.DrainEnergy(50)
	assert.Equal(t, 0, r.Energy)
}

func TestRobot_Regenerate(t *testing.T) {
	r := NewRobot(shared.NewRobotID(), "p")
	r.Energy = 10

	require.NoError(t, r.Regenerate())
	assert.Equal(t, 14, r.Energy)

	// Capped at the level ceiling
	r.Energy = 19
	require.NoError(t, r.Regenerate())
	assert.Equal(t, 20, r.Energy)

	// Dead robots cannot regenerate
	r.Health = 0
	err := r.Regenerate()
	require.Error(t, err)
	assert.True(t, shared.IsRecoverable(err))
}

func TestRobot_MoveTo(t *testing.T) {
	r := NewRobot(shared.NewRobotID(), "from")

	require.NoError(t, r.MoveTo("to", 3))
	assert.Equal(t, shared.PlanetID("to"), r.Planet)
	assert.Equal(t, 17, r.Energy)

	r.Energy = 2
	err := r.MoveTo("elsewhere", 3)
	require.Error(t, err)
	assert.Equal(t, shared.PlanetID("to"), r.Planet)
	assert.Equal(t, 2, r.Energy)

	r.Health = 0
	assert.Error(t, r.MoveTo("to", 0))
}

func TestRobot_Inventory(t *testing.T) {
	r := NewRobot(shared.NewRobotID(), "p")

	r.AddToInventory(ResourceCoal, 6)
	r.AddToInventory(ResourceIron, 2)
	assert.Equal(t, 8, r.UsedStorage())
	assert.Equal(t, 12, r.FreeStorage())
	assert.Equal(t, 6*5+2*15, r.InventoryValue())

	r.AddToInventory(ResourceCoal, 12)
	assert.True(t, r.InventoryFull())

	r.ClearInventory()
	assert.True(t, r.InventoryEmpty())
	assert.Equal(t, 0, r.InventoryValue())
}

func TestRobot_Upgrade(t *testing.T) {
	r := NewRobot(shared.NewRobotID(), "p")

	require.NoError(t, r.Upgrade(StatDamage, 2))
	assert.Equal(t, Level(2), r.Levels.Damage)

	// Levels are strictly monotonic
	err := r.Upgrade(StatDamage, 2)
	require.Error(t, err)
	assert.True(t, shared.IsRecoverable(err))
	assert.Error(t, r.Upgrade(StatDamage, 1))

	// Skipping levels is allowed
	require.NoError(t, r.Upgrade(StatDamage, 5))

	// Raising the health ceiling does not heal
	require.NoError(t, r.Upgrade(StatHealth, 1))
	assert.Equal(t, 10, r.Health)
	r.RestoreHealth()
	assert.Equal(t, 25, r.Health)
}

func TestRobot_RestoreEnergy(t *testing.T) {
	r := NewRobot(shared.NewRobotID(), "p")
	require.NoError(t, r.Upgrade(StatEnergy, 1))
	r.Energy = 3

	r.RestoreEnergy()
	assert.Equal(t, 30, r.Energy)
}

func TestRobot_Clone(t *testing.T) {
	r := NewRobot(shared.NewRobotID(), "p")
	r.AddToInventory(ResourceCoal, 5)

	clone := r.Clone()
	clone.AddToInventory(ResourceCoal, 5)
	clone.TakeDamage(3)

	assert.Equal(t, 5, r.Inventory[ResourceCoal])
	assert.Equal(t, 10, r.Health)
}
