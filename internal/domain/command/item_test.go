package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlorenz/robotgame-go/internal/domain/world"
)

func TestParseItem(t *testing.T) {
	t.Run("robot purchase", func(t *testing.T) {
		order, err := ParseItem("ROBOT")
		require.NoError(t, err)
		assert.Equal(t, OrderRobot, order.Kind)
		assert.Equal(t, 100, order.UnitPrice())
		assert.False(t, order.NeedsRobot())
	})

	t.Run("restores", func(t *testing.T) {
		order, err := ParseItem("HEALTH_RESTORE")
		require.NoError(t, err)
		assert.Equal(t, OrderRestore, order.Kind)
		assert.Equal(t, world.StatHealth, order.RestoreStat)
		assert.Equal(t, 50, order.UnitPrice())

		order, err = ParseItem("ENERGY_RESTORE")
		require.NoError(t, err)
		assert.Equal(t, world.StatEnergy, order.RestoreStat)
		assert.Equal(t, 75, order.UnitPrice())
	})

	t.Run("upgrades", func(t *testing.T) {
		tests := []struct {
			item  string
			stat  world.Stat
			level world.Level
			price int
		}{
			{"MAX_HEALTH_1", world.StatHealth, 1, 50},
			{"MAX_ENERGY_3", world.StatEnergy, 3, 200},
			{"ENERGY_REGEN_2", world.StatEnergyRegen, 2, 100},
			{"MINING_SPEED_4", world.StatMiningSpeed, 4, 500},
			{"MINING_1", world.StatMining, 1, 50},
			{"DAMAGE_5", world.StatDamage, 5, 1000},
			{"STORAGE_2", world.StatStorage, 2, 100},
		}
		for _, tt := range tests {
			order, err := ParseItem(tt.item)
			require.NoError(t, err, tt.item)
			assert.Equal(t, OrderUpgrade, order.Kind, tt.item)
			assert.Equal(t, tt.stat, order.Stat, tt.item)
			assert.Equal(t, tt.level, order.TargetLevel, tt.item)
			assert.Equal(t, tt.price, order.UnitPrice(), tt.item)
			assert.True(t, order.NeedsRobot(), tt.item)
		}
	})

	t.Run("rejects level zero and out-of-range levels", func(t *testing.T) {
		_, err := ParseItem("DAMAGE_0")
		assert.Error(t, err)
		_, err = ParseItem("DAMAGE_6")
		assert.Error(t, err)
		_, err = ParseItem("STORAGE_-1")
		assert.Error(t, err)
	})

	t.Run("rejects unknown items", func(t *testing.T) {
		_, err := ParseItem("SHIELD_1")
		assert.Error(t, err)
		_, err = ParseItem("")
		assert.Error(t, err)
		_, err = ParseItem("MAX_HEALTH_x")
		assert.Error(t, err)
	})
}
