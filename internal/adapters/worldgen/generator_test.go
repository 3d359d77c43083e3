package worldgen

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlorenz/robotgame-go/internal/domain/world"
)

func TestDifficultyAt(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		x, y     int
		expected int
	}{
		{"corner of 7x7 is outer ring", 7, 0, 0, 1},
		{"edge of 7x7 is outer ring", 7, 3, 0, 1},
		{"one step in on 7x7 is middle ring", 7, 1, 1, 2},
		{"center of 7x7 is inner core", 7, 3, 3, 3},
		{"corner of 13x13 is outer ring", 13, 0, 0, 1},
		{"one step in on 13x13 is still outer", 13, 1, 1, 1},
		{"two steps in on 13x13 is middle ring", 13, 2, 2, 2},
		{"three steps in on 13x13 is middle ring", 13, 3, 3, 2},
		{"four steps in on 13x13 is inner core", 13, 4, 4, 3},
		{"center of 13x13 is inner core", 13, 6, 6, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DifficultyAt(tt.size, tt.x, tt.y))
		})
	}
}

func TestGenerator_NewWorld(t *testing.T) {
	t.Run("rejects undersized maps", func(t *testing.T) {
		_, err := NewSeededGenerator(1).NewWorld(2)
		require.Error(t, err)
	})

	t.Run("punches size holes into the grid", func(t *testing.T) {
		size := 10
		m, err := NewSeededGenerator(42).NewWorld(size)
		require.NoError(t, err)

		assert.Len(t, m.Planets, size*size-size)
		assert.Len(t, m.Index, size*size-size)
	})

	t.Run("neighbor edges are symmetric and only reference surviving planets", func(t *testing.T) {
		m, err := NewSeededGenerator(7).NewWorld(8)
		require.NoError(t, err)

		for _, planet := range m.Planets {
			for direction, neighbourID := range planet.Neighbours {
				neighbour, ok := m.PlanetByID(neighbourID)
				require.True(t, ok, "edge points at removed planet")
				assert.Equal(t, planet.ID, neighbour.Neighbours[direction.Opposite()])
			}
		}
	})

	t.Run("deposits carry the full initial stock of a known resource", func(t *testing.T) {
		m, err := NewSeededGenerator(3).NewWorld(12)
		require.NoError(t, err)

		withDeposit := 0
		for _, planet := range m.Planets {
			if planet.Deposit == nil {
				continue
			}
			withDeposit++
			assert.True(t, planet.Deposit.Resource.Valid())
			assert.Equal(t, DepositAmount, planet.Deposit.Amount)
		}
		assert.Greater(t, withDeposit, 0)
	})

	t.Run("difficulty follows the ring banding", func(t *testing.T) {
		size := 9
		m, err := NewSeededGenerator(11).NewWorld(size)
		require.NoError(t, err)

		for id, planet := range m.Planets {
			coordinate, ok := m.CoordinateOf(id)
			require.True(t, ok)
			assert.Equal(t, DifficultyAt(size, coordinate.X, coordinate.Y), planet.MovementDifficulty)
		}
	})

	t.Run("same seed reproduces the same shape", func(t *testing.T) {
		first, err := NewSeededGenerator(99).NewWorld(6)
		require.NoError(t, err)
		second, err := NewSeededGenerator(99).NewWorld(6)
		require.NoError(t, err)

		// IDs are random but the surviving coordinates and their
		// difficulties must match.
		assert.Equal(t, coordinateSet(first), coordinateSet(second))
	})
}

func coordinateSet(m *world.GameMap) map[world.Coordinate]int {
	set := make(map[world.Coordinate]int, len(m.Index))
	for id, c := range m.Index {
		planet, _ := m.PlanetByID(id)
		set[c] = planet.MovementDifficulty
	}
	return set
}

func TestGenerator_ConcurrentGenerationsShareOneGenerator(t *testing.T) {
	generator := NewSeededGenerator(7)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				m, err := generator.NewWorld(6)
				if assert.NoError(t, err) {
					assert.Len(t, m.Planets, 6*6-6)
				}
			}
		}()
	}
	wg.Wait()
}
