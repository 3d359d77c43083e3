package worldgen

import (
	"math/rand"
	"sync"
	"time"

	"github.com/mlorenz/robotgame-go/internal/domain/shared"
	"github.com/mlorenz/robotgame-go/internal/domain/world"
)

const (
	// DepositChance is the per-planet probability of carrying a deposit,
	// expressed in percent.
	DepositChance = 80
	// DepositAmount is the initial stock of every generated deposit.
	DepositAmount = 10000
	// MinMapSize is the smallest grid edge the generator accepts.
	MinMapSize = 3
)

// resourceWeights drives the weighted deposit draw; indices line up with
// world.Resources() (cheapest first).
var resourceWeights = []int{60, 20, 10, 7, 3}

// Generator produces square planet grids with difficulty rings, weighted
// resource deposits and a handful of holes punched out, so maps of the
// same size still differ in shape. One generator serves all game
// creations, so the rng source is guarded for concurrent NewWorld calls.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator seeded from the wall clock
func NewGenerator() *Generator {
	return NewSeededGenerator(time.Now().UnixNano())
}

// NewSeededGenerator creates a generator with a fixed seed, for
// reproducible maps
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// NewWorld generates a size x size grid of planets. Planets closer to the
// center are harder to enter but the deposit draw is uniform across the
// grid. After linking, `size` planets are removed at random to break the
// regular shape.
func (g *Generator) NewWorld(size int) (*world.GameMap, error) {
	if size < MinMapSize {
		return nil, shared.NewValidationError("mapSize", "map size must be at least 3")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	grid := make([][]*world.Planet, size)
	planets := make(map[shared.PlanetID]*world.Planet, size*size)
	index := make(map[shared.PlanetID]world.Coordinate, size*size)

	for y := 0; y < size; y++ {
		grid[y] = make([]*world.Planet, size)
		for x := 0; x < size; x++ {
			planet := world.NewPlanet(shared.NewPlanetID(), DifficultyAt(size, x, y))
			if g.rng.Intn(100) < DepositChance {
				planet.Deposit = &world.Deposit{
					Resource: g.drawResource(),
					Amount:   DepositAmount,
				}
			}
			grid[y][x] = planet
			planets[planet.ID] = planet
			index[planet.ID] = world.Coordinate{X: x, Y: y}
		}
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			planet := grid[y][x]
			if y > 0 {
				planet.Neighbours[world.DirectionNorth] = grid[y-1][x].ID
			}
			if y < size-1 {
				planet.Neighbours[world.DirectionSouth] = grid[y+1][x].ID
			}
			if x > 0 {
				planet.Neighbours[world.DirectionWest] = grid[y][x-1].ID
			}
			if x < size-1 {
				planet.Neighbours[world.DirectionEast] = grid[y][x+1].ID
			}
		}
	}

	rowMajor := make([]shared.PlanetID, 0, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			rowMajor = append(rowMajor, grid[y][x].ID)
		}
	}
	g.punchHoles(size, rowMajor, planets, index)

	return world.NewGameMap(planets, index), nil
}

// DifficultyAt returns the movement difficulty of the grid cell (x, y).
// The grid is banded by distance from the nearest edge: an outer ring of
// difficulty 1, a middle ring of 2 and an inner core of 3.
func DifficultyAt(size, x, y int) int {
	mid := (size - 1) / 6
	inner := (size - 1) / 3

	d := x
	if y < d {
		d = y
	}
	if size-1-x < d {
		d = size - 1 - x
	}
	if size-1-y < d {
		d = size - 1 - y
	}

	switch {
	case d >= inner:
		return 3
	case d >= mid:
		return 2
	default:
		return 1
	}
}

// drawResource picks a resource with the weighted distribution; cheap
// resources dominate
func (g *Generator) drawResource() world.Resource {
	total := 0
	for _, w := range resourceWeights {
		total += w
	}
	pick := g.rng.Intn(total)
	resources := world.Resources()
	for i, w := range resourceWeights {
		if pick < w {
			return resources[i]
		}
		pick -= w
	}
	return resources[len(resources)-1]
}

// punchHoles removes `size` random planets and patches the neighbor edges
// pointing at them. Candidates arrive in row-major grid order so the same
// seed removes the same coordinates.
func (g *Generator) punchHoles(size int, ids []shared.PlanetID, planets map[shared.PlanetID]*world.Planet, index map[shared.PlanetID]world.Coordinate) {
	g.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	for _, id := range ids[:size] {
		delete(planets, id)
		delete(index, id)
	}
	for _, planet := range planets {
		for direction, neighbourID := range planet.Neighbours {
			if _, ok := planets[neighbourID]; !ok {
				delete(planet.Neighbours, direction)
			}
		}
	}
}
