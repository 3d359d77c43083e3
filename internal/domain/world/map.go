package world

import (
	"math/rand"

	"github.com/mlorenz/robotgame-go/internal/domain/shared"
)

// Coordinate is a planet's grid position, kept as a precomputed index so
// coordinate lookups stay O(1) after generation
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// GameMap is the planet graph of one game plus its coordinate index.
// The map is snapshotted per round; mutation happens only through the
// resolution pipeline on the current round's copy.
type GameMap struct {
	Planets map[shared.PlanetID]*Planet    `json:"planets"`
	Index   map[shared.PlanetID]Coordinate `json:"index"`
}

// NewGameMap builds a map from generated planets and their coordinates
func NewGameMap(planets map[shared.PlanetID]*Planet, index map[shared.PlanetID]Coordinate) *GameMap {
	return &GameMap{Planets: planets, Index: index}
}

// PlanetByID returns the planet with the given ID
func (m *GameMap) PlanetByID(id shared.PlanetID) (*Planet, bool) {
	p, ok := m.Planets[id]
	return p, ok
}

// CoordinateOf returns the grid position of a planet
func (m *GameMap) CoordinateOf(id shared.PlanetID) (Coordinate, bool) {
	c, ok := m.Index[id]
	return c, ok
}

// NeighbourIDs returns the IDs of the planets adjacent to id
func (m *GameMap) NeighbourIDs(id shared.PlanetID) []shared.PlanetID {
	p, ok := m.Planets[id]
	if !ok {
		return nil
	}
	return p.NeighbourIDs()
}

// PlanetIDs returns all planet IDs in lexicographic order.
// Sorted iteration keeps resolution deterministic.
func (m *GameMap) PlanetIDs() []shared.PlanetID {
	ids := make([]shared.PlanetID, 0, len(m.Planets))
	for id := range m.Planets {
		ids = append(ids, id)
	}
	sortPlanetIDs(ids)
	return ids
}

// RandomPlanetID picks a planet uniformly at random from the full index set
func (m *GameMap) RandomPlanetID(rng *rand.Rand) shared.PlanetID {
	ids := m.PlanetIDs()
	if len(ids) == 0 {
		return ""
	}
	return ids[rng.Intn(len(ids))]
}

// Clone returns a deep copy of the map
func (m *GameMap) Clone() *GameMap {
	planets := make(map[shared.PlanetID]*Planet, len(m.Planets))
	for id, p := range m.Planets {
		planets[id] = p.Clone()
	}
	index := make(map[shared.PlanetID]Coordinate, len(m.Index))
	for id, c := range m.Index {
		index[id] = c
	}
	return &GameMap{Planets: planets, Index: index}
}
