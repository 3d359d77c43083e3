package world

import (
	"sort"

	"github.com/mlorenz/robotgame-go/internal/domain/shared"
)

// Deposit is the resource stock remaining on a planet.
// It is consumed in place; the planet drops the deposit entirely at zero.
type Deposit struct {
	Resource Resource `json:"resource"`
	Amount   int      `json:"amount"`
}

// Planet is a single node of the planet graph.
// Movement difficulty is fixed at generation time (1..3, banded by distance
// from the map edge). Neighbor edges are symmetric on the map but each
// planet stores its own directed entries.
type Planet struct {
	ID                 shared.PlanetID               `json:"id"`
	MovementDifficulty int                           `json:"movementDifficulty"`
	Deposit            *Deposit                      `json:"deposit,omitempty"`
	Neighbours         map[Direction]shared.PlanetID `json:"neighbours"`
}

// NewPlanet creates a planet with no deposit and no neighbors
func NewPlanet(id shared.PlanetID, movementDifficulty int) *Planet {
	return &Planet{
		ID:                 id,
		MovementDifficulty: movementDifficulty,
		Neighbours:         make(map[Direction]shared.PlanetID),
	}
}

// IsNeighbour reports whether target is directly reachable from p
func (p *Planet) IsNeighbour(target shared.PlanetID) bool {
	for _, id := range p.Neighbours {
		if id == target {
			return true
		}
	}
	return false
}

// NeighbourIDs returns the neighbor planet IDs in stable direction order
func (p *Planet) NeighbourIDs() []shared.PlanetID {
	ids := make([]shared.PlanetID, 0, len(p.Neighbours))
	for _, d := range Directions() {
		if id, ok := p.Neighbours[d]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// HasResource reports whether the planet still holds a deposit
func (p *Planet) HasResource() bool {
	return p.Deposit != nil && p.Deposit.Amount > 0
}

// Mine extracts up to maxAmount units from the planet's deposit and returns
// the resource and the amount actually taken. The deposit is removed once
// exhausted.
func (p *Planet) Mine(maxAmount int) (Resource, int) {
	if !p.HasResource() || maxAmount <= 0 {
		return "", 0
	}
	resource := p.Deposit.Resource
	amount := maxAmount
	if amount > p.Deposit.Amount {
		amount = p.Deposit.Amount
	}
	p.Deposit.Amount -= amount
	if p.Deposit.Amount == 0 {
		p.Deposit = nil
	}
	return resource, amount
}

// Clone returns a deep copy of the planet
func (p *Planet) Clone() *Planet {
	neighbours := make(map[Direction]shared.PlanetID, len(p.Neighbours))
	for d, id := range p.Neighbours {
		neighbours[d] = id
	}
	clone := &Planet{
		ID:                 p.ID,
		MovementDifficulty: p.MovementDifficulty,
		Neighbours:         neighbours,
	}
	if p.Deposit != nil {
		deposit := *p.Deposit
		clone.Deposit = &deposit
	}
	return clone
}

// sortPlanetIDs orders planet IDs lexicographically for deterministic iteration
func sortPlanetIDs(ids []shared.PlanetID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
