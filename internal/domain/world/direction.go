package world

// Direction labels a neighbor edge on the planet graph
type Direction string

const (
	DirectionNorth Direction = "NORTH"
	DirectionEast  Direction = "EAST"
	DirectionSouth Direction = "SOUTH"
	DirectionWest  Direction = "WEST"
)

// Directions returns the four compass directions in stable order
func Directions() []Direction {
	return []Direction{DirectionNorth, DirectionEast, DirectionSouth, DirectionWest}
}

// Opposite returns the reverse direction of d
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionNorth:
		return DirectionSouth
	case DirectionSouth:
		return DirectionNorth
	case DirectionEast:
		return DirectionWest
	case DirectionWest:
		return DirectionEast
	default:
		return d
	}
}
