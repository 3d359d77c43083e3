package world

// Resource is a mineable resource type found on planets
type Resource string

const (
	ResourceCoal     Resource = "COAL"
	ResourceIron     Resource = "IRON"
	ResourceGem      Resource = "GEM"
	ResourceGold     Resource = "GOLD"
	ResourcePlatinum Resource = "PLATINUM"
)

// Resources returns all resource types ordered from cheapest to most valuable
func Resources() []Resource {
	return []Resource{
		ResourceCoal,
		ResourceIron,
		ResourceGem,
		ResourceGold,
		ResourcePlatinum,
	}
}

// UnitPrice returns the sale value of one unit of the resource
func (r Resource) UnitPrice() int {
	switch r {
	case ResourceCoal:
		return 5
	case ResourceIron:
		return 15
	case ResourceGem:
		return 30
	case ResourceGold:
		return 50
	case ResourcePlatinum:
		return 60
	default:
		return 0
	}
}

// Valid reports whether r is a known resource type
func (r Resource) Valid() bool {
	return r.UnitPrice() > 0
}
