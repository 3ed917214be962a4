package world

//go:generate go tool stringer -type=Terrain -trimprefix=Terrain -output=terrain_string.go
//go:generate go tool stringer -type=Slope -trimprefix=Slope -output=slope_string.go

// Terrain classifies what occupies a tile.
type Terrain uint8

const (
	TerrainVoid     Terrain = iota // outside the map
	TerrainClear                   // bare land
	TerrainTrees                   // land covered by trees, clearable
	TerrainHouse                   // town building, clearable at a cost
	TerrainIndustry                // never clearable
	TerrainRoad
	TerrainRail
	TerrainSea
	TerrainRiver
	TerrainCanal
	TerrainLock
	TerrainBuoy
	TerrainDock
	TerrainDepot // water depot
	TerrainAqueduct
)

// Navigable reports whether ships may sail over the tile.
func (t Terrain) Navigable() bool {
	switch t {
	case TerrainSea, TerrainRiver, TerrainCanal, TerrainLock,
		TerrainBuoy, TerrainDock, TerrainDepot, TerrainAqueduct:
		return true
	}
	return false
}

// Natural reports whether the tile is water that needs no construction:
// sea, river, or a buoy placed on either.
func (t Terrain) Natural() bool {
	return t == TerrainSea || t == TerrainRiver || t == TerrainBuoy
}

// OpenWater reports whether a buoy could be placed on the tile.
func (t Terrain) OpenWater() bool {
	return t == TerrainSea || t == TerrainRiver || t == TerrainCanal
}

// Clearable reports whether demolition can turn the tile into clear land.
func (t Terrain) Clearable() bool {
	return t == TerrainTrees || t == TerrainHouse
}

// Land reports whether the tile is dry ground of any kind.
func (t Terrain) Land() bool {
	switch t {
	case TerrainClear, TerrainTrees, TerrainHouse, TerrainIndustry, TerrainRoad, TerrainRail:
		return true
	}
	return false
}

// Slope describes the inclination of a tile.
type Slope uint8

const (
	SlopeFlat      Slope = iota
	SlopeInclinedX       // rises or falls along the X axis
	SlopeInclinedY       // rises or falls along the Y axis
	SlopeSteep           // unusable for construction
)

// Along reports whether the incline follows heading d. Flat tiles follow every heading.
func (s Slope) Along(d Direction) bool {
	switch s {
	case SlopeFlat:
		return true
	case SlopeInclinedX:
		return d.Horizontal()
	case SlopeInclinedY:
		return d.Vertical()
	}
	return false
}

// Owner identifies who controls a tile.
// Zero is unowned, negative values are towns, positive values are companies.
type Owner int16

const (
	OwnerNone Owner = 0
	OwnerTown Owner = -1
)

// Company reports whether o is a player company.
func (o Owner) Company() bool { return o > 0 }

// Foreign reports whether o is a company other than self.
func (o Owner) Foreign(self Owner) bool { return o.Company() && o != self }

// Money is an amount in the world's currency.
type Money int64
