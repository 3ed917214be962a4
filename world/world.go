package world

// Query is the read-only surface the searches consume.
// Implementations must return TerrainVoid and zero values for tiles that are
// not InBounds rather than panicking.
type Query interface {
	// Size returns the map dimensions in tiles.
	Size() (width, height int)
	// InBounds reports whether t lies on the map.
	InBounds(t Tile) bool
	// Terrain returns what occupies t.
	Terrain(t Tile) Terrain
	// Height returns the terrain height, which is also the water level of
	// water tiles.
	Height(t Tile) int
	// Slope returns the inclination of t.
	Slope(t Tile) Slope
	// Owner returns who controls t.
	Owner(t Tile) Owner
	// Buildable reports whether t is clear, flat-enough land nobody objects to.
	Buildable(t Tile) bool
	// ConnectedPair returns the other end of a bridge-like structure
	// (aqueduct, tunnel) starting at t.
	ConnectedPair(t Tile) (Tile, bool)
}

// Builder is the construction surface. Each operation returns the money it
// spent and a *BuildError on failure.
type Builder interface {
	BuildCanal(t Tile) (Money, error)
	// BuildLock builds a lock on t whose gates face along axis.
	BuildLock(t Tile, axis Direction) (Money, error)
	// BuildAqueduct spans an aqueduct between two head tiles on one line.
	BuildAqueduct(from, to Tile) (Money, error)
	BuildBuoy(t Tile) (Money, error)
	// Demolish clears whatever stands on t.
	Demolish(t Tile) (Money, error)
}

// Constructor is a Builder that can also run a construction sequence in
// accounting-only mode.
type Constructor interface {
	Builder
	// DryRun executes fn against a Builder that checks and prices every
	// operation as if the previous ones had succeeded, without mutating the
	// world. It returns the accumulated cost and the first error fn returned.
	DryRun(fn func(b Builder) error) (Money, error)
}

// World is a Query that can also be built on.
type World interface {
	Query
	Constructor
}

// BasinLabeler is optionally implemented by worlds that can label connected
// bodies of navigable water. Tiles that are not water return -1.
type BasinLabeler interface {
	Basin(t Tile) int
}

// DigEstimator is optionally implemented by worlds that can bound how many
// land tiles must be converted to water to connect a and b.
type DigEstimator interface {
	MinDig(a, b Tile) (int, bool)
}

// Navigable reports whether ships can sail over t on q.
func Navigable(q Query, t Tile) bool {
	return q.InBounds(t) && q.Terrain(t).Navigable()
}
