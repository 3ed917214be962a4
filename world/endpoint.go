package world

// Endpoint is anything a route can start or end at.
type Endpoint interface {
	// Tile is the anchor tile of the endpoint.
	Tile() Tile
	// Orientation is the heading the endpoint is used from.
	Orientation() Direction
	// FrontTile is the tile searches start from or aim at.
	FrontTile() Tile
	// OccupiedTiles is the exclusion zone no route may cross.
	OccupiedTiles() []Tile
}

// Point is a bare tile endpoint. It occupies nothing and its front tile is itself.
type Point struct {
	At Tile
}

func (p Point) Tile() Tile { return p.At }
func (p Point) Orientation() Direction { return DirNone }
func (p Point) FrontTile() Tile { return p.At }
func (p Point) OccupiedTiles() []Tile { return nil }

// Dock is a ship dock: a land tile At plus its water part one step towards
// Facing. Ships approach from the tile beyond the water part.
type Dock struct {
	At     Tile
	Facing Direction
}

func (d Dock) Tile() Tile { return d.At }
func (d Dock) Orientation() Direction { return d.Facing }
func (d Dock) FrontTile() Tile { return d.At.Add(d.Facing, 2) }
func (d Dock) OccupiedTiles() []Tile {
	return []Tile{d.At, d.At.Neighbor(d.Facing)}
}

// Station is a rectangular road or rail station. At is the platform tile at
// the exit, platforms run Length tiles back from At against Facing and Width
// tracks to the right of Facing. Vehicles leave through the tile in front of At.
type Station struct {
	At     Tile
	Facing Direction
	Width  int
	Length int
}

func (s Station) Tile() Tile { return s.At }
func (s Station) Orientation() Direction { return s.Facing }
func (s Station) FrontTile() Tile { return s.At.Neighbor(s.Facing) }
func (s Station) OccupiedTiles() []Tile {
	w, l := max(s.Width, 1), max(s.Length, 1)
	right := rightOf(s.Facing)
	back := s.Facing.Opposite()
	out := make([]Tile, 0, w*l)
	for i := 0; i < l; i++ {
		row := s.At.Add(back, i)
		for j := 0; j < w; j++ {
			out = append(out, row.Add(right, j))
		}
	}
	return out
}

func rightOf(d Direction) Direction {
	switch d {
	case North:
		return East
	case East:
		return South
	case South:
		return West
	case West:
		return North
	}
	return DirNone
}

// TileSet is a set of tiles.
type TileSet map[Tile]struct{}

// Has reports membership.
func (s TileSet) Has(t Tile) bool {
	_, ok := s[t]
	return ok
}

// Add inserts t.
func (s TileSet) Add(t Tile) { s[t] = struct{}{} }

// Slice returns the members in no particular order.
func (s TileSet) Slice() []Tile {
	out := make([]Tile, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	return out
}

// Occupied collects the occupied tiles of every endpoint into one set.
func Occupied(eps ...Endpoint) TileSet {
	set := make(TileSet)
	for _, e := range eps {
		if e == nil {
			continue
		}
		for _, t := range e.OccupiedTiles() {
			set.Add(t)
		}
	}
	return set
}
