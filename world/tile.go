package world

import (
	"fmt"
	"strings"
)

// Tile is an addressable cell of the world grid.
type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// T is shorthand for Tile{X: x, Y: y}.
func T(x, y int) Tile { return Tile{X: x, Y: y} }

// String formats the tile as "x,y", the same identifier scheme used for
// grid vertices.
func (t Tile) String() string {
	return fmt.Sprintf("%d,%d", t.X, t.Y)
}

// Add returns the tile n steps away from t in direction d.
// Combined or empty directions yield t unchanged.
func (t Tile) Add(d Direction, n int) Tile {
	dx, dy := d.Offset()
	return Tile{X: t.X + dx*n, Y: t.Y + dy*n}
}

// Neighbor returns the adjacent tile in direction d.
func (t Tile) Neighbor(d Direction) Tile { return t.Add(d, 1) }

// Manhattan returns |dx| + |dy| between t and o.
// Complexity: O(1).
func (t Tile) Manhattan(o Tile) int {
	return abs(t.X-o.X) + abs(t.Y-o.Y)
}

// Adjacent reports whether o is one orthogonal step from t.
func (t Tile) Adjacent(o Tile) bool { return t.Manhattan(o) == 1 }

// DirectionTo returns the heading from t towards o when both lie on the
// same row or column, and DirNone otherwise (including t == o).
func (t Tile) DirectionTo(o Tile) Direction {
	switch {
	case t.X == o.X && o.Y < t.Y:
		return North
	case t.X == o.X && o.Y > t.Y:
		return South
	case t.Y == o.Y && o.X > t.X:
		return East
	case t.Y == o.Y && o.X < t.X:
		return West
	}
	return DirNone
}

// Direction is a heading on the grid. Values are single bits so that sets of
// directions can be stored as a mask.
type Direction uint8

const (
	// DirNone is the zero heading, used for search sources with no arrival side.
	DirNone Direction = 0
	// North decreases Y.
	North Direction = 1 << (iota - 1)
	// East increases X.
	East
	// South increases Y.
	South
	// West decreases X.
	West
)

// Cardinals lists the four headings in clockwise order starting at North.
var Cardinals = [4]Direction{North, East, South, West}

// Offset returns the (dx, dy) unit step for a single heading, or (0, 0).
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// Opposite returns the reverse heading; masks are reversed bit by bit.
func (d Direction) Opposite() Direction {
	var out Direction
	if d&North != 0 {
		out |= South
	}
	if d&South != 0 {
		out |= North
	}
	if d&East != 0 {
		out |= West
	}
	if d&West != 0 {
		out |= East
	}
	return out
}

// Horizontal reports whether d lies on the X axis.
func (d Direction) Horizontal() bool { return d == East || d == West }

// Vertical reports whether d lies on the Y axis.
func (d Direction) Vertical() bool { return d == North || d == South }

// Perpendicular reports whether d and o are single headings on different axes.
func (d Direction) Perpendicular(o Direction) bool {
	return (d.Horizontal() && o.Vertical()) || (d.Vertical() && o.Horizontal())
}

// Has reports whether mask d contains every bit of o.
func (d Direction) Has(o Direction) bool { return o != DirNone && d&o == o }

// String renders single headings as N/E/S/W and masks as their concatenation.
func (d Direction) String() string {
	if d == DirNone {
		return "-"
	}
	s := ""
	for i, c := range Cardinals {
		if d&c != 0 {
			s += string("NESW"[i])
		}
	}
	return s
}

// ParseDirection reads a single heading written as N/E/S/W or its full name,
// in any case. "" and "-" parse as DirNone.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "-":
		return DirNone, nil
	case "n", "north":
		return North, nil
	case "e", "east":
		return East, nil
	case "s", "south":
		return South, nil
	case "w", "west":
		return West, nil
	}
	return DirNone, fmt.Errorf("%w: %q", ErrBadDirection, s)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
