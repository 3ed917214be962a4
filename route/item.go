package route

import (
	"fmt"

	"github.com/katalvlaran/tileroute/world"
)

//go:generate go tool stringer -type=ItemKind -trimprefix=Item -output=itemkind_string.go

// ItemKind is the variant tag of an Item.
type ItemKind uint8

const (
	// ItemLock is a lock on one tile.
	ItemLock ItemKind = iota
	// ItemAqueduct is an aqueduct between two head tiles.
	ItemAqueduct
)

// MarshalText encodes the kind by name.
func (k ItemKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name.
func (k *ItemKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Lock":
		*k = ItemLock
	case "Aqueduct":
		*k = ItemAqueduct
	default:
		return fmt.Errorf("route: unknown item kind %q", b)
	}
	return nil
}

// Item is a piece of infrastructure a canal route needs.
// For a lock, At is the lock tile and Axis its gate heading. For an
// aqueduct, At and To are the two heads.
type Item struct {
	Kind ItemKind        `json:"kind"`
	At   world.Tile      `json:"at"`
	To   world.Tile      `json:"to,omitempty"`
	Axis world.Direction `json:"axis,omitempty"`
}

// Lock returns a lock item on t along axis.
func Lock(t world.Tile, axis world.Direction) Item {
	return Item{Kind: ItemLock, At: t, Axis: axis}
}

// Aqueduct returns an aqueduct item between from and to.
func Aqueduct(from, to world.Tile) Item {
	return Item{Kind: ItemAqueduct, At: from, To: to, Axis: from.DirectionTo(to)}
}

// Exists reports whether the item is already physically present on q.
func (it Item) Exists(q world.Query) bool {
	switch it.Kind {
	case ItemLock:
		return q.Terrain(it.At) == world.TerrainLock
	case ItemAqueduct:
		far, ok := q.ConnectedPair(it.At)
		return ok && far == it.To
	}
	return false
}

// Build constructs the item through b.
func (it Item) Build(b world.Builder) (world.Money, error) {
	switch it.Kind {
	case ItemLock:
		return b.BuildLock(it.At, it.Axis)
	case ItemAqueduct:
		return b.BuildAqueduct(it.At, it.To)
	}
	return 0, fmt.Errorf("route: unknown item kind %d", it.Kind)
}

// Tiles returns every tile the item stands on or spans, heads included.
func (it Item) Tiles() []world.Tile {
	if it.Kind != ItemAqueduct {
		return []world.Tile{it.At}
	}
	d := it.At.DirectionTo(it.To)
	n := it.At.Manhattan(it.To)
	out := make([]world.Tile, 0, n+1)
	for k := 0; k <= n; k++ {
		out = append(out, it.At.Add(d, k))
	}
	return out
}

// String formats the item, e.g. "Lock@3,4" or "Aqueduct@1,0-4,0".
func (it Item) String() string {
	if it.Kind == ItemAqueduct {
		return fmt.Sprintf("%s@%s-%s", it.Kind, it.At, it.To)
	}
	return fmt.Sprintf("%s@%s", it.Kind, it.At)
}
