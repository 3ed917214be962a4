package world

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by *BuildError.
var (
	// ErrOutOfBounds indicates the tile is not on the map.
	ErrOutOfBounds = errors.New("world: tile out of bounds")
	// ErrNotBuildable indicates the terrain does not allow the construction.
	ErrNotBuildable = errors.New("world: tile not buildable")
	// ErrObstructed indicates something clearable stands on the tile.
	ErrObstructed = errors.New("world: tile obstructed")
	// ErrOwnedByOther indicates another company owns the tile.
	ErrOwnedByOther = errors.New("world: tile owned by another company")
	// ErrAlreadyBuilt indicates the requested structure is already present.
	ErrAlreadyBuilt = errors.New("world: already built")
	// ErrBadSlope indicates the tile slope does not suit the construction.
	ErrBadSlope = errors.New("world: unsuitable slope")
	// ErrInsufficientFunds indicates the builder cannot pay.
	ErrInsufficientFunds = errors.New("world: insufficient funds")
	// ErrNotClearable indicates demolition is impossible.
	ErrNotClearable = errors.New("world: tile cannot be cleared")
)

// ErrBadDirection indicates text that names no heading.
var ErrBadDirection = errors.New("world: unknown direction")

// BuildError reports a failed construction operation.
type BuildError struct {
	Op   string // operation name, e.g. "canal", "lock"
	Tile Tile   // tile the operation targeted
	Err  error  // one of the sentinel causes above
}

// Error implements error.
func (e *BuildError) Error() string {
	return fmt.Sprintf("world: %s at %s: %v", e.Op, e.Tile, e.Err)
}

// Unwrap exposes the sentinel cause to errors.Is.
func (e *BuildError) Unwrap() error { return e.Err }

// NewBuildError is a convenience constructor for implementations.
func NewBuildError(op string, t Tile, cause error) *BuildError {
	return &BuildError{Op: op, Tile: t, Err: cause}
}
