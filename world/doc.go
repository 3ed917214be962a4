// Package world defines the boundary between the route engine and the
// simulated map it plans on.
//
// What:
//
//   - Tile and Direction: integer grid coordinates and the four orthogonal
//     headings, usable as a bitmask for closed-set bookkeeping.
//   - Terrain, Slope, Owner, Money: the attributes the engine queries.
//   - Query: the read-only tile surface every search consumes.
//   - Builder / Constructor: the construction surface, including a dry-run
//     mode that accounts cost without mutating anything.
//   - Endpoint: docks, stations and bare points, each exposing a front tile
//     and an occupied-tile exclusion zone.
//
// The engine never owns world state. Searches only read through Query;
// mutation happens exclusively through Builder during commit.
//
// Errors:
//
//   - *BuildError wraps one of ErrOutOfBounds, ErrNotBuildable, ErrObstructed,
//     ErrOwnedByOther, ErrAlreadyBuilt, ErrBadSlope, ErrInsufficientFunds,
//     ErrNotClearable together with the failing operation and tile.
package world
