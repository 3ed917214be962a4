// Package gridworld is an in-memory tile world implementing world.Query and
// world.Constructor, used by tests, examples and the HTTP service.
//
// What:
//
//   - Grid stores one Cell per tile in row-major order (index = y*Width + x).
//   - FromASCII builds a Grid from a textual map; ASCII renders it back.
//   - Builder operations (canal, lock, aqueduct, buoy, demolish) validate
//     terrain, slope and ownership, charge Prices and mutate the grid.
//   - DryRun runs the same operations against a copy-on-write overlay and only
//     accumulates cost.
//   - Basin labels connected bodies of navigable water (islands of water, the
//     inverse of land components).
//   - MinDig runs a 0-1 BFS to count the fewest land tiles that must become
//     water to connect two tiles.
//
// Legend for FromASCII:
//
//	~  sea (height 0)            r  river (height 0)
//	.  clear land (height 1)     0-9 clear land at that height
//	^  steep land (height 1)     T  trees      H  town house
//	I  industry                  X  land of a foreign company (owner 2)
//	R  road                      =  rail       c  canal (height 1)
//	B  buoy on sea               D  dock water part
//	P  water depot
//
// Complexity:
//
//   - Query operations: O(1).
//   - Basin: O(W×H) on first call after a mutation, O(1) afterwards.
//   - MinDig: O(W×H) time and memory.
//
// Errors:
//
//   - ErrEmptyGrid: input has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrBadGlyph: unknown character in an ASCII map.
package gridworld
