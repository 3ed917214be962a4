// Package route holds the result of a planning call: ordered segments of
// tiles, the infrastructure items they need, and the invariants tying them
// together.
//
// A Route is built fresh per planning call. Its concatenated segment tiles
// run from the source front tile to the destination front tile; consecutive
// tiles are 4-adjacent or joined by a straight jump (an existing connected
// pair, or a planned aqueduct inside a canal segment). HasCanal is true iff a
// segment is canal-tagged. Validate checks all of this against a world.
package route
