// Package linetrace splits the straight corridor between two endpoints into
// spans of passable tiles.
//
// Trace walks the 4-connected raster line from a to b: every step moves one
// tile along X or Y, choosing the axis whose next cell boundary is crossed
// first (ties step along Y). The line always has |dx|+|dy|+1 tiles.
//
// Decompose classifies each traced tile as passable (navigable water or an
// endpoint front tile, outside both endpoints' occupied tiles) or obstacle and
// groups consecutive passable tiles into Spans. It validates the request
// before tracing and stops counting as soon as the span budget is exceeded.
//
// Errors:
//
//   - ErrBadBudget: maxLength or maxParts below 1.
//   - ErrInvalidEndpoint: a front tile is off the map, not navigable, or
//     inside an occupied set.
//   - ErrCoincident: both front tiles are the same tile.
//   - ErrTooLong: the Manhattan distance exceeds maxLength.
//   - ErrTooManyParts: more than maxParts spans; also matches ErrBudgetExceeded.
//
// All of them match ErrInputInvalid under errors.Is.
package linetrace
