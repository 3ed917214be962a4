// Package infra turns a planned route into construction work.
//
// Plan lists the locks and aqueducts a route's canal segments need:
//
//   - a non-adjacent step that is not an existing connected pair becomes an
//     Aqueduct between the two tiles;
//   - a level change of one between adjacent tiles becomes a Lock on the
//     tile picked by costmodel.LockSite, gates along the travel heading.
//
// Items that already exist are left out, duplicates are merged, and an item
// touching an endpoint's occupied tiles fails the plan.
//
// Estimate runs the exact Commit sequence inside world.Constructor.DryRun.
// Commit builds items first, then digs the remaining land of canal segments.
// An obstructed tile is demolished once and retried. The first failure stops
// the commit and is returned as *CommitError; nothing is rolled back, and a
// repeated Commit skips everything already built.
package infra
