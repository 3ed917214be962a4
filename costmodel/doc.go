// Package costmodel provides the per-mode strategies plugged into astar.Engine.
//
// Each strategy implements astar.Model over a world.Query:
//
//   - Water follows existing navigable water (coast search).
//   - Canal additionally digs land, clears obstacles, passes level changes
//     through locks and bridges valleys with aqueducts.
//   - Road and Rail build over buildable land; Rail penalises and restricts
//     turns and may cross itself at right angles.
//
// Every strategy takes its company and weights explicitly; there is no
// package-level state. All estimates are the Manhattan distance to the
// nearest goal, which never exceeds the cost because no step costs less
// than one per tile travelled.
package costmodel
