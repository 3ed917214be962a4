// Package astar implements a resumable best-first (A*) search over tiles.
//
// The engine knows nothing about terrain: every mode-specific decision
// (step cost, heuristic, neighbor generation, re-entry of closed tiles) is
// delegated to a Model. One Engine runs one search at a time; Init resets it.
//
// What:
//
//   - Init seeds the open set with Sources (tile, initial direction, initial
//     cost), records the goal tiles, and pre-closes ignored tiles so they act
//     as an exclusion zone.
//   - Step pops at most n nodes from the open set and returns a Result whose
//     Status is Searching while work remains, Succeeded once a goal is popped,
//     or NoPath once the open set is empty.
//   - Open-set priority is cost + estimate; equal priorities pop in insertion
//     order, so the final path does not depend on how the total budget is
//     split across Step calls.
//   - Nodes live in an arena and refer to their parent by int32 index, so the
//     search tree is acyclic by construction.
//
// Closed set:
//
//	Each closed tile stores the mask of directions it was expanded with.
//	A node popped on a closed tile is expanded only if
//	Model.DirectionValid(tile, mask, node.Direction()) allows it. Models that
//	always return false get at most one expansion per tile.
//
// Complexity:
//
//   - Time:  O(E log E) over the whole search, E = pushed nodes.
//   - Space: O(E) for the arena and heap, O(V) for the closed set.
//
// Errors:
//
//   - ErrNilModel, ErrNoSources, ErrNoGoals: invalid Init input.
//   - ErrNotInitialized: Step before Init.
//   - ErrTerminated: Step after Succeeded or NoPath.
//   - ErrBadIterations: Step with a non-positive budget.
//   - ErrOptionViolation: an Option rejected its argument.
package astar
