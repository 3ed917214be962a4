// File: astar/example_test.go
package astar_test

import (
	"fmt"

	"github.com/katalvlaran/tileroute/astar"
	"github.com/katalvlaran/tileroute/world"
)

////////////////////////////////////////////////////////////////////////////////
// Example: resumable search
////////////////////////////////////////////////////////////////////////////////

// ExampleEngine_Step runs a search in slices of 3 pops until it finishes.
// Scenario:
//
//   - A 5×3 maze with a wall forcing the path around row 2.
//   - Each Step(3) returns Searching until the goal is popped.
func ExampleEngine_Step() {
	m := mazeModel{rows: []string{
		".#...",
		".#.#.",
		"...#.",
	}}
	e := astar.New(m)
	_ = e.Init([]astar.Source{{Tile: world.T(0, 0)}}, []world.Tile{world.T(2, 0)}, nil)

	for {
		res, err := e.Step(3)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println(res.Status)
		if res.Status == astar.StatusSucceeded {
			fmt.Println(res.Path.Tiles(), "cost", res.Path.Cost())
			return
		}
	}

	// Output:
	// Searching
	// Searching
	// Succeeded
	// [0,0 0,1 0,2 1,2 2,2 2,1 2,0] cost 6
}
