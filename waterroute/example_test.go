package waterroute_test

import (
	"fmt"

	"github.com/katalvlaran/tileroute/gridworld"
	"github.com/katalvlaran/tileroute/waterroute"
	"github.com/katalvlaran/tileroute/world"
)

// ExamplePlanner_Plan crosses a land bridge between two seas.
func ExamplePlanner_Plan() {
	g := gridworld.MustFromASCII([]string{
		"~~~III~~~",
		"~~~...~~~",
		"~~~III~~~",
	}, gridworld.DefaultOptions())

	p := waterroute.NewPlanner(g)
	r, err := p.Plan(waterroute.Request{
		Source:    world.Point{At: world.T(0, 1)},
		Dest:      world.Point{At: world.T(8, 1)},
		MaxLength: 20,
		MaxParts:  2,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, s := range r.Segments {
		fmt.Println(len(s.Tiles), s.Canal)
	}
	fmt.Println(r.Items)
	// Output:
	// 3 false
	// 3 true
	// 3 false
	// [Lock@3,1 Lock@5,1]
}
