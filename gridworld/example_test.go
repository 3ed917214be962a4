// File: gridworld/example_test.go
package gridworld_test

import (
	"fmt"

	"github.com/katalvlaran/tileroute/gridworld"
	"github.com/katalvlaran/tileroute/world"
)

////////////////////////////////////////////////////////////////////////////////
// Example: Basins
////////////////////////////////////////////////////////////////////////////////

// ExampleGrid_Basin shows two seas split by an isthmus joined by one canal.
// Scenario:
//
//   - Sea on both sides of a one-tile land column.
//   - Before the canal the tiles sit in different basins, afterwards in one.
func ExampleGrid_Basin() {
	g := gridworld.MustFromASCII([]string{
		"~~.~~",
		"~~.~~",
	}, gridworld.DefaultOptions())

	fmt.Println("same basin:", g.Basin(world.T(0, 0)) == g.Basin(world.T(4, 0)))
	cost, _ := g.BuildCanal(world.T(2, 1))
	fmt.Println("canal cost:", cost)
	fmt.Println("same basin:", g.Basin(world.T(0, 0)) == g.Basin(world.T(4, 0)))
	for _, row := range g.ASCII() {
		fmt.Println(row)
	}

	// Output:
	// same basin: false
	// canal cost: 500
	// same basin: true
	// ~~1~~
	// ~~c~~
}

////////////////////////////////////////////////////////////////////////////////
// Example: DryRun
////////////////////////////////////////////////////////////////////////////////

// ExampleGrid_DryRun prices a lock plus a canal without changing the map.
func ExampleGrid_DryRun() {
	g := gridworld.MustFromASCII([]string{"~..~"}, gridworld.DefaultOptions())

	cost, err := g.DryRun(func(b world.Builder) error {
		if _, err := b.BuildLock(world.T(1, 0), world.East); err != nil {
			return err
		}
		_, err := b.BuildCanal(world.T(2, 0))
		return err
	})
	fmt.Println(cost, err, g.ASCII()[0])

	// Output:
	// 1700 <nil> ~11~
}
