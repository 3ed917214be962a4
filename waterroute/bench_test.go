package waterroute_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/tileroute/gridworld"
	"github.com/katalvlaran/tileroute/waterroute"
	"github.com/katalvlaran/tileroute/world"
)

// BenchmarkPlan_Archipelago plans across a 128×128 sea dotted with islands.
func BenchmarkPlan_Archipelago(b *testing.B) {
	const n = 128
	g, err := gridworld.New(n, n, gridworld.DefaultOptions())
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(7))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if rng.Intn(10) > 0 {
				g.SetCell(world.T(x, y), gridworld.Cell{Terrain: world.TerrainSea})
			}
		}
	}
	src, dst := world.T(0, n/2), world.T(n-1, n/2)
	g.SetCell(src, gridworld.Cell{Terrain: world.TerrainSea})
	g.SetCell(dst, gridworld.Cell{Terrain: world.TerrainSea})
	p := waterroute.NewPlanner(g, waterroute.WithMaxIterations(1<<20))
	rq := waterroute.Request{
		Source: world.Point{At: src}, Dest: world.Point{At: dst},
		MaxLength: 2 * n, MaxParts: n,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Plan(rq)
	}
}
