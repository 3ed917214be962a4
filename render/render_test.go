package render_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tileroute/gridworld"
	"github.com/katalvlaran/tileroute/render"
	"github.com/katalvlaran/tileroute/route"
	"github.com/katalvlaran/tileroute/world"
)

// TestPNG_Size encodes a decodable PNG of scale × grid size.
func TestPNG_Size(t *testing.T) {
	g := gridworld.MustFromASCII([]string{
		"~~.~~",
		"~~T~~",
	}, gridworld.DefaultOptions())
	r := route.New(world.T(0, 0), world.T(4, 0))
	r.Append([]world.Tile{world.T(0, 0), world.T(1, 0)}, false)
	r.Append([]world.Tile{world.T(2, 0)}, true)
	r.Append([]world.Tile{world.T(3, 0), world.T(4, 0)}, false)
	r.Items = []route.Item{route.Lock(world.T(2, 0), world.East)}

	var buf bytes.Buffer
	require.NoError(t, render.PNG(&buf, g, render.WithScale(4), render.WithRoute(r)))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

// TestImage_Colours paints water and land differently.
func TestImage_Colours(t *testing.T) {
	g := gridworld.MustFromASCII([]string{"~."}, gridworld.DefaultOptions())
	img, err := render.Image(g, render.WithScale(2))
	require.NoError(t, err)
	wr, wg, wb, _ := img.At(0, 0).RGBA()
	lr, lg, lb, _ := img.At(3, 1).RGBA()
	assert.NotEqual(t, [3]uint32{wr, wg, wb}, [3]uint32{lr, lg, lb})
	assert.Greater(t, wb, wr, "water is blue")
}

// TestErrors rejects bad scales and oversized output.
func TestErrors(t *testing.T) {
	g := gridworld.MustFromASCII([]string{"~"}, gridworld.DefaultOptions())
	_, err := render.Image(g, render.WithScale(0))
	assert.ErrorIs(t, err, render.ErrOptionViolation)

	big, err := gridworld.New(2048, 2048, gridworld.DefaultOptions())
	require.NoError(t, err)
	_, err = render.Image(big, render.WithScale(64))
	assert.ErrorIs(t, err, render.ErrTooLarge)
}
