// Package render draws a world, and optionally a route, as a PNG image.
//
// Each tile becomes a Scale×Scale square coloured by terrain; land is
// shaded by height. A route is drawn as a line through tile centres, black
// over water and red over canal segments, with its front tiles marked green
// (source) and blue (destination). Locks and aqueduct heads get white dots.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/katalvlaran/tileroute/route"
	"github.com/katalvlaran/tileroute/world"
)

var (
	// ErrOptionViolation indicates an invalid Option was supplied.
	ErrOptionViolation = errors.New("render: invalid option supplied")

	// ErrTooLarge indicates the image would exceed MaxPixels.
	ErrTooLarge = errors.New("render: image too large")
)

// Options configures drawing.
type Options struct {
	Scale     int // pixels per tile side
	MaxPixels int // width × height limit
	Route     *route.Route

	err error
}

// Option configures drawing via functional arguments.
type Option func(*Options)

// DefaultOptions returns 8 pixels per tile and a 16 megapixel limit.
func DefaultOptions() Options {
	return Options{Scale: 8, MaxPixels: 16 << 20}
}

// WithScale sets pixels per tile; n must be in 1..64.
func WithScale(n int) Option {
	return func(o *Options) {
		if n < 1 || n > 64 {
			o.err = fmt.Errorf("%w: WithScale(%d)", ErrOptionViolation, n)
			return
		}
		o.Scale = n
	}
}

// WithRoute overlays r.
func WithRoute(r *route.Route) Option {
	return func(o *Options) { o.Route = r }
}

var palette = map[world.Terrain]color.RGBA{
	world.TerrainVoid:     {0, 0, 0, 255},
	world.TerrainClear:    {118, 164, 82, 255},
	world.TerrainTrees:    {46, 104, 48, 255},
	world.TerrainHouse:    {170, 120, 90, 255},
	world.TerrainIndustry: {120, 120, 130, 255},
	world.TerrainRoad:     {90, 90, 90, 255},
	world.TerrainRail:     {140, 100, 60, 255},
	world.TerrainSea:      {40, 90, 170, 255},
	world.TerrainRiver:    {70, 130, 200, 255},
	world.TerrainCanal:    {90, 160, 220, 255},
	world.TerrainLock:     {200, 200, 60, 255},
	world.TerrainBuoy:     {230, 90, 40, 255},
	world.TerrainDock:     {160, 60, 160, 255},
	world.TerrainDepot:    {110, 40, 110, 255},
	world.TerrainAqueduct: {180, 180, 200, 255},
}

// Image draws q and returns the picture.
// Returns ErrOptionViolation or ErrTooLarge before drawing anything.
func Image(q world.Query, opts ...Option) (image.Image, error) {
	dc, err := draw(q, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// PNG draws q and writes it to w in PNG format.
func PNG(w io.Writer, q world.Query, opts ...Option) error {
	dc, err := draw(q, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func draw(q world.Query, opts []Option) (*gg.Context, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	w, h := q.Size()
	s := cfg.Scale
	if w*s*h*s > cfg.MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d tiles at scale %d", ErrTooLarge, w, h, s)
	}

	dc := gg.NewContext(w*s, h*s)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := world.T(x, y)
			dc.SetColor(tileColor(q, t))
			dc.DrawRectangle(float64(x*s), float64(y*s), float64(s), float64(s))
			dc.Fill()
		}
	}
	if cfg.Route != nil {
		drawRoute(dc, cfg.Route, s)
	}
	return dc, nil
}

// tileColor darkens land by 12 levels per height step above 1.
func tileColor(q world.Query, t world.Tile) color.Color {
	c := palette[q.Terrain(t)]
	if q.Terrain(t).Land() {
		shade := (q.Height(t) - 1) * 12
		c.R = clamp(int(c.R) + shade)
		c.G = clamp(int(c.G) + shade)
		c.B = clamp(int(c.B) + shade)
	}
	return c
}

func clamp(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

func centre(t world.Tile, s int) (float64, float64) {
	return float64(t.X*s) + float64(s)/2, float64(t.Y*s) + float64(s)/2
}

func drawRoute(dc *gg.Context, r *route.Route, s int) {
	dc.SetLineWidth(float64(s) / 3)
	var prev *world.Tile
	for _, seg := range r.Segments {
		if seg.Canal {
			dc.SetRGB255(200, 30, 30)
		} else {
			dc.SetRGB255(0, 0, 0)
		}
		for i := range seg.Tiles {
			t := seg.Tiles[i]
			if prev != nil {
				x0, y0 := centre(*prev, s)
				x1, y1 := centre(t, s)
				dc.DrawLine(x0, y0, x1, y1)
				dc.Stroke()
			}
			prev = &seg.Tiles[i]
		}
	}
	dc.SetRGB255(255, 255, 255)
	for _, it := range r.Items {
		heads := []world.Tile{it.At}
		if it.Kind == route.ItemAqueduct {
			heads = append(heads, it.To)
		}
		for _, t := range heads {
			x, y := centre(t, s)
			dc.DrawCircle(x, y, float64(s)/4)
			dc.Fill()
		}
	}
	for _, end := range []struct {
		t world.Tile
		c color.RGBA
	}{{r.From, color.RGBA{0, 200, 0, 255}}, {r.To, color.RGBA{0, 0, 230, 255}}} {
		x, y := centre(end.t, s)
		dc.SetColor(end.c)
		dc.DrawCircle(x, y, float64(s)/2)
		dc.Fill()
	}
}
