package waterroute

import (
	"fmt"

	"github.com/katalvlaran/tileroute/astar"
	"github.com/katalvlaran/tileroute/costmodel"
	"github.com/katalvlaran/tileroute/infra"
	"github.com/katalvlaran/tileroute/linetrace"
	"github.com/katalvlaran/tileroute/route"
	"github.com/katalvlaran/tileroute/world"
)

// Job is one resumable planning run. It is not safe for concurrent use.
type Job struct {
	p        *Planner
	req      Request
	spans    []linetrace.Span
	occupied world.TileSet
	r        *route.Route

	gap     int // index of the gap being resolved
	engine  *astar.Engine
	kind    Kind
	ceiling int // coast ceiling of the current gap
	used    int // iterations spent by the current engine run
	seen    int // expansions of the current engine run already counted

	status JobStatus
	err    error
	stats  Stats
}

// Step advances the job by at most iterations engine iterations.
//
// Behavior:
//  1. Between searches it opens the next gap: coast first, unless the gap
//     ends lie in different basins; canal when the coast search fails.
//  2. A found path contributes its interior tiles as one segment, tagged
//     canal when any of them is not natural water or the path needs a new
//     aqueduct.
//  3. After the last gap the structures are planned and the route is
//     validated.
//
// Returns JobRunning while work remains. A finished job keeps returning its
// final status and error.
func (j *Job) Step(iterations int) (JobStatus, error) {
	if j.status != JobRunning {
		return j.status, j.err
	}
	if iterations <= 0 {
		return j.status, ErrBadIterations
	}

	budget := iterations
	for budget > 0 && j.status == JobRunning {
		if j.engine == nil {
			if j.gap >= len(j.spans)-1 {
				j.finish()
				break
			}
			j.openGap()
			continue
		}

		n := budget
		if left := j.p.opts.MaxIterations - j.used; n > left {
			n = left
		}
		res, err := j.engine.Step(n)
		if err != nil {
			j.fail(err)
			break
		}
		spent := n
		if res.Status != astar.StatusSearching {
			spent = min(res.Expanded-j.seen+1, n)
		}
		j.used += spent
		j.stats.Iterations += spent
		j.stats.Expanded += res.Expanded - j.seen
		j.seen = res.Expanded
		budget -= spent

		switch res.Status {
		case astar.StatusSucceeded:
			j.accept(res.Path)
		case astar.StatusNoPath:
			if j.kind == KindCoast {
				j.startCanal()
			} else {
				j.fail(fmt.Errorf("%w: gap %d %s→%s", ErrNoRoute, j.gap, j.current().From, j.current().To))
			}
		default:
			if j.used >= j.p.opts.MaxIterations {
				j.fail(fmt.Errorf("%w: %s search of gap %d after %d iterations",
					ErrBudgetExceeded, j.kind, j.gap, j.used))
			}
		}
	}
	return j.status, j.err
}

// Route returns the finished route, or nil unless the job succeeded.
func (j *Job) Route() *route.Route {
	if j.status != JobSucceeded {
		return nil
	}
	return j.r
}

// Status returns the current job status.
func (j *Job) Status() JobStatus { return j.status }

// Err returns the failure cause of a failed job.
func (j *Job) Err() error { return j.err }

// Stats returns the work done so far.
func (j *Job) Stats() Stats { return j.stats }

// Request returns the request the job was started with.
func (j *Job) Request() Request { return j.req }

// Engine returns the search currently running, or nil between searches.
func (j *Job) Engine() *astar.Engine { return j.engine }

func (j *Job) current() Gap {
	return Gap{Index: j.gap, From: j.spans[j.gap].Last(), To: j.spans[j.gap+1].First()}
}

// openGap picks the first search for the current gap.
func (j *Job) openGap() {
	g := j.current()
	j.stats.Gaps++
	remaining := j.req.MaxLength - j.r.Len()
	j.ceiling = max(3*g.From.Manhattan(g.To), remaining)

	if bl, ok := j.p.q.(world.BasinLabeler); ok && bl.Basin(g.From) != bl.Basin(g.To) {
		j.startCanal()
		return
	}
	j.start(KindCoast, costmodel.NewWater(j.p.q), j.ceiling)
}

// startCanal falls back to the canal search, or fails the job when canals
// are disabled or provably too long.
func (j *Job) startCanal() {
	g := j.current()
	if !j.p.opts.Canals {
		j.fail(fmt.Errorf("%w: gap %d %s→%s has no water path", ErrNoRoute, g.Index, g.From, g.To))
		return
	}
	if limit := j.p.opts.MaxCanalTiles; limit > 0 {
		if de, ok := j.p.q.(world.DigEstimator); ok {
			n, found := de.MinDig(g.From, g.To)
			if !found || n > limit {
				j.fail(fmt.Errorf("%w: gap %d needs more than %d canal tiles", ErrNoRoute, g.Index, limit))
				return
			}
		}
	}
	cfg := j.p.opts.Canal
	j.start(KindCanal, costmodel.NewCanal(j.p.q, cfg), j.ceiling*max(cfg.DigCost, 1))
}

func (j *Job) start(kind Kind, model astar.Model, ceiling int) {
	g := j.current()
	j.kind = kind
	j.used, j.seen = 0, 0
	j.engine = astar.New(model, astar.WithMaxCost(ceiling))

	src := astar.Source{Tile: g.From}
	if prev := j.spans[j.gap]; prev.Len() > 1 {
		src.Dir = prev.Tiles[prev.Len()-2].DirectionTo(g.From)
	}
	if err := j.engine.Init([]astar.Source{src}, []world.Tile{g.To}, j.ignored(g)); err != nil {
		j.fail(err)
		return
	}
	if kind == KindCoast {
		j.stats.CoastSearches++
	} else {
		j.stats.CanalSearches++
	}
	j.p.opts.OnSubSearch(g, kind)
}

// ignored collects the tiles a gap path may not use: the endpoints' occupied
// tiles, the route built so far and every later span except the gap's end.
func (j *Job) ignored(g Gap) []world.Tile {
	out := j.occupied.Slice()
	for _, t := range j.r.Tiles() {
		if t != g.From {
			out = append(out, t)
		}
	}
	for _, s := range j.spans[j.gap+1:] {
		for _, t := range s.Tiles {
			if t != g.To {
				out = append(out, t)
			}
		}
	}
	return out
}

// accept appends the interior of path and the following span. A path that
// is a single new aqueduct jump has no interior; its landing head then
// carries the canal tag so the jump stays attached to a canal segment.
func (j *Job) accept(path *astar.Path) {
	tiles := path.Tiles()
	interior := tiles[1 : len(tiles)-1]
	canal := j.newJump(tiles)
	for _, t := range interior {
		if canal {
			break
		}
		canal = !j.p.q.Terrain(t).Natural()
	}
	next := j.spans[j.gap+1].Tiles
	if len(interior) == 0 && canal {
		j.r.Append(next[:1], true)
		next = next[1:]
	} else {
		j.r.Append(interior, canal)
	}
	j.r.Append(next, false)
	j.engine = nil
	j.gap++
}

// newJump reports whether tiles step between non-adjacent tiles the world
// does not already connect.
func (j *Job) newJump(tiles []world.Tile) bool {
	for i := 1; i < len(tiles); i++ {
		a, b := tiles[i-1], tiles[i]
		if a.Adjacent(b) {
			continue
		}
		if far, ok := j.p.q.ConnectedPair(a); !ok || far != b {
			return true
		}
	}
	return false
}

func (j *Job) finish() {
	pl := infra.New(j.p.q, infra.WithEndpoints(j.req.Source, j.req.Dest))
	items, err := pl.Plan(j.r)
	if err != nil {
		j.fail(fmt.Errorf("%w: %w", ErrNoRoute, err))
		return
	}
	if items == nil {
		items = []route.Item{}
	}
	j.r.Items = items
	if err := route.Validate(j.p.q, j.r, j.occupied); err != nil {
		j.fail(err)
		return
	}
	j.status = JobSucceeded
}

func (j *Job) fail(err error) {
	j.engine = nil
	j.err = err
	j.status = JobFailed
}
