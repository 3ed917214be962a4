package astar

import (
	"container/heap"

	"github.com/katalvlaran/tileroute/world"
)

// stateKey identifies an open node by tile and arrival direction.
type stateKey struct {
	tile world.Tile
	dir  world.Direction
}

// Engine holds the state of one resumable search. It is not safe for
// concurrent use.
type Engine struct {
	model Model
	opts  Options

	status   Status
	goals    []world.Tile
	goalSet  world.TileSet
	ignored  world.TileSet
	closed   map[world.Tile]world.Direction
	best     map[stateKey]int // cheapest cost pushed per state
	arena    []node
	open     openPQ
	seq      uint64
	expanded int
	path     *Path
}

// New returns an idle Engine for model. Option errors and a nil model are
// reported by Init.
func New(model Model, opts ...Option) *Engine {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{model: model, opts: cfg}
}

// Init resets the engine and seeds a new search.
//
// Preconditions and validation (in order):
//  1. model must be non-nil (ErrNilModel).
//  2. no Option may have been rejected (ErrOptionViolation).
//  3. at least one source (ErrNoSources) and one goal (ErrNoGoals).
//
// Ignored tiles are closed before any source is pushed; sources on ignored
// tiles or above the cost ceiling are dropped.
func (e *Engine) Init(sources []Source, goals []world.Tile, ignored []world.Tile) error {
	if e.model == nil {
		return ErrNilModel
	}
	if e.opts.err != nil {
		return e.opts.err
	}
	if len(sources) == 0 {
		return ErrNoSources
	}
	if len(goals) == 0 {
		return ErrNoGoals
	}

	e.goals = append(e.goals[:0], goals...)
	e.goalSet = make(world.TileSet, len(goals))
	for _, g := range goals {
		e.goalSet.Add(g)
	}
	e.ignored = make(world.TileSet, len(ignored))
	for _, t := range ignored {
		e.ignored.Add(t)
	}
	e.closed = make(map[world.Tile]world.Direction)
	e.best = make(map[stateKey]int)
	e.arena = e.arena[:0]
	e.open = e.open[:0]
	heap.Init(&e.open)
	e.seq = 0
	e.expanded = 0
	e.path = nil

	for _, s := range sources {
		if e.ignored.Has(s.Tile) {
			continue
		}
		e.push(-1, s.Tile, s.Dir, s.Cost)
	}
	e.status = StatusSearching
	return nil
}

// Step performs at most iterations pops from the open set.
//
// Returns:
//
//   - StatusSearching when the budget ran out with nodes still open.
//   - StatusSucceeded with the path once a goal tile is popped.
//   - StatusNoPath once the open set is empty.
//
// The state survives between calls, so a search sliced into many small
// budgets pops nodes in exactly the order a single large call would.
func (e *Engine) Step(iterations int) (Result, error) {
	switch {
	case e.status == StatusIdle:
		return Result{Status: StatusIdle}, ErrNotInitialized
	case e.status.Terminal():
		return e.Result(), ErrTerminated
	case iterations <= 0:
		return e.Result(), ErrBadIterations
	}

	for i := 0; i < iterations && e.open.Len() > 0; i++ {
		it := heap.Pop(&e.open).(openItem)
		n := e.arena[it.idx]

		// 1) Skip nodes whose tile is closed for this heading.
		if mask, ok := e.closed[n.tile]; ok && !e.reopen(n.tile, mask, n.dir) {
			continue
		}
		e.closed[n.tile] |= n.dir

		// 2) Goal reached.
		if e.goalSet.Has(n.tile) {
			e.status = StatusSucceeded
			e.path = e.reconstruct(it.idx)
			return e.Result(), nil
		}

		// 3) Expand.
		e.expand(it.idx)
	}
	if e.open.Len() == 0 {
		e.status = StatusNoPath
	}
	return e.Result(), nil
}

// Result reports the current status, the path when succeeded and the
// expansion count.
func (e *Engine) Result() Result {
	return Result{Status: e.status, Path: e.path, Expanded: e.expanded}
}

// Status returns the current search status.
func (e *Engine) Status() Status { return e.status }

// Expanded returns how many nodes were expanded since Init.
func (e *Engine) Expanded() int { return e.expanded }

// ClosedTiles returns the tiles expanded or popped so far, excluding
// ignored tiles, in no particular order.
func (e *Engine) ClosedTiles() []world.Tile {
	out := make([]world.Tile, 0, len(e.closed))
	for t := range e.closed {
		out = append(out, t)
	}
	return out
}

// Frontier returns the tiles currently in the open set, in heap order.
func (e *Engine) Frontier() []world.Tile {
	out := make([]world.Tile, 0, len(e.open))
	for _, it := range e.open {
		out = append(out, e.arena[it.idx].tile)
	}
	return out
}

// expand generates and pushes the successors of the node at idx.
func (e *Engine) expand(idx int32) {
	e.expanded++
	h := Node{e: e, idx: idx}
	e.opts.OnExpand(h)

	base := e.arena[idx].cost
	for _, nb := range e.model.Neighbors(h) {
		if e.ignored.Has(nb.Tile) {
			continue
		}
		if mask, ok := e.closed[nb.Tile]; ok && !e.reopen(nb.Tile, mask, nb.Dir) {
			continue
		}
		step := e.model.Cost(h, nb.Tile, nb.Dir)
		if step < 0 {
			continue
		}
		e.push(idx, nb.Tile, nb.Dir, base+step)
	}
}

// reopen reports whether a tile closed with mask may be expanded again from dir.
func (e *Engine) reopen(t world.Tile, mask, dir world.Direction) bool {
	if mask.Has(dir) {
		return false
	}
	return e.model.DirectionValid(t, mask, dir)
}

// push appends a node to the arena and the open set unless it exceeds the
// cost ceiling or no cheaper than an already pushed node in the same state.
func (e *Engine) push(parent int32, t world.Tile, dir world.Direction, cost int) {
	if e.opts.MaxCost > 0 && cost > e.opts.MaxCost {
		return
	}
	k := stateKey{tile: t, dir: dir}
	if c, ok := e.best[k]; ok && c <= cost {
		return
	}
	e.best[k] = cost

	var depth int32
	if parent >= 0 {
		depth = e.arena[parent].depth + 1
	}
	idx := int32(len(e.arena))
	e.arena = append(e.arena, node{tile: t, cost: cost, parent: parent, depth: depth, dir: dir})
	heap.Push(&e.open, openItem{
		idx:  idx,
		prio: cost + e.model.Estimate(t, e.goals),
		seq:  e.seq,
	})
	e.seq++
}
