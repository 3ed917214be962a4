package astar

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tileroute/world"
)

// Sentinel errors returned by the engine.
var (
	// ErrNilModel indicates New or Init received a nil Model.
	ErrNilModel = errors.New("astar: model is nil")

	// ErrNoSources indicates Init was called without any source.
	ErrNoSources = errors.New("astar: at least one source is required")

	// ErrNoGoals indicates Init was called without any goal.
	ErrNoGoals = errors.New("astar: at least one goal is required")

	// ErrNotInitialized indicates Step was called before Init.
	ErrNotInitialized = errors.New("astar: search not initialized")

	// ErrTerminated indicates Step was called after the search finished.
	ErrTerminated = errors.New("astar: search already finished")

	// ErrBadIterations indicates a non-positive Step budget.
	ErrBadIterations = errors.New("astar: iterations must be positive")

	// ErrOptionViolation indicates an invalid Option was supplied.
	ErrOptionViolation = errors.New("astar: invalid option supplied")
)

//go:generate go tool stringer -type=Status -trimprefix=Status -output=status_string.go

// Status is the state of a search.
type Status uint8

const (
	// StatusIdle means Init has not been called yet.
	StatusIdle Status = iota
	// StatusSearching means the budget ran out with work remaining; call Step again.
	StatusSearching
	// StatusSucceeded means a goal was reached.
	StatusSucceeded
	// StatusNoPath means the open set is exhausted.
	StatusNoPath
)

// Terminal reports whether no further Step calls are accepted.
func (s Status) Terminal() bool { return s == StatusSucceeded || s == StatusNoPath }

// Source is a starting node: tile, arrival direction and initial cost.
type Source struct {
	Tile world.Tile
	Dir  world.Direction
	Cost int
}

// Neighbor is a candidate successor produced by Model.Neighbors.
// Dir is the heading used to enter Tile.
type Neighbor struct {
	Tile world.Tile
	Dir  world.Direction
}

// Model supplies everything mode-specific to the engine.
type Model interface {
	// Cost returns the cost of stepping from parent onto to with heading dir.
	// A negative value marks the step impassable.
	Cost(parent Node, to world.Tile, dir world.Direction) int
	// Estimate returns a lower bound of the remaining cost from t to the
	// nearest goal. It must never overestimate for results to be optimal.
	Estimate(t world.Tile, goals []world.Tile) int
	// Neighbors lists the successors of n.
	Neighbors(n Node) []Neighbor
	// DirectionValid reports whether t, already closed with the direction
	// mask closed, may be expanded again when entered with incoming.
	DirectionValid(t world.Tile, closed, incoming world.Direction) bool
}

// Result is what a Step call reports.
type Result struct {
	Status   Status
	Path     *Path // non-nil only when Status is StatusSucceeded
	Expanded int   // nodes expanded since Init
}

// Options configures an Engine.
type Options struct {
	// MaxCost prunes every node whose accumulated cost exceeds it.
	// Zero disables the ceiling.
	MaxCost int

	// OnExpand is called for every node right before its neighbors are generated.
	OnExpand func(n Node)

	// internal error recorded during option parsing
	err error
}

// Option configures an Engine via functional arguments.
// Invalid arguments are recorded and surfaced as ErrOptionViolation by Init.
type Option func(*Options)

// DefaultOptions returns Options with no cost ceiling and a no-op hook.
func DefaultOptions() Options {
	return Options{
		MaxCost:  0,
		OnExpand: func(Node) {},
	}
}

// WithMaxCost sets the cost ceiling; a path costing exactly c is still
// found. Negative values are rejected.
func WithMaxCost(c int) Option {
	return func(o *Options) {
		if c < 0 {
			o.err = fmt.Errorf("%w: WithMaxCost(%d)", ErrOptionViolation, c)
			return
		}
		o.MaxCost = c
	}
}

// WithOnExpand registers an expansion hook. A nil fn is ignored.
func WithOnExpand(fn func(n Node)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}
