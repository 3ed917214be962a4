package waterroute

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tileroute/costmodel"
	"github.com/katalvlaran/tileroute/linetrace"
	"github.com/katalvlaran/tileroute/world"
)

// Sentinel errors.
var (
	// ErrInputInvalid is matched by request validation failures.
	ErrInputInvalid = linetrace.ErrInputInvalid

	// ErrNoRoute indicates no route could be found, including requests
	// rejected during decomposition.
	ErrNoRoute = errors.New("waterroute: no route")

	// ErrBudgetExceeded indicates a sub-search ran past MaxIterations.
	ErrBudgetExceeded = errors.New("waterroute: iteration budget exceeded")

	// ErrOptionViolation indicates an invalid Option was supplied.
	ErrOptionViolation = errors.New("waterroute: invalid option supplied")

	// ErrBadIterations indicates a non-positive Step budget.
	ErrBadIterations = errors.New("waterroute: iterations must be positive")
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go
//go:generate go tool stringer -type=JobStatus -trimprefix=Job -output=jobstatus_string.go

// Kind identifies which search resolves a gap.
type Kind uint8

const (
	// KindCoast follows existing water.
	KindCoast Kind = iota
	// KindCanal may build new waterways.
	KindCanal
)

// JobStatus is the state of a planning Job.
type JobStatus uint8

const (
	// JobRunning means Step must be called again.
	JobRunning JobStatus = iota
	// JobSucceeded means Route is ready.
	JobSucceeded
	// JobFailed means Err explains why.
	JobFailed
)

// Gap is the stretch between two consecutive spans the searches must bridge.
type Gap struct {
	Index int        `json:"index"`
	From  world.Tile `json:"from"` // last tile of the span before
	To    world.Tile `json:"to"`   // first tile of the span after
}

// Request describes one planning call.
type Request struct {
	Source world.Endpoint
	Dest   world.Endpoint
	// MaxLength bounds the Manhattan distance between the front tiles and
	// feeds the coast search ceiling.
	MaxLength int
	// MaxParts bounds the number of spans, hence the number of gaps.
	MaxParts int
}

// Stats counts the work a job has done.
//
// Gaps counts sub-searches: one per gap between consecutive spans, so a
// request with MaxParts k has at most k-1 of them. Each gap runs the engine
// at most twice (coast, then canal), so CoastSearches+CanalSearches never
// exceeds 2×Gaps.
type Stats struct {
	Spans         int `json:"spans"`
	Gaps          int `json:"gaps"`           // sub-searches: gaps resolved or attempted
	CoastSearches int `json:"coast_searches"` // coast engine runs
	CanalSearches int `json:"canal_searches"` // canal engine runs
	Iterations    int `json:"iterations"`     // engine iterations spent
	Expanded      int `json:"expanded"`       // nodes expanded over all runs
}

// Options configures a Planner.
type Options struct {
	// Canals enables the canal search fallback.
	Canals bool

	// MaxIterations caps the iterations of one search run.
	MaxIterations int

	// StepBudget is the per-call iteration budget Plan uses.
	StepBudget int

	// MaxCanalTiles skips the canal search when the world's DigEstimator
	// proves more digs are needed. Zero disables the check.
	MaxCanalTiles int

	// Canal holds the canal search weights and company.
	Canal costmodel.CanalConfig

	// OnSubSearch is called each time a search run starts.
	OnSubSearch func(g Gap, k Kind)

	// internal error recorded during option parsing
	err error
}

// Option configures a Planner via functional arguments.
// Invalid arguments are recorded and surfaced as ErrOptionViolation by Start.
type Option func(*Options)

// DefaultOptions returns Options with canals enabled, 20000 iterations per
// search, 1000 iterations per Plan slice and the default canal weights.
func DefaultOptions() Options {
	return Options{
		Canals:        true,
		MaxIterations: 20000,
		StepBudget:    1000,
		Canal:         costmodel.DefaultCanalConfig(),
		OnSubSearch:   func(Gap, Kind) {},
	}
}

// WithCanals enables or disables the canal fallback.
func WithCanals(on bool) Option {
	return func(o *Options) { o.Canals = on }
}

// WithMaxIterations sets the per-search iteration cap; n must be positive.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: WithMaxIterations(%d)", ErrOptionViolation, n)
			return
		}
		o.MaxIterations = n
	}
}

// WithStepBudget sets the iterations Plan passes to each Step; n must be positive.
func WithStepBudget(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: WithStepBudget(%d)", ErrOptionViolation, n)
			return
		}
		o.StepBudget = n
	}
}

// WithMaxCanalTiles sets the dig pre-check bound; n must not be negative.
func WithMaxCanalTiles(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: WithMaxCanalTiles(%d)", ErrOptionViolation, n)
			return
		}
		o.MaxCanalTiles = n
	}
}

// WithCanalConfig replaces the canal search weights.
func WithCanalConfig(cfg costmodel.CanalConfig) Option {
	return func(o *Options) { o.Canal = cfg }
}

// WithOnSubSearch registers a hook called when a search run starts.
// A nil fn is ignored.
func WithOnSubSearch(fn func(g Gap, k Kind)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSubSearch = fn
		}
	}
}
