package waterroute

import (
	"fmt"

	"github.com/katalvlaran/tileroute/linetrace"
	"github.com/katalvlaran/tileroute/route"
	"github.com/katalvlaran/tileroute/world"
)

// Planner creates planning jobs over one world. It holds no per-request state,
// so one Planner may start any number of jobs; each Job is single-threaded.
type Planner struct {
	q    world.Query
	opts Options
}

// NewPlanner returns a Planner for q. Option errors are reported by Start.
func NewPlanner(q world.Query, opts ...Option) *Planner {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Planner{q: q, opts: cfg}
}

// Options returns the effective configuration.
func (p *Planner) Options() Options { return p.opts }

// Start validates req, decomposes the straight corridor and returns a job
// ready to Step. Decomposition failures match both ErrNoRoute and
// ErrInputInvalid; no search is started for them.
func (p *Planner) Start(req Request) (*Job, error) {
	if p.opts.err != nil {
		return nil, p.opts.err
	}
	if req.Source == nil || req.Dest == nil {
		return nil, fmt.Errorf("%w: %w: missing endpoint", ErrNoRoute, ErrInputInvalid)
	}
	spans, err := linetrace.Decompose(p.q, req.Source, req.Dest, req.MaxLength, req.MaxParts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoRoute, err)
	}

	j := &Job{
		p:        p,
		req:      req,
		spans:    spans,
		occupied: world.Occupied(req.Source, req.Dest),
		r:        route.New(req.Source.FrontTile(), req.Dest.FrontTile()),
		status:   JobRunning,
	}
	j.stats.Spans = len(spans)
	j.r.Append(spans[0].Tiles, false)
	return j, nil
}

// Plan runs a job to completion, stepping it Options.StepBudget iterations
// at a time.
func (p *Planner) Plan(req Request) (*route.Route, error) {
	j, err := p.Start(req)
	if err != nil {
		return nil, err
	}
	for {
		st, err := j.Step(p.opts.StepBudget)
		if err != nil {
			return nil, err
		}
		if st == JobSucceeded {
			return j.Route(), nil
		}
	}
}
