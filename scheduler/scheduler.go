// Package scheduler time-slices resumable jobs.
//
// Jobs are registered under uuid identifiers. Every Tick gives each live job
// the same iteration budget, visiting them in round-robin order with the
// starting job rotating from tick to tick. A job that reports done or fails
// is removed and handed to the completion callback. Cancelling a job simply
// drops it; no state survives.
//
// A Scheduler is not safe for concurrent use; callers serialise access.
package scheduler

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNilJob indicates Submit was called with a nil job.
	ErrNilJob = errors.New("scheduler: job is nil")

	// ErrOptionViolation indicates an invalid Option was supplied.
	ErrOptionViolation = errors.New("scheduler: invalid option supplied")
)

// Job is a unit of resumable work.
type Job interface {
	// Step performs at most iterations units of work and reports whether the
	// job has finished. A non-nil error also finishes the job.
	Step(iterations int) (done bool, err error)
}

// Options configures a Scheduler.
type Options struct {
	// Budget is the iteration budget of every job per Tick.
	Budget int
	// OnDone is called once per finished job, with its error if it failed.
	OnDone func(id uuid.UUID, err error)
}

// Option configures a Scheduler via functional arguments.
type Option func(*Options) error

// DefaultOptions returns a budget of 500 iterations and a no-op OnDone.
func DefaultOptions() Options {
	return Options{Budget: 500, OnDone: func(uuid.UUID, error) {}}
}

// WithBudget sets the per-tick budget; n must be positive.
func WithBudget(n int) Option {
	return func(o *Options) error {
		if n <= 0 {
			return fmt.Errorf("%w: WithBudget(%d)", ErrOptionViolation, n)
		}
		o.Budget = n
		return nil
	}
}

// WithOnDone registers the completion callback. A nil fn is ignored.
func WithOnDone(fn func(id uuid.UUID, err error)) Option {
	return func(o *Options) error {
		if fn != nil {
			o.OnDone = fn
		}
		return nil
	}
}

// Scheduler runs registered jobs cooperatively.
type Scheduler struct {
	opts   Options
	order  []uuid.UUID // submission order of live jobs
	jobs   map[uuid.UUID]*entry
	cursor int // index in order of the first job of the next tick
	ticks  int
}

type entry struct {
	job    Job
	slices int
}

// New returns an empty Scheduler.
func New(opts ...Option) (*Scheduler, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Scheduler{opts: cfg, jobs: make(map[uuid.UUID]*entry)}, nil
}

// Submit registers job and returns its identifier. The job first runs on the
// next Tick.
func (s *Scheduler) Submit(job Job) (uuid.UUID, error) {
	if job == nil {
		return uuid.Nil, ErrNilJob
	}
	id := uuid.New()
	s.jobs[id] = &entry{job: job}
	s.order = append(s.order, id)
	return id, nil
}

// Cancel drops the job with id and reports whether it was live.
// OnDone is not called for cancelled jobs.
func (s *Scheduler) Cancel(id uuid.UUID) bool {
	if _, ok := s.jobs[id]; !ok {
		return false
	}
	s.remove(id)
	return true
}

// Tick gives every live job one slice of Budget iterations and returns how
// many jobs finished.
// Complexity: O(J) plus the jobs' own work.
func (s *Scheduler) Tick() int {
	s.ticks++
	n := len(s.order)
	if n == 0 {
		return 0
	}
	start := s.cursor % n
	batch := make([]uuid.UUID, 0, n)
	batch = append(batch, s.order[start:]...)
	batch = append(batch, s.order[:start]...)

	finished := 0
	for _, id := range batch {
		e, ok := s.jobs[id]
		if !ok {
			// cancelled by an earlier callback in this tick
			continue
		}
		e.slices++
		done, err := e.job.Step(s.opts.Budget)
		if !done && err == nil {
			continue
		}
		s.remove(id)
		finished++
		s.opts.OnDone(id, err)
	}
	// the job after this tick's first leads the next tick
	s.cursor = 0
	for k := 1; k <= n; k++ {
		if i := s.index(batch[k%n]); i >= 0 {
			s.cursor = i
			break
		}
	}
	return finished
}

// Drain ticks until no job is left or maxTicks ticks have run, and returns
// the number of ticks used. maxTicks ≤ 0 means no limit.
func (s *Scheduler) Drain(maxTicks int) int {
	used := 0
	for len(s.order) > 0 && (maxTicks <= 0 || used < maxTicks) {
		s.Tick()
		used++
	}
	return used
}

// Len returns the number of live jobs.
func (s *Scheduler) Len() int { return len(s.order) }

// Has reports whether id names a live job.
func (s *Scheduler) Has(id uuid.UUID) bool {
	_, ok := s.jobs[id]
	return ok
}

// Slices returns how many slices the live job id has received.
func (s *Scheduler) Slices(id uuid.UUID) (int, bool) {
	e, ok := s.jobs[id]
	if !ok {
		return 0, false
	}
	return e.slices, true
}

// Ticks returns the number of Tick calls so far.
func (s *Scheduler) Ticks() int { return s.ticks }

func (s *Scheduler) index(id uuid.UUID) int {
	for i, v := range s.order {
		if v == id {
			return i
		}
	}
	return -1
}

func (s *Scheduler) remove(id uuid.UUID) {
	delete(s.jobs, id)
	if i := s.index(id); i >= 0 {
		s.order = append(s.order[:i], s.order[i+1:]...)
		if s.cursor > i {
			s.cursor--
		}
	}
}
