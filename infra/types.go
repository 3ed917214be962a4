package infra

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tileroute/world"
)

// Sentinel errors.
var (
	// ErrConstructionFailed is matched by every *CommitError.
	ErrConstructionFailed = errors.New("infra: construction failed")

	// ErrConcurrentWorldChange indicates a tile that was buildable at plan
	// time still failed after one demolish-and-retry.
	ErrConcurrentWorldChange = fmt.Errorf("%w: world changed since planning", ErrConstructionFailed)

	// ErrUnbuildable indicates a canal step no lock or aqueduct can carry.
	ErrUnbuildable = errors.New("infra: level change cannot be built")
)

// CommitError reports the operation that stopped a commit.
type CommitError struct {
	Tile    world.Tile
	Op      string
	Cause   error
	Retried bool // a demolish-and-retry was attempted
}

// Error implements error.
func (e *CommitError) Error() string {
	kind := ErrConstructionFailed
	if e.Retried {
		kind = ErrConcurrentWorldChange
	}
	return fmt.Sprintf("%v: %s at %s: %v", kind, e.Op, e.Tile, e.Cause)
}

// Unwrap exposes both the taxonomy sentinel and the world cause.
func (e *CommitError) Unwrap() []error {
	if e.Retried {
		return []error{ErrConcurrentWorldChange, e.Cause}
	}
	return []error{ErrConstructionFailed, e.Cause}
}

// Report summarises a commit or an estimate.
type Report struct {
	Items      int         `json:"items"`      // locks and aqueducts built
	Dug        int         `json:"dug"`        // canal tiles dug
	Demolished int         `json:"demolished"` // obstacles cleared
	Skipped    int         `json:"skipped"`    // work found already done
	Spent      world.Money `json:"spent"`
}

// Options configures a Planner.
type Options struct {
	// Occupied are the endpoints' tiles no item may touch.
	Occupied world.TileSet

	// OnBuild is called after each successful real or dry-run operation.
	OnBuild func(op string, t world.Tile, cost world.Money)
}

// Option configures a Planner via functional arguments.
type Option func(*Options)

// DefaultOptions returns Options with no occupied tiles and a no-op hook.
func DefaultOptions() Options {
	return Options{
		Occupied: world.TileSet{},
		OnBuild:  func(string, world.Tile, world.Money) {},
	}
}

// WithEndpoints marks the occupied tiles of eps as off limits.
func WithEndpoints(eps ...world.Endpoint) Option {
	return func(o *Options) {
		for t := range world.Occupied(eps...) {
			o.Occupied.Add(t)
		}
	}
}

// WithOnBuild registers a construction hook. A nil fn is ignored.
func WithOnBuild(fn func(op string, t world.Tile, cost world.Money)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnBuild = fn
		}
	}
}
