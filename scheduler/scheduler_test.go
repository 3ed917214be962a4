package scheduler_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tileroute/scheduler"
)

// counter needs work iterations in total and logs each slice it receives.
type counter struct {
	name string
	work int
	done int
	log  *[]string
	err  error
}

func (c *counter) Step(n int) (bool, error) {
	*c.log = append(*c.log, c.name)
	if c.err != nil {
		return false, c.err
	}
	c.done += n
	return c.done >= c.work, nil
}

// TestTick_RoundRobin gives every job one slice per tick, rotating the leader.
func TestTick_RoundRobin(t *testing.T) {
	var log []string
	s, err := scheduler.New(scheduler.WithBudget(10))
	require.NoError(t, err)
	for _, name := range []string{"a", "b", "c"} {
		_, err := s.Submit(&counter{name: name, work: 1000, log: &log})
		require.NoError(t, err)
	}

	for i := 0; i < 3; i++ {
		assert.Zero(t, s.Tick())
	}
	assert.Equal(t, []string{"a", "b", "c", "b", "c", "a", "c", "a", "b"}, log)
	assert.Equal(t, 3, s.Ticks())
}

// TestTick_Completion reports finished and failed jobs once and removes them.
func TestTick_Completion(t *testing.T) {
	var log []string
	type done struct {
		id  uuid.UUID
		err error
	}
	var got []done
	s, err := scheduler.New(
		scheduler.WithBudget(5),
		scheduler.WithOnDone(func(id uuid.UUID, err error) { got = append(got, done{id, err}) }),
	)
	require.NoError(t, err)

	boom := errors.New("boom")
	short, _ := s.Submit(&counter{name: "short", work: 5, log: &log})
	long, _ := s.Submit(&counter{name: "long", work: 12, log: &log})
	bad, _ := s.Submit(&counter{name: "bad", work: 1, log: &log, err: boom})

	assert.Equal(t, 2, s.Tick(), "short and bad finish in the first tick")
	require.Len(t, got, 2)
	assert.Equal(t, short, got[0].id)
	assert.NoError(t, got[0].err)
	assert.Equal(t, bad, got[1].id)
	assert.ErrorIs(t, got[1].err, boom)
	assert.False(t, s.Has(short))
	assert.True(t, s.Has(long))

	used := s.Drain(0)
	assert.Equal(t, 2, used)
	assert.Zero(t, s.Len())
	require.Len(t, got, 3)
	assert.Equal(t, long, got[2].id)
}

// TestCancel drops state without calling OnDone.
func TestCancel(t *testing.T) {
	var log []string
	calls := 0
	s, err := scheduler.New(scheduler.WithOnDone(func(uuid.UUID, error) { calls++ }))
	require.NoError(t, err)

	a, _ := s.Submit(&counter{name: "a", work: 1 << 20, log: &log})
	b, _ := s.Submit(&counter{name: "b", work: 1 << 20, log: &log})
	s.Tick()
	n, ok := s.Slices(a)
	require.True(t, ok)
	assert.Equal(t, 1, n)

	assert.True(t, s.Cancel(a))
	assert.False(t, s.Cancel(a), "second cancel is a no-op")
	_, ok = s.Slices(a)
	assert.False(t, ok)

	s.Tick()
	assert.Equal(t, []string{"a", "b", "b"}, log)
	assert.True(t, s.Has(b))
	assert.Zero(t, calls)
}

// TestDrain_Limit stops after maxTicks even when jobs remain.
func TestDrain_Limit(t *testing.T) {
	var log []string
	s, err := scheduler.New(scheduler.WithBudget(1))
	require.NoError(t, err)
	_, _ = s.Submit(&counter{name: "x", work: 100, log: &log})
	assert.Equal(t, 4, s.Drain(4))
	assert.Equal(t, 1, s.Len())
	assert.Len(t, log, 4)
}

// TestErrors covers bad options and nil jobs.
func TestErrors(t *testing.T) {
	_, err := scheduler.New(scheduler.WithBudget(0))
	assert.ErrorIs(t, err, scheduler.ErrOptionViolation)

	s, err := scheduler.New()
	require.NoError(t, err)
	_, err = s.Submit(nil)
	assert.ErrorIs(t, err, scheduler.ErrNilJob)
	assert.Zero(t, s.Tick())
}
