package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/katalvlaran/tileroute/waterroute"
)

// asyncJob is a planning job run by the scheduler. Finished jobs stay in the
// table so clients can read the outcome.
type asyncJob struct {
	job       *waterroute.Job
	created   time.Time
	cancelled bool
	routeID   *uuid.UUID
	err       error
}

// planTask adapts a planning job to the scheduler.
type planTask struct{ job *waterroute.Job }

func (t planTask) Step(n int) (bool, error) {
	st, err := t.job.Step(n)
	return st != waterroute.JobRunning, err
}

func (s *Server) handleSubmitJob(c *gin.Context) {
	var in planRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		s.fail(c, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	req, opts, err := s.request(in)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	j, err := waterroute.NewPlanner(s.world, opts...).Start(req)
	if err != nil {
		s.metrics.plans.WithLabelValues("failed").Inc()
		s.fail(c, err)
		return
	}
	id, err := s.sched.Submit(planTask{job: j})
	if err != nil {
		s.fail(c, err)
		return
	}
	s.jobs[id] = &asyncJob{job: j, created: time.Now().UTC()}
	s.metrics.jobsLive.Set(float64(s.sched.Len()))
	c.JSON(http.StatusAccepted, s.view(id, s.jobs[id]))
}

// jobDone runs inside Tick with mu held.
func (s *Server) jobDone(id uuid.UUID, err error) {
	aj, ok := s.jobs[id]
	if !ok {
		return
	}
	if err != nil {
		aj.err = err
		s.metrics.plans.WithLabelValues("failed").Inc()
		s.log.Info("job failed", slog.String("id", id.String()), slog.String("error", err.Error()))
		return
	}
	rec, _, err := s.price(aj.job)
	if err == nil {
		err = s.store.Put(rec)
	}
	if err != nil {
		aj.err = err
		s.metrics.plans.WithLabelValues("failed").Inc()
		s.log.Error("job result not stored", slog.String("id", id.String()), slog.String("error", err.Error()))
		return
	}
	aj.routeID = &rec.ID
	s.metrics.plans.WithLabelValues("ok").Inc()
	s.metrics.expanded.WithLabelValues("ship").Observe(float64(aj.job.Stats().Expanded))
	s.log.Info("job finished", slog.String("id", id.String()), slog.String("route", rec.ID.String()))
}

func (s *Server) jobByParam(c *gin.Context) (uuid.UUID, *asyncJob, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.fail(c, fmt.Errorf("%w: id %q", errBadRequest, c.Param("id")))
		return uuid.Nil, nil, false
	}
	aj, ok := s.jobs[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "server: job not found"})
		return id, nil, false
	}
	return id, aj, true
}

func (s *Server) handleGetJob(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, aj, ok := s.jobByParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.view(id, aj))
}

func (s *Server) handleCancelJob(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, aj, ok := s.jobByParam(c)
	if !ok {
		return
	}
	if s.sched.Cancel(id) {
		aj.cancelled = true
		s.metrics.jobsLive.Set(float64(s.sched.Len()))
	}
	c.JSON(http.StatusOK, s.view(id, aj))
}

func (s *Server) view(id uuid.UUID, aj *asyncJob) jobView {
	v := jobView{
		ID:      id,
		Status:  strings.ToLower(aj.job.Status().String()),
		Stats:   aj.job.Stats(),
		RouteID: aj.routeID,
		Created: aj.created,
	}
	switch {
	case aj.cancelled:
		v.Status = "cancelled"
	case aj.err != nil:
		v.Status = "failed"
		v.Error = aj.err.Error()
	}
	return v
}

