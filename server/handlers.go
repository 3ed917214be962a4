package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/tileroute/astar"
	"github.com/katalvlaran/tileroute/buoy"
	"github.com/katalvlaran/tileroute/costmodel"
	"github.com/katalvlaran/tileroute/infra"
	"github.com/katalvlaran/tileroute/render"
	"github.com/katalvlaran/tileroute/routestore"
	"github.com/katalvlaran/tileroute/waterroute"
	"github.com/katalvlaran/tileroute/world"
)

func (s *Server) handleWorld(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, h := s.world.Size()
	c.JSON(http.StatusOK, worldResponse{
		Width:   w,
		Height:  h,
		Rows:    s.world.ASCII(),
		Balance: s.world.Balance(),
		Builds:  s.world.Builds(),
	})
}

func (s *Server) handleWorldPNG(c *gin.Context) {
	opts := []render.Option{}
	if v := c.Query("scale"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.fail(c, fmt.Errorf("%w: scale %q", errBadRequest, v))
			return
		}
		opts = append(opts, render.WithScale(n))
	}
	if v := c.Query("route"); v != "" {
		rec, err := s.lookup(v)
		if err != nil {
			s.fail(c, err)
			return
		}
		opts = append(opts, render.WithRoute(rec.Route))
	}

	var buf bytes.Buffer
	s.mu.Lock()
	err := render.PNG(&buf, s.world, opts...)
	s.mu.Unlock()
	switch {
	case errors.Is(err, render.ErrOptionViolation), errors.Is(err, render.ErrTooLarge):
		s.fail(c, fmt.Errorf("%w: %w", errBadRequest, err))
	case err != nil:
		s.fail(c, err)
	default:
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	}
}

// request turns the wire form into a planning request with server defaults.
func (s *Server) request(in planRequest) (waterroute.Request, []waterroute.Option, error) {
	src, err := in.From.endpoint()
	if err != nil {
		return waterroute.Request{}, nil, fmt.Errorf("%w: from: %w", errBadRequest, err)
	}
	dst, err := in.To.endpoint()
	if err != nil {
		return waterroute.Request{}, nil, fmt.Errorf("%w: to: %w", errBadRequest, err)
	}
	req := waterroute.Request{Source: src, Dest: dst, MaxLength: in.MaxLength, MaxParts: in.MaxParts}
	if req.MaxLength <= 0 {
		req.MaxLength = s.cfg.MaxLength
	}
	if req.MaxParts <= 0 {
		req.MaxParts = s.cfg.MaxParts
	}
	canals := s.cfg.Canals
	if in.Canals != nil {
		canals = *in.Canals
	}
	cc := costmodel.DefaultCanalConfig()
	cc.Company = world.Owner(s.cfg.Company)
	opts := []waterroute.Option{
		waterroute.WithCanals(canals),
		waterroute.WithMaxIterations(s.cfg.MaxIterations),
		waterroute.WithStepBudget(s.cfg.StepBudget),
		waterroute.WithMaxCanalTiles(s.cfg.MaxCanalTiles),
		waterroute.WithCanalConfig(cc),
	}
	return req, opts, nil
}

func (s *Server) handlePlan(c *gin.Context) {
	ctx, span := s.tracer.Start(c.Request.Context(), "server.Plan")
	defer span.End()

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
	span.SetAttributes(
		attribute.String("from", req.Source.FrontTile().String()),
		attribute.String("to", req.Dest.FrontTile().String()),
		attribute.Int("max_parts", req.MaxParts),
	)

	start := time.Now()
	s.mu.Lock()
	rec, stats, err := s.plan(req, opts)
	s.mu.Unlock()
	s.metrics.planDuration.Observe(time.Since(start).Seconds())
	s.metrics.expanded.WithLabelValues("ship").Observe(float64(stats.Expanded))
	if err != nil {
		s.metrics.plans.WithLabelValues("failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "planning failed")
		s.fail(c, err)
		return
	}
	if err := s.store.Put(rec); err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.plans.WithLabelValues("ok").Inc()
	span.AddEvent("planned", trace.WithAttributes(
		attribute.Int("tiles", rec.Route.Len()),
		attribute.Bool("has_canal", rec.Route.HasCanal),
		attribute.Int("gaps", stats.Gaps),
	))
	span.SetStatus(codes.Ok, "planned")
	s.log.InfoContext(ctx, "route planned",
		"id", rec.ID, "tiles", rec.Route.Len(), "estimate", rec.Estimate, "expanded", stats.Expanded)
	c.JSON(http.StatusOK, planResponse{ID: rec.ID, Route: rec.Route, Estimate: rec.Estimate, Stats: stats})
}

// plan runs a job to completion and prices the result. Callers hold mu.
func (s *Server) plan(req waterroute.Request, opts []waterroute.Option) (routestore.Record, waterroute.Stats, error) {
	p := waterroute.NewPlanner(s.world, opts...)
	j, err := p.Start(req)
	if err != nil {
		return routestore.Record{}, waterroute.Stats{}, err
	}
	for {
		st, err := j.Step(s.cfg.StepBudget)
		if err != nil {
			return routestore.Record{}, j.Stats(), err
		}
		if st == waterroute.JobSucceeded {
			break
		}
	}
	return s.price(j)
}

// price estimates a finished job's route. Callers hold mu.
func (s *Server) price(j *waterroute.Job) (routestore.Record, waterroute.Stats, error) {
	req := j.Request()
	r := j.Route()
	est, err := infra.New(s.world, infra.WithEndpoints(req.Source, req.Dest)).Estimate(s.world, r)
	if err != nil {
		return routestore.Record{}, j.Stats(), err
	}
	return routestore.New(r, est), j.Stats(), nil
}

func (s *Server) lookup(raw string) (routestore.Record, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return routestore.Record{}, fmt.Errorf("%w: id %q", errBadRequest, raw)
	}
	return s.store.Get(id)
}

func (s *Server) handleCommit(c *gin.Context) {
	ctx, span := s.tracer.Start(c.Request.Context(), "server.Commit")
	defer span.End()

	var in commitRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		s.fail(c, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	rec, err := s.lookup(in.RouteID)
	if err != nil {
		s.fail(c, err)
		return
	}
	span.SetAttributes(attribute.String("route_id", rec.ID.String()))

	s.mu.Lock()
	pl := infra.New(s.world, infra.WithOnBuild(func(op string, t world.Tile, cost world.Money) {
		s.log.DebugContext(ctx, "built", "op", op, "tile", t.String(), "cost", cost)
	}))
	rep, err := pl.Commit(s.world, rec.Route)
	var buoys []world.Tile
	if err == nil && s.cfg.BuoyStride > 0 {
		buoys, err = buoy.New(s.world, buoy.WithStride(s.cfg.BuoyStride)).Place(s.world, rec.Route)
	}
	s.mu.Unlock()
	s.metrics.spent.Add(float64(rep.Spent))

	if err != nil {
		s.metrics.commits.WithLabelValues("failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "commit failed")
		c.JSON(httpStatus(err), gin.H{"error": err.Error(), "report": rep})
		return
	}
	if _, err := s.store.Update(rec.ID, func(r *routestore.Record) error {
		r.Committed = true
		r.Report = &rep
		return nil
	}); err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.commits.WithLabelValues("ok").Inc()
	span.SetStatus(codes.Ok, "committed")
	s.log.InfoContext(ctx, "route committed", "id", rec.ID, "spent", rep.Spent, "buoys", len(buoys))
	if buoys == nil {
		buoys = []world.Tile{}
	}
	c.JSON(http.StatusOK, commitResponse{ID: rec.ID, Report: rep, Buoys: buoys})
}

func (s *Server) handleGetRoute(c *gin.Context) {
	rec, err := s.lookup(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleListRoutes(c *gin.Context) {
	recs, err := s.store.List()
	if err != nil {
		s.fail(c, err)
		return
	}
	if recs == nil {
		recs = []routestore.Record{}
	}
	c.JSON(http.StatusOK, recs)
}

// model returns the cost model for a search mode.
func (s *Server) model(mode string) (astar.Model, error) {
	company := world.Owner(s.cfg.Company)
	switch mode {
	case "water":
		return costmodel.NewWater(s.world), nil
	case "canal":
		cfg := costmodel.DefaultCanalConfig()
		cfg.Company = company
		return costmodel.NewCanal(s.world, cfg), nil
	case "road":
		cfg := costmodel.DefaultRoadConfig()
		cfg.Company = company
		return costmodel.NewRoad(s.world, cfg), nil
	case "rail":
		cfg := costmodel.DefaultRailConfig()
		cfg.Company = company
		return costmodel.NewRail(s.world, cfg), nil
	}
	return nil, fmt.Errorf("%w: mode %q", errBadRequest, mode)
}

func (s *Server) handleSearch(c *gin.Context) {
	_, span := s.tracer.Start(c.Request.Context(), "server.Search")
	defer span.End()

	var in searchRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		s.fail(c, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	src, err := in.From.endpoint()
	if err != nil {
		s.fail(c, fmt.Errorf("%w: from: %w", errBadRequest, err))
		return
	}
	dst, err := in.To.endpoint()
	if err != nil {
		s.fail(c, fmt.Errorf("%w: to: %w", errBadRequest, err))
		return
	}
	s.search(c, span, in, src, dst)
}

func (s *Server) search(c *gin.Context, span trace.Span, in searchRequest, src, dst world.Endpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.model(in.Mode)
	if err != nil {
		s.fail(c, err)
		return
	}
	span.SetAttributes(attribute.String("mode", in.Mode))

	var opts []astar.Option
	if in.MaxCost > 0 {
		opts = append(opts, astar.WithMaxCost(in.MaxCost))
	}
	e := astar.New(m, opts...)
	source := astar.Source{Tile: src.FrontTile(), Dir: src.Orientation()}
	if err := e.Init([]astar.Source{source}, []world.Tile{dst.FrontTile()}, world.Occupied(src, dst).Slice()); err != nil {
		s.fail(c, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	res, err := e.Step(s.cfg.MaxIterations)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.expanded.WithLabelValues(in.Mode).Observe(float64(res.Expanded))
	out := searchResponse{Status: statusName(res.Status), Expanded: res.Expanded, Tiles: []world.Tile{}}
	if res.Path != nil {
		out.Cost = res.Path.Cost()
		out.Tiles = res.Path.Tiles()
	}
	code := http.StatusOK
	if res.Status != astar.StatusSucceeded {
		code = http.StatusUnprocessableEntity
	}
	c.JSON(code, out)
}
