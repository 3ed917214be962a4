package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/tileroute/config"
	"github.com/katalvlaran/tileroute/gridworld"
	"github.com/katalvlaran/tileroute/infra"
	"github.com/katalvlaran/tileroute/routestore"
	"github.com/katalvlaran/tileroute/scheduler"
	"github.com/katalvlaran/tileroute/waterroute"
)

// errBadRequest marks client mistakes caught before any planning.
var errBadRequest = errors.New("server: bad request")

// Server holds the world and serves the HTTP API.
type Server struct {
	cfg     config.Config
	log     *slog.Logger
	store   *routestore.Store
	metrics *metrics
	tracer  trace.Tracer
	router  *gin.Engine

	mu    sync.Mutex // guards world, sched and jobs
	world *gridworld.Grid
	sched *scheduler.Scheduler
	jobs  map[uuid.UUID]*asyncJob
}

// New wires a Server around g and store. A nil logger discards logs.
func New(cfg config.Config, g *gridworld.Grid, store *routestore.Store, log *slog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		cfg:     cfg,
		log:     log,
		store:   store,
		metrics: newMetrics(),
		tracer:  otel.Tracer("github.com/katalvlaran/tileroute/server"),
		world:   g,
		jobs:    make(map[uuid.UUID]*asyncJob),
	}
	sched, err := scheduler.New(
		scheduler.WithBudget(cfg.TickBudget),
		scheduler.WithOnDone(s.jobDone),
	)
	if err != nil {
		return nil, err
	}
	s.sched = sched
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() *gin.Engine {
	gin.SetMode(s.cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))

	cc := cors.DefaultConfig()
	if slices.Contains(s.cfg.CORSOrigins, "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = s.cfg.CORSOrigins
	}
	cc.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	r.Use(cors.New(cc))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.reg, promhttp.HandlerOpts{})))

	v1 := r.Group("/v1")
	v1.GET("/world", s.handleWorld)
	v1.GET("/world.png", s.handleWorldPNG)
	v1.POST("/routes/plan", s.handlePlan)
	v1.POST("/routes/commit", s.handleCommit)
	v1.GET("/routes", s.handleListRoutes)
	v1.GET("/routes/:id", s.handleGetRoute)
	v1.POST("/search", s.handleSearch)
	v1.POST("/jobs", s.handleSubmitJob)
	v1.GET("/jobs/:id", s.handleGetJob)
	v1.DELETE("/jobs/:id", s.handleCancelJob)
	return r
}

// requestLogger logs one line per request through slog.
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.LogAttrs(c.Request.Context(), slog.LevelInfo, "request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// Tick advances asynchronous jobs by one scheduler tick.
func (s *Server) Tick() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.sched.Tick()
	s.metrics.ticks.Inc()
	s.metrics.jobsLive.Set(float64(s.sched.Len()))
	return n
}

// Run serves on cfg.Addr and ticks the scheduler until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go s.tickLoop(ctx)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("listening", slog.String("addr", s.cfg.Addr))

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdown)
	}
}

func (s *Server) tickLoop(ctx context.Context) {
	t := time.NewTicker(s.cfg.TickInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Tick()
		}
	}
}

// httpStatus maps domain errors to response codes.
func httpStatus(err error) int {
	var ce *infra.CommitError
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, waterroute.ErrInputInvalid),
		errors.Is(err, waterroute.ErrOptionViolation):
		return http.StatusBadRequest
	case errors.Is(err, routestore.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &ce):
		return http.StatusConflict
	case errors.Is(err, waterroute.ErrNoRoute), errors.Is(err, waterroute.ErrBudgetExceeded),
		errors.Is(err, infra.ErrUnbuildable):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(c *gin.Context, err error) {
	code := httpStatus(err)
	if code >= http.StatusInternalServerError {
		s.log.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	}
	c.JSON(code, gin.H{"error": err.Error()})
}
