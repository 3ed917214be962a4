// Command tileroute-server serves the route planner over HTTP.
//
// Settings come from .env and TILEROUTE_* variables; see package config.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/tileroute/config"
	"github.com/katalvlaran/tileroute/gridworld"
	"github.com/katalvlaran/tileroute/routestore"
	"github.com/katalvlaran/tileroute/server"
	"github.com/katalvlaran/tileroute/world"
)

// demoMap is served when no MAP_FILE is configured: two seas split by a
// narrow isthmus, a river inlet and some woodland.
var demoMap = []string{
	"~~~~~~~~~~~~..TT...~~~~~~~~~~~~~",
	"~~~~~~~~~~~~..TT...~~~~~~~~~~~~~",
	"~~~~..~~~~~~~.....~~~~~~~~..~~~~",
	"~~~.22.~~~~~~..H..~~~~~~~.22.~~~",
	"~~~~..~~~~~~~.....~~~~~~~~..~~~~",
	"~~~~~~~~~~~~~~III~~~~~~~~~~~~~~~",
	"~~~~~~~~~~~~~~III~~~~~~~~~~~~~~~",
	"~~~~~~~~~~~~~.....~~~~~~~~~~~~~~",
	"rrrrrrrrrr....TT...rrrrrr~~~~~~~",
	"..........2222.....~~~~~~~~~~~~~",
	"..........2222.....~~~~~~~~~~~~~",
	"~~~~~~~~~~.........~~~~~~~~~~~~~",
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	opts := gridworld.DefaultOptions()
	opts.Company = world.Owner(cfg.Company)
	if cfg.Balance > 0 {
		opts.Unlimited = false
		opts.Balance = world.Money(cfg.Balance)
	}
	var (
		g   *gridworld.Grid
		err error
	)
	if cfg.MapFile != "" {
		g, err = gridworld.LoadFile(cfg.MapFile, opts)
	} else {
		g, err = gridworld.FromASCII(demoMap, opts)
	}
	if err != nil {
		return err
	}
	w, h := g.Size()
	log.Info("world loaded", slog.Int("width", w), slog.Int("height", h), slog.String("file", cfg.MapFile))

	store, err := routestore.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	srv, err := server.New(cfg, g, store, log)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
