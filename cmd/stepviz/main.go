// Command stepviz streams an A* search over a websocket, one slice at a time,
// so a client can watch the closed set and frontier grow.
//
// Usage:
//
//	stepviz -map harbour.map -addr :8090
//
// Connect to /ws?mode=water&from=3,4&to=20,9 and send {"op":"step","n":50}
// to advance; every reply is a snapshot. {"op":"init"} restarts the search.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/katalvlaran/tileroute/astar"
	"github.com/katalvlaran/tileroute/costmodel"
	"github.com/katalvlaran/tileroute/gridworld"
	"github.com/katalvlaran/tileroute/world"
)

var errBadQuery = errors.New("stepviz: bad query")

// command is a client message.
type command struct {
	Op string `json:"op"` // init or step
	N  int    `json:"n"`
}

// snapshot is the state sent after every command.
type snapshot struct {
	Status   string       `json:"status"`
	Expanded int          `json:"expanded"`
	Closed   []world.Tile `json:"closed"`
	Frontier []world.Tile `json:"frontier"`
	Path     []world.Tile `json:"path,omitempty"`
	Cost     int          `json:"cost,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// session is one search driven by one connection.
type session struct {
	e      *astar.Engine
	source astar.Source
	goal   world.Tile
}

func (s *session) init() error {
	return s.e.Init([]astar.Source{s.source}, []world.Tile{s.goal}, nil)
}

func (s *session) snapshot() snapshot {
	res := s.e.Result()
	out := snapshot{
		Status:   strings.ToLower(res.Status.String()),
		Expanded: s.e.Expanded(),
		Closed:   s.e.ClosedTiles(),
		Frontier: s.e.Frontier(),
	}
	if res.Path != nil {
		out.Path = res.Path.Tiles()
		out.Cost = res.Path.Cost()
	}
	return out
}

type app struct {
	grid *gridworld.Grid
	log  *slog.Logger
	up   websocket.Upgrader
}

func newApp(g *gridworld.Grid, log *slog.Logger) *app {
	return &app{
		grid: g,
		log:  log,
		up:   websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

func (a *app) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/map", a.handleMap).Methods(http.MethodGet)
	r.HandleFunc("/ws", a.handleWS).Methods(http.MethodGet)
	return r
}

func (a *app) handleMap(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a.grid.ASCII())
}

// newSession builds a search from the query string.
func (a *app) newSession(q map[string][]string) (*session, error) {
	get := func(k string) string {
		if v := q[k]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	from, err := parseTile(get("from"))
	if err != nil {
		return nil, err
	}
	to, err := parseTile(get("to"))
	if err != nil {
		return nil, err
	}
	var m astar.Model
	switch mode := get("mode"); mode {
	case "", "water":
		m = costmodel.NewWater(a.grid)
	case "canal":
		m = costmodel.NewCanal(a.grid, costmodel.DefaultCanalConfig())
	case "road":
		m = costmodel.NewRoad(a.grid, costmodel.DefaultRoadConfig())
	case "rail":
		m = costmodel.NewRail(a.grid, costmodel.DefaultRailConfig())
	default:
		return nil, fmt.Errorf("%w: mode %q", errBadQuery, mode)
	}
	s := &session{e: astar.New(m), source: astar.Source{Tile: from}, goal: to}
	return s, s.init()
}

func (a *app) handleWS(w http.ResponseWriter, r *http.Request) {
	s, err := a.newSession(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	conn, err := a.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	a.log.Info("session opened", slog.String("remote", r.RemoteAddr))

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			a.log.Info("session closed", slog.String("remote", r.RemoteAddr))
			return
		}
		var cmd command
		var out snapshot
		if err := json.Unmarshal(msg, &cmd); err != nil {
			out = snapshot{Error: err.Error()}
		} else {
			out = a.apply(s, cmd)
		}
		b, _ := json.Marshal(out)
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			return
		}
	}
}

func (a *app) apply(s *session, cmd command) snapshot {
	var err error
	switch cmd.Op {
	case "init":
		err = s.init()
	case "step":
		if s.e.Status().Terminal() {
			break
		}
		_, err = s.e.Step(max(cmd.N, 1))
	default:
		err = fmt.Errorf("%w: op %q", errBadQuery, cmd.Op)
	}
	out := s.snapshot()
	if err != nil {
		out.Error = err.Error()
	}
	return out
}

// parseTile reads "x,y".
func parseTile(s string) (world.Tile, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return world.Tile{}, fmt.Errorf("%w: tile %q", errBadQuery, s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if errX != nil || errY != nil {
		return world.Tile{}, fmt.Errorf("%w: tile %q", errBadQuery, s)
	}
	return world.T(x, y), nil
}

func main() {
	addr := flag.String("addr", ":8090", "listen address")
	mapFile := flag.String("map", "", "ASCII map file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if *mapFile == "" {
		log.Error("missing -map")
		os.Exit(2)
	}
	g, err := gridworld.LoadFile(*mapFile, gridworld.DefaultOptions())
	if err != nil {
		log.Error("load map", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("listening", slog.String("addr", *addr))
	if err := http.ListenAndServe(*addr, newApp(g, log).router()); err != nil {
		log.Error("serve", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
