package server

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/tileroute/astar"
	"github.com/katalvlaran/tileroute/infra"
	"github.com/katalvlaran/tileroute/route"
	"github.com/katalvlaran/tileroute/waterroute"
	"github.com/katalvlaran/tileroute/world"
)

// endpointJSON is the wire form of a world.Endpoint.
type endpointJSON struct {
	Kind   string `json:"kind,omitempty"` // point (default), dock or station
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Facing string `json:"facing,omitempty"`
	Width  int    `json:"width,omitempty"`
	Length int    `json:"length,omitempty"`
}

func (e endpointJSON) endpoint() (world.Endpoint, error) {
	at := world.T(e.X, e.Y)
	facing, err := world.ParseDirection(e.Facing)
	if err != nil {
		return nil, err
	}
	switch e.Kind {
	case "", "point":
		return world.Point{At: at}, nil
	case "dock":
		if facing == world.DirNone {
			return nil, fmt.Errorf("%w: dock needs a facing", errBadRequest)
		}
		return world.Dock{At: at, Facing: facing}, nil
	case "station":
		if facing == world.DirNone {
			return nil, fmt.Errorf("%w: station needs a facing", errBadRequest)
		}
		return world.Station{At: at, Facing: facing, Width: e.Width, Length: e.Length}, nil
	}
	return nil, fmt.Errorf("%w: endpoint kind %q", errBadRequest, e.Kind)
}

type planRequest struct {
	From      endpointJSON `json:"from"`
	To        endpointJSON `json:"to"`
	MaxLength int          `json:"max_length"`
	MaxParts  int          `json:"max_parts"`
	Canals    *bool        `json:"canals"`
}

type planResponse struct {
	ID       uuid.UUID        `json:"id"`
	Route    *route.Route     `json:"route"`
	Estimate world.Money      `json:"estimate"`
	Stats    waterroute.Stats `json:"stats"`
}

type commitRequest struct {
	RouteID string `json:"route_id"`
}

type commitResponse struct {
	ID     uuid.UUID    `json:"id"`
	Report infra.Report `json:"report"`
	Buoys  []world.Tile `json:"buoys"`
}

type searchRequest struct {
	Mode    string       `json:"mode"`
	From    endpointJSON `json:"from"`
	To      endpointJSON `json:"to"`
	MaxCost int          `json:"max_cost"`
}

type searchResponse struct {
	Status   string       `json:"status"`
	Cost     int          `json:"cost"`
	Tiles    []world.Tile `json:"tiles"`
	Expanded int          `json:"expanded"`
}

type worldResponse struct {
	Width   int         `json:"width"`
	Height  int         `json:"height"`
	Rows    []string    `json:"rows"`
	Balance world.Money `json:"balance"`
	Builds  int         `json:"builds"`
}

type jobView struct {
	ID      uuid.UUID        `json:"id"`
	Status  string           `json:"status"`
	Stats   waterroute.Stats `json:"stats"`
	RouteID *uuid.UUID       `json:"route_id,omitempty"`
	Error   string           `json:"error,omitempty"`
	Created time.Time        `json:"created"`
}

func statusName(s astar.Status) string {
	switch s {
	case astar.StatusSucceeded:
		return "found"
	case astar.StatusNoPath:
		return "no_path"
	case astar.StatusSearching:
		return "pending"
	}
	return "idle"
}
