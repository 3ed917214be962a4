// Package tileroute plans and builds transport routes on a tile world:
// ship lanes with canals, locks and aqueducts, plus road and rail paths.
//
// 🚀 What is tileroute?
//
//	A resumable route engine that brings together:
//		• A* search you can slice into small budgets and resume
//		• Cost models per mode: coast, canal, road, rail
//		• A water planner that traces the straight corridor, follows the
//		  coast around obstacles and digs a canal only when it must
//		• Infrastructure planning with dry-run pricing and idempotent commit
//		• Buoy placement, a cooperative job scheduler and an HTTP service
//
// Packages, leaves first:
//
//	world/      - tiles, directions, terrain, endpoints and the world interfaces
//	gridworld/  - in-memory world with dry runs, basins and an ASCII map format
//	astar/      - resumable best-first search over a Model
//	costmodel/  - Water, Canal, Road and Rail models
//	linetrace/  - corridor tracing and span decomposition
//	route/      - route segments, infrastructure items, validation
//	infra/      - item planning, estimates and commit
//	waterroute/ - the water route planner and its resumable Job
//	buoy/       - buoy placement along a route
//	scheduler/  - round-robin time slicing of resumable jobs
//	routestore/ - planned routes kept in badger
//	render/     - PNG maps
//	config/     - service settings
//	server/     - JSON API
//
// Quick ASCII example, an isthmus between two seas:
//
//	~~~III~~~        ~~~III~~~
//	~~~...~~~   →    ~~~LcL~~~
//	~~~III~~~        ~~~III~~~
//
// is planned as one canal segment with a lock at each end.
//
//	go run ./cmd/tileroute-server
package tileroute
