// Package server exposes the planners over HTTP with gin.
//
// Routes:
//
//	GET    /healthz             liveness
//	GET    /metrics             prometheus exposition
//	GET    /v1/world            dimensions and ASCII rows
//	GET    /v1/world.png        rendered map, ?scale=N&route=<id>
//	POST   /v1/routes/plan      plan and price a ship route, stored under a new id
//	POST   /v1/routes/commit    build a stored route, then its buoys
//	GET    /v1/routes           stored routes
//	GET    /v1/routes/:id       one stored route
//	POST   /v1/search           single search in water, canal, road or rail mode
//	POST   /v1/jobs             plan asynchronously through the scheduler
//	GET    /v1/jobs/:id         job state
//	DELETE /v1/jobs/:id         cancel a job
//
// The world, the scheduler and the job table share one mutex: searches read
// the world lazily (basin labels are computed on demand) and commits mutate
// it, so every access is serialised. A ticker advances asynchronous jobs by
// TickBudget iterations every TickInterval.
package server
