// Package waterroute plans ship routes between two endpoints.
//
// A planning Job runs in three phases:
//
//  1. Decompose: linetrace splits the straight corridor between the front
//     tiles into spans of passable water. Invalid requests fail here, before
//     any search.
//  2. Resolve gaps: for each gap between consecutive spans a coast search
//     (costmodel.Water) runs first with ceiling max(3 × gap, remaining
//     length). If it finds nothing, a canal search (costmodel.Canal) runs
//     with that ceiling times DigCost, excluding the endpoints' occupied
//     tiles. When both fail the job fails and nothing is built.
//  3. Finish: infra.Plan derives the locks and aqueducts, and the route is
//     validated.
//
// Every search is time-sliced: Job.Step spends at most the given number of
// engine iterations and returns, keeping all state for the next call.
// Plan drives a job to completion with Options.StepBudget per call.
//
// Optional world capabilities shorten the work: a world.BasinLabeler lets the
// coast search be skipped when the gap ends lie in different water bodies,
// and a world.DigEstimator lets the canal search be skipped when more than
// MaxCanalTiles tiles would have to be dug.
package waterroute
