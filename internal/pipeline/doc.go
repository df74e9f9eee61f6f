// Package pipeline runs the S-phase analysis end to end.
//
// A run is a fixed sequence of synchronous stages over a shared state:
// fetch the raw table, normalize it onto the submission contract,
// reshape to long form, clean values, split timestamps, aggregate into
// replicates, estimate the population percentage, and compose the plot
// specifications. Each stage executes inside its own tracing span and
// records its row flow, so the run report shows exactly where rows were
// lost.
//
// Dataset sizes are classroom scale and a run finishes in well under a
// second after the fetch, so there is no concurrency here: one run, one
// goroutine, stages in order.
package pipeline
