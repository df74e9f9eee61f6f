// Package sphase turns cleaned observations into the replicate dataset,
// the per-replicate summary table, and the population estimate of the
// percentage of cells in S phase.
//
// # Two-Stage Estimation
//
// Submissions from the same year and group are technical replicates of
// one independent replicate. Stage one collapses each replicate to the
// mean of its manual counts. Stage two treats those replicate means as
// the samples: the population estimate is their mean, spread, and a 95%
// confidence interval from Student's t distribution with N-1 degrees of
// freedom, where N is the number of replicates rather than the number
// of rows.
//
// The standard error divides the standard deviation by sqrt(N-1), not
// sqrt(N). Reports published under this protocol use that convention
// and it is preserved here.
//
// # Artifacts
//
// Finished runs persist four artifacts: replicates.csv (the cleaned
// manual rows at full precision), replicate_summary.csv, a JSON
// document combining the estimate with run metadata and the cleaning
// report, and a plain-text run report. The CSV artifacts can be loaded
// back with LoadReplicateRows to re-run the estimation without touching
// the original source.
package sphase
