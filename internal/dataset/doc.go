// Package dataset turns the raw crowd-sourced sheet into a clean, dated,
// long-form table of observations.
//
// # Stages
//
// The package provides the four reshaping stages of the pipeline, applied
// in order:
//
//  1. Normalizer: maps source columns onto the timestamp/group/manual/
//     automated contract by named-column lookup (positional fallback only
//     for an exactly 4-column sheet) and drops rows with null cells
//  2. Reshape: unpivots the two method columns into one row per
//     (submission, method) pair, stripping whitespace from value tokens
//  3. Cleaner: coerces values to numbers and keeps only the open interval
//     (0, 100), dropping boundary and out-of-range entries
//  4. TemporalSplitter: decomposes DD-MM-YYYY HH:MM:SS timestamps into
//     day/month/year integers, dropping rows that do not parse
//
// # Data loss policy
//
// Per-row failures never abort a run. Every excluded row is tallied by
// reason in a CleanReport so the loss is inspectable afterwards; only an
// unmappable schema is fatal here.
package dataset
