// Package join implements the all-vs-all sketch similarity join.
//
// The reference collection is split into memory-bounded rounds. For each
// round an inverted hash index is built over the round's sketches, then a
// fixed worker pool scores one query index per work item: candidate
// references are collected from the index (pairs sharing no hash are never
// scored), each candidate pair is estimated with a bounded sorted-merge
// Jaccard, converted to a mutation distance, and filtered by a binomial
// significance test. Results are drained in submission order, so output
// query indices are non-decreasing within a round and buffering stays
// bounded by the worker count.
package join
