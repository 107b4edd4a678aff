// Package fasta streams FASTA input as bounded memory chunks.
//
// The reader stage fills fixed-capacity chunks drawn from a bounded pool
// and places them on a bounded queue; the consumer parses records out of
// each chunk and returns it to the pool. Pool and queue capacities bound
// total ingestion memory regardless of input size, and the queue provides
// backpressure between the reader and downstream sketching.
//
// Chunks always end on record boundaries: a chunk holds one or more
// complete FASTA records, never a partial one.
package fasta
