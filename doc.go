// Package sketchdist estimates pairwise distances between large collections
// of biological sequences without alignment.
//
// Each sequence is summarized as a bottom-k MinHash sketch of its k-mer
// hashes. Similarity between two sequences is estimated from sketch overlap:
// a bounded sorted-merge produces a Jaccard estimate, which is converted to
// a mutation-rate distance and filtered by a binomial significance test.
// An inverted hash index restricts scoring to pairs that share at least one
// hash value, so the all-vs-all join never pays the full quadratic cost.
//
// # Quick Start
//
//	coll, _ := sketch.FromFasta(ctx, "proteins.fasta", sketch.DefaultParameters())
//
//	eng, _ := sketchdist.Pairwise().
//	    MaxDistance(0.5).
//	    MaxPValue(1e-10).
//	    Workers(8).
//	    Build()
//
//	stats, _ := eng.Run(ctx, coll, join.NewTupleWriter(os.Stdout))
//
// # Memory Model
//
// The reference collection is partitioned into rounds sized so that one
// round's inverted index stays within a fixed slot budget. The index is
// rebuilt per round and shared read-only by a fixed pool of workers;
// results are drained in query order so output buffering stays bounded
// by the worker count.
package sketchdist
