package join

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/sketchdist/sketch"
)

// Options configures a Runner.
type Options struct {
	// Workers is the number of parallel scoring workers.
	// Defaults to GOMAXPROCS.
	Workers int

	// SlotBudget is the target inverted-index slot count per round.
	SlotBudget uint64

	// Thresholds are the pair acceptance limits.
	Thresholds Thresholds

	// Logger receives structured progress and diagnostics. Nil disables
	// logging.
	Logger *slog.Logger

	// Metrics receives operational counters. Nil disables collection.
	Metrics MetricsCollector

	// ProgressInterval throttles per-query progress logging.
	ProgressInterval time.Duration
}

// DefaultOptions returns the default runner configuration: all pairs
// reported (both thresholds at 1), default slot budget, GOMAXPROCS
// workers.
func DefaultOptions() Options {
	return Options{
		SlotBudget:       DefaultSlotBudget,
		Thresholds:       Thresholds{MaxDistance: 1.0, MaxPValue: 1.0},
		ProgressInterval: 5 * time.Second,
	}
}

// Runner executes the all-vs-all join over one collection.
type Runner struct {
	coll    *sketch.Collection
	opts    Options
	log     *slog.Logger
	metrics MetricsCollector
}

// NewRunner creates a runner for the given collection.
func NewRunner(coll *sketch.Collection, optFns ...func(*Options)) (*Runner, error) {
	if coll == nil || coll.Len() == 0 {
		return nil, fmt.Errorf("join: collection is empty")
	}

	opts := DefaultOptions()
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.SlotBudget == 0 {
		opts.SlotBudget = DefaultSlotBudget
	}
	if opts.ProgressInterval <= 0 {
		opts.ProgressInterval = 5 * time.Second
	}
	if d := opts.Thresholds.MaxDistance; d < 0 || d > 1 {
		return nil, fmt.Errorf("join: max distance %g out of range [0,1]", d)
	}
	if p := opts.Thresholds.MaxPValue; p < 0 || p > 1 {
		return nil, fmt.Errorf("join: max p-value %g out of range [0,1]", p)
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(DiscardHandler{})
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	return &Runner{coll: coll, opts: opts, log: log, metrics: metrics}, nil
}

// Run executes every round sequentially and streams results to w.
//
// Per round, work is submitted one query index at a time in ascending
// order; after each submission any already-completed results at the head
// of the pending queue are drained to the writer, and once the round's
// submissions are exhausted the remaining items are drained in order.
// Pending results are additionally capped near the worker count, so
// buffered output never grows with the collection.
func (r *Runner) Run(ctx context.Context, w Writer) (Stats, error) {
	if w == nil {
		return Stats{}, fmt.Errorf("join: writer is nil")
	}
	if err := w.Begin(r.coll); err != nil {
		return Stats{}, err
	}

	rounds := PlanRounds(r.coll.Len(), r.coll.SketchSize(), r.opts.SlotBudget)
	stats := Stats{Rounds: len(rounds)}

	progress := rate.NewLimiter(rate.Every(r.opts.ProgressInterval), 1)
	maxPending := r.opts.Workers*2 + 2

	for ri, round := range rounds {
		log := r.log.With("round", ri+1, "rounds", len(rounds))
		log.Info("building index", "start", round.Start, "end", round.End)

		buildStart := time.Now()
		ix := buildIndex(r.coll, round)
		r.metrics.RecordRound(round, len(ix.slots), time.Since(buildStart))

		occ := ix.occupancy(r.opts.SlotBudget)
		log.Info("index occupancy",
			"mean", occ.Mean,
			"stddev", occ.Stddev,
			"min", occ.Min,
			"max", occ.Max,
			"empty_pct", occ.EmptyPct,
		)

		pool := newWorkerPool(r.opts.Workers, log, func(item *workItem) {
			item.pairs, item.candidates = r.scoreQuery(ix, item.query)
		})

		var pending []*workItem
		drainOne := func(block bool) (bool, error) {
			item := pending[0]
			if !block {
				select {
				case <-item.done:
				default:
					return false, nil
				}
			} else {
				select {
				case <-item.done:
				case <-ctx.Done():
					return false, ctx.Err()
				}
			}
			pending = pending[1:]
			stats.Candidates += int64(item.candidates)
			stats.Accepted += int64(len(item.pairs))
			return true, w.Write(r.coll, Result{Query: item.query, Pairs: item.pairs})
		}

		runErr := func() error {
			for q := round.Start + 1; q < r.coll.Len(); q++ {
				item := &workItem{query: q, done: make(chan struct{})}
				if err := pool.submit(ctx, item); err != nil {
					return err
				}
				pending = append(pending, item)
				stats.Queries++

				if progress.Allow() {
					log.Info("scoring", "query", q, "of", r.coll.Len())
				}

				for len(pending) > 0 {
					ok, err := drainOne(len(pending) >= maxPending)
					if err != nil {
						return err
					}
					if !ok {
						break
					}
				}
			}
			for len(pending) > 0 {
				if _, err := drainOne(true); err != nil {
					return err
				}
			}
			return nil
		}()

		pool.close()
		if runErr != nil {
			return stats, runErr
		}
	}

	return stats, w.Flush()
}

// scoreQuery generates candidates for one query against the round index
// and estimates every candidate pair.
func (r *Runner) scoreQuery(ix *invertedIndex, q int) ([]Pair, int) {
	cands := candidates(r.coll, ix, q)

	var pairs []Pair
	it := cands.Iterator()
	for it.HasNext() {
		ref := int(it.Next())
		p, ok := compareSketches(
			r.coll.Record(ref),
			r.coll.Record(q),
			r.coll.SketchSize(),
			r.coll.KmerSize(),
			r.coll.KmerSpace(),
			r.opts.Thresholds,
		)
		if !ok {
			continue
		}
		p.Query = q
		p.Ref = ref
		pairs = append(pairs, p)
	}

	r.metrics.RecordQuery(int(cands.GetCardinality()), len(pairs))
	return pairs, int(cands.GetCardinality())
}

// DiscardHandler drops every record. It is the single no-logging path,
// used by the runner when no logger is configured and by the root
// package's NoopLogger.
type DiscardHandler struct{}

func (DiscardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (DiscardHandler) Handle(context.Context, slog.Record) error { return nil }
func (DiscardHandler) WithAttrs([]slog.Attr) slog.Handler        { return DiscardHandler{} }
func (DiscardHandler) WithGroup(string) slog.Handler             { return DiscardHandler{} }
