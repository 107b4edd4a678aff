package join

import (
	"context"
	"log/slog"
	"sync"
)

// workItem is one unit of pooled work: score every qualifying pair for a
// single query index against the current round's index. It is handed to
// exactly one worker; pairs are valid once done is closed.
type workItem struct {
	query      int
	pairs      []Pair
	candidates int
	done       chan struct{}
}

// workerPool runs a fixed set of workers over a buffered work channel,
// the buffer giving submission a little pipelining headroom before
// backpressure kicks in.
type workerPool struct {
	workCh chan *workItem
	wg     sync.WaitGroup
}

func newWorkerPool(numWorkers int, log *slog.Logger, score func(*workItem)) *workerPool {
	p := &workerPool{
		workCh: make(chan *workItem, numWorkers*2),
	}
	p.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go p.worker(log, score)
	}
	return p
}

func (p *workerPool) worker(log *slog.Logger, score func(*workItem)) {
	defer p.wg.Done()
	for item := range p.workCh {
		p.run(log, score, item)
	}
}

// run executes one item. A panicking score (malformed sketch) yields an
// empty result for that query instead of taking down the pool.
func (p *workerPool) run(log *slog.Logger, score func(*workItem), item *workItem) {
	defer func() {
		if r := recover(); r != nil {
			item.pairs = nil
			log.Warn("query scoring failed, emitting empty result",
				"query", item.query,
				"panic", r,
			)
		}
		close(item.done)
	}()
	score(item)
}

// submit enqueues an item, blocking while the pool is saturated.
func (p *workerPool) submit(ctx context.Context, item *workItem) error {
	select {
	case p.workCh <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close stops accepting work and waits for in-flight items to finish.
func (p *workerPool) close() {
	close(p.workCh)
	p.wg.Wait()
}
