package fasta

import "context"

// DefaultChunkSize is the target payload size of one chunk in bytes.
const DefaultChunkSize = 1 << 20

// DefaultPoolSize is the number of chunks in flight between the reader
// and the consumer.
const DefaultPoolSize = 8

// Chunk is a window of the input holding one or more complete FASTA
// records. Start and End are byte offsets of the window within the
// (decompressed) input stream; NSeqs counts the records it contains.
type Chunk struct {
	Data  []byte
	Start int64
	End   int64
	NSeqs int
}

func (c *Chunk) reset() {
	c.Data = c.Data[:0]
	c.Start = 0
	c.End = 0
	c.NSeqs = 0
}

// Pool is a bounded pool of reusable chunks. Get blocks while all chunks
// are checked out, which caps reader memory and throttles it against the
// consumer.
type Pool struct {
	ch chan *Chunk
}

// NewPool creates a pool of n chunks with the given initial capacity each.
func NewPool(n, chunkCap int) *Pool {
	if n <= 0 {
		n = DefaultPoolSize
	}
	if chunkCap <= 0 {
		chunkCap = DefaultChunkSize
	}
	p := &Pool{ch: make(chan *Chunk, n)}
	for i := 0; i < n; i++ {
		p.ch <- &Chunk{Data: make([]byte, 0, chunkCap)}
	}
	return p
}

// Get checks a chunk out of the pool, blocking until one is available or
// the context is cancelled.
func (p *Pool) Get(ctx context.Context) (*Chunk, error) {
	select {
	case c := <-p.ch:
		c.reset()
		return c, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Put returns a chunk to the pool. Putting back a chunk that did not come
// from the pool grows it; callers should not do that.
func (p *Pool) Put(c *Chunk) {
	select {
	case p.ch <- c:
	default:
	}
}
