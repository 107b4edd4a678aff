package sketch

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/sketchdist/fasta"
)

// FromFasta streams the FASTA file at path (plain or gzipped, "-" for
// stdin) and sketches every record into a new collection.
func FromFasta(ctx context.Context, path string, params Parameters) (*Collection, error) {
	rc, err := fasta.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return FromReader(ctx, rc, params)
}

// FromReader sketches FASTA records from r into a new collection.
//
// Ingestion runs as a two-stage pipeline: a reader goroutine fills chunks
// from a bounded pool onto a bounded queue, and the consumer parses and
// sketches each chunk before recycling it. Records keep input order
// because chunks are consumed in queue order by a single sketcher.
func FromReader(ctx context.Context, r io.Reader, params Parameters) (*Collection, error) {
	coll, err := NewCollection(params)
	if err != nil {
		return nil, err
	}
	sketcher, err := NewSketcher(params)
	if err != nil {
		return nil, err
	}

	pool := fasta.NewPool(fasta.DefaultPoolSize, fasta.DefaultChunkSize)
	chunks := make(chan *fasta.Chunk, fasta.DefaultPoolSize)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chunks)
		return fasta.StreamChunks(ctx, r, pool, chunks)
	})

	g.Go(func() error {
		for chunk := range chunks {
			err := fasta.ParseChunk(chunk, func(rec fasta.Record) error {
				coll.Add(sketcher.Sketch(rec.ID, rec.Seq))
				return nil
			})
			pool.Put(chunk)
			if err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return coll, nil
}
