package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// maxLine allows very long single-line sequences.
const maxLine = 64 * 1024 * 1024

// Open opens a FASTA file for streaming. "-" reads stdin. Gzip input is
// detected by its magic bytes and decompressed transparently.
func Open(path string) (io.ReadCloser, error) {
	var rc io.ReadCloser
	if path == "-" {
		rc = io.NopCloser(os.Stdin)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		rc = f
	}

	br := bufio.NewReaderSize(rc, 1<<16)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("open gzip: %w", err)
		}
		return &gzReadCloser{gz: gz, inner: rc}, nil
	}
	return &bufReadCloser{br: br, inner: rc}, nil
}

type gzReadCloser struct {
	gz    *gzip.Reader
	inner io.Closer
}

func (g *gzReadCloser) Read(p []byte) (int, error) { return g.gz.Read(p) }
func (g *gzReadCloser) Close() error {
	gerr := g.gz.Close()
	if err := g.inner.Close(); err != nil {
		return err
	}
	return gerr
}

type bufReadCloser struct {
	br    *bufio.Reader
	inner io.Closer
}

func (b *bufReadCloser) Read(p []byte) (int, error) { return b.br.Read(p) }
func (b *bufReadCloser) Close() error               { return b.inner.Close() }

// StreamChunks reads FASTA from r and emits record-aligned chunks drawn
// from pool onto out. A chunk is emitted once appending the next record
// would exceed the chunk's target capacity. The caller owns closing out
// after StreamChunks returns.
func StreamChunks(ctx context.Context, r io.Reader, pool *Pool, out chan<- *Chunk) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	chunk, err := pool.Get(ctx)
	if err != nil {
		return err
	}
	target := cap(chunk.Data)
	var offset int64

	flush := func() error {
		if chunk.NSeqs == 0 {
			return nil
		}
		chunk.End = offset
		select {
		case out <- chunk:
		case <-ctx.Done():
			return ctx.Err()
		}
		chunk, err = pool.Get(ctx)
		if err != nil {
			return err
		}
		chunk.Start = offset
		return nil
	}

	inRecord := false
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			// Record boundary: safe place to cut the chunk.
			if inRecord && len(chunk.Data)+len(line) > target {
				if err := flush(); err != nil {
					return err
				}
			}
			chunk.NSeqs++
			inRecord = true
		} else if !inRecord {
			return fmt.Errorf("fasta: sequence data before first header at byte %d", offset)
		}
		chunk.Data = append(chunk.Data, line...)
		chunk.Data = append(chunk.Data, '\n')
		offset += int64(len(line)) + 1
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	if chunk.NSeqs > 0 {
		chunk.End = offset
		select {
		case out <- chunk:
		case <-ctx.Done():
			return ctx.Err()
		}
	} else {
		pool.Put(chunk)
	}
	return nil
}

// Record is one parsed FASTA record. Seq aliases chunk memory and is only
// valid until the chunk is returned to its pool.
type Record struct {
	ID  string
	Seq []byte
}

// ParseChunk splits a chunk into records and calls emit for each.
// Single-line sequences alias chunk memory; wrapped sequences are copied
// into a fresh buffer so the chunk data is never grown over.
func ParseChunk(c *Chunk, emit func(Record) error) error {
	var (
		id    string
		seq   []byte
		owned bool
		began bool
	)
	flush := func() error {
		if !began {
			return nil
		}
		return emit(Record{ID: id, Seq: seq})
	}

	data := c.Data
	for len(data) > 0 {
		nl := bytes.IndexByte(data, '\n')
		var line []byte
		if nl < 0 {
			line, data = data, nil
		} else {
			line, data = data[:nl], data[nl+1:]
		}
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			id = headerID(line[1:])
			seq = nil
			owned = false
			began = true
			continue
		}
		switch {
		case seq == nil:
			seq = line
		case !owned:
			buf := make([]byte, len(seq), len(seq)+len(line))
			copy(buf, seq)
			seq = append(buf, line...)
			owned = true
		default:
			seq = append(seq, line...)
		}
	}
	return flush()
}

// headerID extracts the display name from a header line: everything up to
// the first whitespace.
func headerID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
