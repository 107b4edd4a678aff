package fasta

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readRecords(t *testing.T, r io.Reader, poolSize, chunkCap int) []Record {
	t.Helper()

	pool := NewPool(poolSize, chunkCap)
	out := make(chan *Chunk, poolSize)

	errCh := make(chan error, 1)
	go func() {
		defer close(out)
		errCh <- StreamChunks(context.Background(), r, pool, out)
	}()

	var records []Record
	for chunk := range out {
		require.NoError(t, ParseChunk(chunk, func(rec Record) error {
			records = append(records, Record{ID: rec.ID, Seq: append([]byte(nil), rec.Seq...)})
			return nil
		}))
		pool.Put(chunk)
	}
	require.NoError(t, <-errCh)
	return records
}

func TestStreamAndParse(t *testing.T) {
	input := ">seq1 description here\nMKVLWAALLV\n>seq2\nACDEFG\nHIKLMN\n>seq3\nPQRST\n"

	records := readRecords(t, strings.NewReader(input), 4, DefaultChunkSize)
	require.Len(t, records, 3)

	assert.Equal(t, "seq1", records[0].ID, "header is cut at whitespace")
	assert.Equal(t, "MKVLWAALLV", string(records[0].Seq))

	assert.Equal(t, "seq2", records[1].ID)
	assert.Equal(t, "ACDEFGHIKLMN", string(records[1].Seq), "wrapped lines are joined")

	assert.Equal(t, "seq3", records[2].ID)
	assert.Equal(t, "PQRST", string(records[2].Seq))
}

func TestStreamChunksCutsAtRecordBoundaries(t *testing.T) {
	// A chunk capacity much smaller than the input forces cuts; records
	// must never be split across chunks.
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString(">rec")
		sb.WriteByte(byte('0' + i%10))
		sb.WriteString("\nMKVLWAALLVTFLAGCQAMKVLWAALLVTFLAGCQA\n")
	}

	records := readRecords(t, strings.NewReader(sb.String()), 2, 128)
	assert.Len(t, records, 50)
	for _, rec := range records {
		assert.Len(t, rec.Seq, 36)
	}
}

func TestStreamChunksRejectsHeaderlessData(t *testing.T) {
	pool := NewPool(2, DefaultChunkSize)
	out := make(chan *Chunk, 2)

	err := StreamChunks(context.Background(), strings.NewReader("MKVLWA\n"), pool, out)
	assert.Error(t, err)
}

func TestStreamChunksEmptyInput(t *testing.T) {
	records := readRecords(t, strings.NewReader(""), 2, DefaultChunkSize)
	assert.Empty(t, records)
}

func TestParseChunkBlankLines(t *testing.T) {
	input := ">a\nMKV\n\nLWA\n\n>b\nACD\n"
	records := readRecords(t, strings.NewReader(input), 2, DefaultChunkSize)
	require.Len(t, records, 2)
	assert.Equal(t, "MKVLWA", string(records[0].Seq))
	assert.Equal(t, "ACD", string(records[1].Seq))
}

func TestOpenPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.fasta")
	require.NoError(t, os.WriteFile(path, []byte(">a\nMKV\n"), 0o644))

	rc, err := Open(path)
	require.NoError(t, err)
	defer rc.Close()

	records := readRecords(t, rc, 2, DefaultChunkSize)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].ID)
}

func TestOpenGzipFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.fasta.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(">a\nMKVLWA\n>b\nACDEFG\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	rc, err := Open(path)
	require.NoError(t, err)
	defer rc.Close()

	records := readRecords(t, rc, 2, DefaultChunkSize)
	require.Len(t, records, 2)
	assert.Equal(t, "MKVLWA", string(records[0].Seq))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.fasta"))
	assert.Error(t, err)
}

func TestPoolBlocksWhenExhausted(t *testing.T) {
	pool := NewPool(1, 64)

	ctx := context.Background()
	chunk, err := pool.Get(ctx)
	require.NoError(t, err)

	// Second Get must respect cancellation while the pool is empty.
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = pool.Get(cancelled)
	assert.ErrorIs(t, err, context.Canceled)

	pool.Put(chunk)
	got, err := pool.Get(ctx)
	require.NoError(t, err)
	assert.Same(t, chunk, got)
}
