// Package blobstore abstracts where sketch files live.
//
// Sketch files are small immutable blobs that are read and written whole,
// so the interface is deliberately coarse: Fetch returns a read handle to
// a complete blob, Put replaces one atomically. Implementations exist for
// the local file system (memory-mapped), process memory (tests), Amazon
// S3 and MinIO.
package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for accessing immutable sketch blobs.
type Store interface {
	// Fetch opens a blob for reading.
	Fetch(ctx context.Context, name string) (Blob, error)

	// Put writes a blob atomically, replacing any existing blob of the
	// same name.
	Put(ctx context.Context, name string, data []byte) error

	// List returns the names of all blobs with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to one complete blob.
type Blob interface {
	io.Closer

	// Bytes returns the blob contents. The slice is valid until Close;
	// implementations may return memory-mapped data.
	Bytes() []byte

	// Size returns the blob size in bytes.
	Size() int64
}

// bytesBlob is a Blob over an in-memory byte slice.
type bytesBlob struct {
	data []byte
}

func (b *bytesBlob) Bytes() []byte { return b.data }
func (b *bytesBlob) Size() int64   { return int64(len(b.data)) }
func (b *bytesBlob) Close() error  { return nil }
