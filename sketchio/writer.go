package sketchio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/sketchdist/blobstore"
	"github.com/hupe1980/sketchdist/sketch"
)

// Save encodes the collection and stores it under name. Hash values are
// written in 4 bytes when the k-mer space fits 32 bits, 8 bytes
// otherwise, then the whole record section goes through an lz4 frame.
func Save(ctx context.Context, store blobstore.Store, name string, coll *sketch.Collection) error {
	payload, err := encodeRecords(coll)
	if err != nil {
		return err
	}

	params := coll.Params()
	h := header{
		kmerSize:   params.KmerSize,
		sketchSize: params.SketchSize,
		count:      uint64(coll.Len()),
		crc:        crc32.ChecksumIEEE(payload),
		alphabet:   params.Alphabet.Name(),
	}
	if params.PreserveCase {
		h.flags |= flagPreserveCase
	}
	if coll.Use64() {
		h.flags |= flagUse64
	}

	var buf bytes.Buffer
	buf.Write(h.encode())

	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(payload); err != nil {
		return fmt.Errorf("compress records: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress records: %w", err)
	}

	return store.Put(ctx, name, buf.Bytes())
}

func encodeRecords(coll *sketch.Collection) ([]byte, error) {
	use64 := coll.Use64()

	var buf bytes.Buffer
	var scratch [8]byte

	for i := 0; i < coll.Len(); i++ {
		rec := coll.Record(i)
		if len(rec.Name) > 1<<16-1 {
			return nil, fmt.Errorf("record %d: name exceeds %d bytes", i, 1<<16-1)
		}

		binary.LittleEndian.PutUint16(scratch[:2], uint16(len(rec.Name)))
		buf.Write(scratch[:2])
		buf.WriteString(rec.Name)

		binary.LittleEndian.PutUint64(scratch[:8], rec.Length)
		buf.Write(scratch[:8])

		binary.LittleEndian.PutUint32(scratch[:4], uint32(len(rec.Hashes)))
		buf.Write(scratch[:4])

		for _, v := range rec.Hashes {
			if use64 {
				binary.LittleEndian.PutUint64(scratch[:8], v)
				buf.Write(scratch[:8])
			} else {
				binary.LittleEndian.PutUint32(scratch[:4], uint32(v))
				buf.Write(scratch[:4])
			}
		}
	}
	return buf.Bytes(), nil
}
