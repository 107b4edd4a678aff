package sketchio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"strings"

	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/sketchdist/blobstore"
	"github.com/hupe1980/sketchdist/sketch"
)

// IsSketchName reports whether name looks like a sketch file.
func IsSketchName(name string) bool {
	return strings.HasSuffix(name, Suffix)
}

// Load fetches and decodes a sketch file. Sketching parameters come from
// the file header; the advisory warning threshold is not persisted and
// defaults to sketch.DefaultWarning.
func Load(ctx context.Context, store blobstore.Store, name string) (*sketch.Collection, error) {
	blob, err := store.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	return Decode(blob.Bytes())
}

// Decode parses a sketch file from raw bytes.
func Decode(data []byte) (*sketch.Collection, error) {
	h, n, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}

	alphabet, ok := sketch.AlphabetByName(h.alphabet)
	if !ok {
		return nil, fmt.Errorf("sketchio: unknown alphabet %q", h.alphabet)
	}

	params := sketch.Parameters{
		KmerSize:     h.kmerSize,
		SketchSize:   h.sketchSize,
		PreserveCase: h.preserveCase(),
		Alphabet:     alphabet,
		Warning:      sketch.DefaultWarning,
	}

	coll, err := sketch.NewCollection(params)
	if err != nil {
		return nil, fmt.Errorf("sketchio: invalid header parameters: %w", err)
	}

	payload, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data[n:])))
	if err != nil {
		return nil, fmt.Errorf("sketchio: decompress records: %w", err)
	}
	if crc32.ChecksumIEEE(payload) != h.crc {
		return nil, ErrChecksum
	}

	if err := decodeRecords(coll, payload, h); err != nil {
		return nil, err
	}
	return coll, nil
}

func decodeRecords(coll *sketch.Collection, payload []byte, h *header) error {
	use64 := h.use64()
	hashLen := 4
	if use64 {
		hashLen = 8
	}

	off := 0
	need := func(n int) bool { return off+n <= len(payload) }

	for i := uint64(0); i < h.count; i++ {
		if !need(2) {
			return truncated(i)
		}
		nameLen := int(binary.LittleEndian.Uint16(payload[off:]))
		off += 2

		if !need(nameLen + 8 + 4) {
			return truncated(i)
		}
		name := string(payload[off : off+nameLen])
		off += nameLen

		length := binary.LittleEndian.Uint64(payload[off:])
		off += 8

		hashCount := int(binary.LittleEndian.Uint32(payload[off:]))
		off += 4

		if !need(hashCount * hashLen) {
			return truncated(i)
		}
		var hashes []uint64
		if hashCount > 0 {
			hashes = make([]uint64, hashCount)
		}
		for j := range hashes {
			if use64 {
				hashes[j] = binary.LittleEndian.Uint64(payload[off:])
			} else {
				hashes[j] = uint64(binary.LittleEndian.Uint32(payload[off:]))
			}
			off += hashLen
		}

		coll.Add(sketch.Record{Name: name, Length: length, Hashes: hashes})
	}

	if off != len(payload) {
		return fmt.Errorf("sketchio: %d trailing bytes after last record", len(payload)-off)
	}
	return nil
}

func truncated(i uint64) error {
	return fmt.Errorf("sketchio: truncated payload in record %d", i)
}

// CheckOverrides validates explicit parameter overrides against the
// parameters carried by a loaded sketch file. Pass 0 for values the
// caller did not set.
func CheckOverrides(loaded sketch.Parameters, kmerSize, sketchSize int) error {
	if kmerSize != 0 && kmerSize != loaded.KmerSize {
		return &sketch.ErrKmerSizeConflict{Override: kmerSize, Sketch: loaded.KmerSize}
	}
	if sketchSize != 0 && sketchSize != loaded.SketchSize {
		return &sketch.ErrSketchSizeConflict{Override: sketchSize, Sketch: loaded.SketchSize}
	}
	return nil
}
