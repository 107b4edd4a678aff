// Package sketchio persists sketch collections as compact binary blobs.
//
// A sketch file carries everything needed to resume a run without the
// raw sequences: the sketching parameters and, per record, the name,
// sequence length and sorted hash values. The record section is
// lz4-compressed and guarded by a CRC of the uncompressed payload.
package sketchio

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Suffix is the conventional sketch file extension.
const Suffix = ".ssk"

const (
	magic   = "SSKD"
	version = uint16(1)

	flagPreserveCase = uint16(1 << 0)
	flagUse64        = uint16(1 << 1)
)

// header layout, little-endian:
//
//	magic      [4]byte
//	version    uint16
//	flags      uint16
//	kmerSize   uint16
//	alphaLen   uint16
//	sketchSize uint32
//	count      uint64
//	crc        uint32  (of the uncompressed record payload)
//	alphabet   [alphaLen]byte
//
// followed by the lz4 frame holding the record payload.
const fixedHeaderLen = 4 + 2 + 2 + 2 + 2 + 4 + 8 + 4

var (
	// ErrBadMagic is returned when a blob is not a sketch file.
	ErrBadMagic = errors.New("sketchio: not a sketch file")

	// ErrChecksum is returned when the record payload fails CRC
	// verification.
	ErrChecksum = errors.New("sketchio: payload checksum mismatch")
)

// ErrUnsupportedVersion is returned for sketch files written by a newer
// format revision.
type ErrUnsupportedVersion struct {
	Version uint16
}

func (e *ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("sketchio: unsupported sketch file version %d", e.Version)
}

type header struct {
	flags      uint16
	kmerSize   int
	sketchSize int
	count      uint64
	crc        uint32
	alphabet   string
}

func (h *header) preserveCase() bool { return h.flags&flagPreserveCase != 0 }
func (h *header) use64() bool        { return h.flags&flagUse64 != 0 }

func (h *header) encode() []byte {
	buf := make([]byte, fixedHeaderLen+len(h.alphabet))
	copy(buf[0:4], magic)
	binary.LittleEndian.PutUint16(buf[4:], version)
	binary.LittleEndian.PutUint16(buf[6:], h.flags)
	binary.LittleEndian.PutUint16(buf[8:], uint16(h.kmerSize))
	binary.LittleEndian.PutUint16(buf[10:], uint16(len(h.alphabet)))
	binary.LittleEndian.PutUint32(buf[12:], uint32(h.sketchSize))
	binary.LittleEndian.PutUint64(buf[16:], h.count)
	binary.LittleEndian.PutUint32(buf[24:], h.crc)
	copy(buf[fixedHeaderLen:], h.alphabet)
	return buf
}

// decodeHeader parses the header and returns it along with the number of
// bytes it occupied.
func decodeHeader(data []byte) (*header, int, error) {
	if len(data) < fixedHeaderLen || string(data[0:4]) != magic {
		return nil, 0, ErrBadMagic
	}
	if v := binary.LittleEndian.Uint16(data[4:]); v != version {
		return nil, 0, &ErrUnsupportedVersion{Version: v}
	}

	h := &header{
		flags:      binary.LittleEndian.Uint16(data[6:]),
		kmerSize:   int(binary.LittleEndian.Uint16(data[8:])),
		sketchSize: int(binary.LittleEndian.Uint32(data[12:])),
		count:      binary.LittleEndian.Uint64(data[16:]),
		crc:        binary.LittleEndian.Uint32(data[24:]),
	}
	alphaLen := int(binary.LittleEndian.Uint16(data[10:]))
	if len(data) < fixedHeaderLen+alphaLen {
		return nil, 0, ErrBadMagic
	}
	h.alphabet = string(data[fixedHeaderLen : fixedHeaderLen+alphaLen])
	return h, fixedHeaderLen + alphaLen, nil
}
