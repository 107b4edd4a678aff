package sketch

import (
	"fmt"
	"math"
)

const (
	// DefaultKmerSize is the default k-mer length for protein sequences.
	DefaultKmerSize = 9

	// DefaultSketchSize is the default number of min-hashes per sketch.
	DefaultSketchSize = 400

	// DefaultWarning is the random-collision probability above which a
	// sequence is considered too long for the current k-mer size.
	DefaultWarning = 0.01
)

// Parameters controls how sketches are built. The zero value is not
// usable; start from DefaultParameters.
type Parameters struct {
	// KmerSize is the k-mer length hashes are based on.
	KmerSize int

	// SketchSize is the maximum number of distinct min-hashes retained
	// per sequence.
	SketchSize int

	// PreserveCase keeps sequence case significant. By default letters
	// are upper-cased before alphabet membership is checked.
	PreserveCase bool

	// Alphabet is the residue set k-mers are drawn from.
	Alphabet Alphabet

	// Warning is the random-collision probability threshold used for
	// the oversized-sequence advisory.
	Warning float64
}

// DefaultParameters returns protein sketching defaults matching the
// pairwise use case.
func DefaultParameters() Parameters {
	return Parameters{
		KmerSize:   DefaultKmerSize,
		SketchSize: DefaultSketchSize,
		Alphabet:   Protein,
		Warning:    DefaultWarning,
	}
}

// Validate checks parameter ranges.
func (p Parameters) Validate() error {
	if p.KmerSize < 1 || p.KmerSize > 32 {
		return fmt.Errorf("k-mer size %d out of range [1,32]", p.KmerSize)
	}
	if p.SketchSize < 1 {
		return fmt.Errorf("sketch size %d must be positive", p.SketchSize)
	}
	if p.Alphabet.Size() == 0 {
		return fmt.Errorf("alphabet is empty")
	}
	return nil
}

// Use64 reports whether the k-mer space exceeds 32 bits, selecting the
// 64-bit hash function.
func (p Parameters) Use64() bool {
	return p.Alphabet.KmerSpace(p.KmerSize) > math.Pow(2, 32)
}

// KmerSpace returns the total number of possible k-mers.
func (p Parameters) KmerSpace() float64 {
	return p.Alphabet.KmerSpace(p.KmerSize)
}

// LengthThreshold returns the sequence length above which the random
// k-mer collision chance exceeds the warning probability.
func (p Parameters) LengthThreshold() float64 {
	return (p.Warning * p.KmerSpace()) / (1. - p.Warning)
}
