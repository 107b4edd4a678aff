package sketch

import "math"

// Alphabet defines the residue set k-mers are drawn from. Letters outside
// the alphabet interrupt the current k-mer window; nothing is hashed
// across them.
type Alphabet struct {
	name      string
	letters   string
	canonical bool // hash min(kmer, revcomp) instead of the forward k-mer
	member    [256]bool
	comp      [256]byte
}

// Protein is the 20-letter amino-acid alphabet. K-mers are hashed as-is.
var Protein = newAlphabet("protein", "ACDEFGHIKLMNPQRSTVWY", false)

// DNA is the 4-letter nucleotide alphabet. K-mers are canonicalized
// against their reverse complement before hashing.
var DNA = newAlphabet("dna", "ACGT", true)

func newAlphabet(name, letters string, canonical bool) Alphabet {
	a := Alphabet{name: name, letters: letters, canonical: canonical}
	for i := 0; i < len(letters); i++ {
		a.member[letters[i]] = true
	}
	if canonical {
		for i := range a.comp {
			a.comp[i] = 'N'
		}
		a.comp['A'], a.comp['C'], a.comp['G'], a.comp['T'] = 'T', 'G', 'C', 'A'
	}
	return a
}

// Name returns the alphabet identifier used in sketch files.
func (a Alphabet) Name() string { return a.name }

// Size returns the number of letters in the alphabet.
func (a Alphabet) Size() int { return len(a.letters) }

// Canonical reports whether k-mers are canonicalized before hashing.
func (a Alphabet) Canonical() bool { return a.canonical }

// Contains reports whether b is a member of the alphabet.
func (a Alphabet) Contains(b byte) bool { return a.member[b] }

// Complement returns the complement base for canonicalization.
func (a Alphabet) Complement(b byte) byte { return a.comp[b] }

// KmerSpace returns the number of possible k-mers of length k.
func (a Alphabet) KmerSpace(k int) float64 {
	return math.Pow(float64(len(a.letters)), float64(k))
}

// AlphabetByName resolves a persisted alphabet identifier.
func AlphabetByName(name string) (Alphabet, bool) {
	switch name {
	case Protein.name:
		return Protein, true
	case DNA.name:
		return DNA, true
	}
	return Alphabet{}, false
}
