package sketch

import (
	"container/heap"
	"sort"

	"github.com/spaolacci/murmur3"
)

// murmurSeed matches the seed used by existing sketch tooling so hashes
// are comparable across implementations.
const murmurSeed = 42

// Sketcher turns raw sequences into bottom-k sketch records. A Sketcher
// is not safe for concurrent use; create one per goroutine.
type Sketcher struct {
	params Parameters
	use64  bool
	heap   maxHeap
	seen   map[uint64]struct{}
	revBuf []byte
}

// NewSketcher creates a sketcher for the given parameters.
func NewSketcher(params Parameters) (*Sketcher, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Sketcher{
		params: params,
		use64:  params.Use64(),
		seen:   make(map[uint64]struct{}, params.SketchSize),
	}, nil
}

// Sketch builds the bottom-k sketch of one sequence. Letters outside the
// alphabet interrupt the k-mer window. Sequences shorter than k yield an
// empty (but valid) sketch.
func (s *Sketcher) Sketch(name string, seq []byte) Record {
	k := s.params.KmerSize
	cap := s.params.SketchSize

	s.heap = s.heap[:0]
	clear(s.seen)

	valid := 0 // length of the current uninterrupted window
	for i := 0; i < len(seq); i++ {
		b := seq[i]
		if !s.params.PreserveCase && b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
			seq[i] = b
		}
		if !s.params.Alphabet.Contains(b) {
			valid = 0
			continue
		}
		valid++
		if valid < k {
			continue
		}

		hv := s.hashKmer(seq[i+1-k : i+1])
		if _, dup := s.seen[hv]; dup {
			continue
		}

		if s.heap.Len() < cap {
			s.seen[hv] = struct{}{}
			heap.Push(&s.heap, hv)
		} else if hv < s.heap[0] {
			delete(s.seen, s.heap[0])
			s.seen[hv] = struct{}{}
			s.heap[0] = hv
			heap.Fix(&s.heap, 0)
		}
	}

	hashes := make([]uint64, s.heap.Len())
	copy(hashes, s.heap)
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })

	return Record{Name: name, Length: uint64(len(seq)), Hashes: hashes}
}

// hashKmer hashes one k-mer window, canonicalizing it first when the
// alphabet calls for it. 32-bit hashes are zero-extended so ordering is
// width-independent.
func (s *Sketcher) hashKmer(kmer []byte) uint64 {
	if s.params.Alphabet.Canonical() {
		kmer = s.canonicalize(kmer)
	}
	if s.use64 {
		h1, _ := murmur3.Sum128WithSeed(kmer, murmurSeed)
		return h1
	}
	return uint64(murmur3.Sum32WithSeed(kmer, murmurSeed))
}

// canonicalize returns the lexicographically smaller of the k-mer and its
// reverse complement.
func (s *Sketcher) canonicalize(kmer []byte) []byte {
	if cap(s.revBuf) < len(kmer) {
		s.revBuf = make([]byte, len(kmer))
	}
	rev := s.revBuf[:len(kmer)]
	for i := range kmer {
		rev[len(kmer)-1-i] = s.params.Alphabet.Complement(kmer[i])
	}
	for i := range kmer {
		if kmer[i] < rev[i] {
			return kmer
		}
		if rev[i] < kmer[i] {
			return rev
		}
	}
	return kmer
}

// maxHeap is a max-heap of hash values; the root is the largest retained
// minimum, the first to be evicted when a smaller hash arrives.
type maxHeap []uint64

func (h maxHeap) Len() int            { return len(h) }
func (h maxHeap) Less(i, j int) bool  { return h[i] > h[j] }
func (h maxHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x interface{}) { *h = append(*h, x.(uint64)) }
func (h *maxHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

var _ heap.Interface = (*maxHeap)(nil)
