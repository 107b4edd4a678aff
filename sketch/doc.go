// Package sketch builds and holds bottom-k MinHash sketches of biological
// sequences.
//
// A sketch is the set of the s smallest distinct hash values over all
// k-mers of a sequence, kept sorted ascending. A Collection owns the
// sketches for a whole input along with the sketching parameters they
// were built with; it is immutable once built and shared read-only by
// the join engine.
package sketch
