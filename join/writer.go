package join

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"syscall"

	"github.com/hupe1980/sketchdist/sketch"
)

// Writer consumes results in the order the runner drains them: query
// indices non-decreasing within a round, pairs ordered by ascending
// reference index.
type Writer interface {
	// Begin is called once before any result, with the full collection.
	Begin(c *sketch.Collection) error

	// Write is called for every drained result, including empty ones.
	Write(c *sketch.Collection, res Result) error

	// Flush is called once after the last result.
	Flush() error
}

// TupleWriter streams one line per accepted pair:
// query name, reference name, distance, p-value, shared/denominator.
type TupleWriter struct {
	w *bufio.Writer
}

// NewTupleWriter creates a tuple-stream writer on w.
func NewTupleWriter(w io.Writer) *TupleWriter {
	return &TupleWriter{w: bufio.NewWriter(w)}
}

// Begin implements Writer.
func (t *TupleWriter) Begin(*sketch.Collection) error { return nil }

// Write implements Writer.
func (t *TupleWriter) Write(c *sketch.Collection, res Result) error {
	query := c.Record(res.Query).Name
	for _, p := range res.Pairs {
		_, err := fmt.Fprintf(t.w, "%s\t%s\t%g\t%g\t%d/%d\n",
			query, c.Record(p.Ref).Name, p.Distance, p.PValue, p.Common, p.Denom)
		if err != nil {
			return err
		}
	}
	return nil
}

// Flush implements Writer.
func (t *TupleWriter) Flush() error { return t.w.Flush() }

// MatrixWriter writes a sparse lower-triangle matrix: a header row of all
// reference names, then one row per drained query with one tab-separated
// cell per reference index below it. Cells are raw distances; pairs that
// did not pass the thresholds stay blank.
type MatrixWriter struct {
	w *bufio.Writer
}

// NewMatrixWriter creates a matrix writer on w.
func NewMatrixWriter(w io.Writer) *MatrixWriter {
	return &MatrixWriter{w: bufio.NewWriter(w)}
}

// Begin implements Writer.
func (m *MatrixWriter) Begin(c *sketch.Collection) error {
	if _, err := m.w.WriteString("#query"); err != nil {
		return err
	}
	for i := 0; i < c.Len(); i++ {
		if _, err := fmt.Fprintf(m.w, "\t%s", c.Record(i).Name); err != nil {
			return err
		}
	}
	return m.w.WriteByte('\n')
}

// Write implements Writer.
func (m *MatrixWriter) Write(c *sketch.Collection, res Result) error {
	if _, err := fmt.Fprintf(m.w, "%s\t", c.Record(res.Query).Name); err != nil {
		return err
	}
	col := 0
	for _, p := range res.Pairs {
		for col < p.Ref {
			if err := m.w.WriteByte('\t'); err != nil {
				return err
			}
			col++
		}
		if _, err := fmt.Fprintf(m.w, "\t%g", p.Distance); err != nil {
			return err
		}
	}
	return m.w.WriteByte('\n')
}

// Flush implements Writer.
func (m *MatrixWriter) Flush() error { return m.w.Flush() }

// IsBrokenPipe reports whether an error is a broken or closed pipe.
// Useful when a downstream consumer (like head) closes early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
