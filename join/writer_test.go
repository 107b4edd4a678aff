package join

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTupleWriter(t *testing.T) {
	coll := testCollection(t, 4,
		[]uint64{1, 2, 3, 4},
		[]uint64{1, 2, 3, 4},
		[]uint64{1, 2, 3, 5},
	)

	var buf bytes.Buffer
	w := NewTupleWriter(&buf)

	require.NoError(t, w.Begin(coll))
	require.NoError(t, w.Write(coll, Result{Query: 1, Pairs: []Pair{
		{Query: 1, Ref: 0, Distance: 0, PValue: 1e-9, Common: 4, Denom: 4},
	}}))
	require.NoError(t, w.Write(coll, Result{Query: 2, Pairs: nil}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "b\ta\t0\t1e-09\t4/4\n", buf.String())
}

func TestMatrixWriter(t *testing.T) {
	coll := testCollection(t, 4,
		[]uint64{1, 2, 3, 4},
		[]uint64{5, 6, 7, 8},
		[]uint64{1, 2, 3, 4},
	)

	var buf bytes.Buffer
	w := NewMatrixWriter(&buf)

	require.NoError(t, w.Begin(coll))
	require.NoError(t, w.Write(coll, Result{Query: 1, Pairs: nil}))
	require.NoError(t, w.Write(coll, Result{Query: 2, Pairs: []Pair{
		{Query: 2, Ref: 0, Distance: 0.25},
	}}))
	require.NoError(t, w.Flush())

	want := "#query\ta\tb\tc\n" +
		"b\t\n" + // empty row: no accepted pairs
		"c\t\t0.25\n" // cell under column a only
	assert.Equal(t, want, buf.String())
}

func TestMatrixWriterPadsSkippedColumns(t *testing.T) {
	coll := testCollection(t, 4,
		[]uint64{1, 2, 3, 4},
		[]uint64{9, 10, 11, 12},
		[]uint64{5, 6, 7, 8},
		[]uint64{5, 6, 7, 8},
	)

	var buf bytes.Buffer
	w := NewMatrixWriter(&buf)
	require.NoError(t, w.Begin(coll))
	require.NoError(t, w.Write(coll, Result{Query: 3, Pairs: []Pair{
		{Query: 3, Ref: 2, Distance: 0},
	}}))
	require.NoError(t, w.Flush())

	// Columns a and b are blank, the shared pair lands under column c.
	assert.Equal(t, "#query\ta\tb\tc\td\nd\t\t\t\t0\n", buf.String())
}
