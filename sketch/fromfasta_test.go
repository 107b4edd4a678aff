package sketch

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromReader(t *testing.T) {
	input := ">alpha some description\nMKVLWAALLVTFLAGCQA\n>beta\nMKVLWAALLV\nTFLAGCQA\n>gamma\nACDEFGHIKLMNPQRSTVWY\n"

	coll, err := FromReader(context.Background(), strings.NewReader(input), DefaultParameters())
	require.NoError(t, err)

	require.Equal(t, 3, coll.Len())
	assert.Equal(t, "alpha", coll.Record(0).Name)
	assert.Equal(t, "beta", coll.Record(1).Name)
	assert.Equal(t, "gamma", coll.Record(2).Name)

	// alpha and beta are the same residues, once wrapped; identical
	// sketches prove wrapping does not affect hashing.
	assert.Equal(t, coll.Record(0).Hashes, coll.Record(1).Hashes)
	assert.NotEqual(t, coll.Record(0).Hashes, coll.Record(2).Hashes)

	assert.Equal(t, uint64(18), coll.Record(0).Length)
}

func TestFromReaderInvalidInput(t *testing.T) {
	_, err := FromReader(context.Background(), strings.NewReader("no header\n"), DefaultParameters())
	assert.Error(t, err)
}

func TestFromReaderEmptyInput(t *testing.T) {
	coll, err := FromReader(context.Background(), strings.NewReader(""), DefaultParameters())
	require.NoError(t, err)
	assert.Equal(t, 0, coll.Len())
}

func TestFromReaderInvalidParams(t *testing.T) {
	params := DefaultParameters()
	params.KmerSize = 0

	_, err := FromReader(context.Background(), strings.NewReader(">a\nMKV\n"), params)
	assert.Error(t, err)
}
