package storage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZstdCompressor_RoundTrip(t *testing.T) {
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	defer comp.Close()

	original := []byte(`{"cards":{"c1":{"movements":[]}}}`)
	compressed, err := comp.Compress(original)
	require.NoError(t, err)

	decompressed, err := comp.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestZstdCompressor_CompressesRepetitiveData(t *testing.T) {
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	defer comp.Close()

	original := bytes.Repeat([]byte("movement "), 1000)
	compressed, err := comp.Compress(original)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(original))
}

func TestZstdCompressor_DecompressGarbage(t *testing.T) {
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	defer comp.Close()

	_, err = comp.Decompress([]byte("not zstd data"))
	assert.Error(t, err)
}
