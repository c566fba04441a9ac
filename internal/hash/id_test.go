package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
		{"another string", "another test string", 0x212a22f593810bec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestArray(t *testing.T) {
	data := []float32{1, 2, 3, 4, 5, 6}

	require.Equal(t, Array([]int{2, 3}, data), Array([]int{2, 3}, data), "hash must be deterministic")
	require.NotEqual(t, Array([]int{2, 3}, data), Array([]int{3, 2}, data), "shape must affect the hash")
	require.NotEqual(t, Array([]int{6}, data), Array([]int{1, 6}, data), "dimension count must affect the hash")

	changed := append([]float32(nil), data...)
	changed[5] = 6.0001
	require.NotEqual(t, Array([]int{2, 3}, data), Array([]int{2, 3}, changed))

	require.Equal(t, Array(nil, nil), Array([]int{}, []float32{}))
}
