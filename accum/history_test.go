package accum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryAppendAndLast(t *testing.T) {
	var h History

	assert.False(t, h.Seeded())
	assert.Nil(t, h.Last())
	assert.Equal(t, 0, h.Len())

	h.Append([]string{"habit", "height"})
	h.Append([]string{"habit", "height", "leaf shape"})

	assert.True(t, h.Seeded())
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, []string{"habit", "height", "leaf shape"}, h.Last())
}

func TestHistoryCopiesOnWriteAndRead(t *testing.T) {
	var h History

	in := []string{"habit"}
	h.Append(in)
	in[0] = "mutated"
	require.Equal(t, []string{"habit"}, h.Last())

	out := h.Last()
	out[0] = "mutated"
	assert.Equal(t, []string{"habit"}, h.Last())

	snap := h.Snapshot()
	snap[0][0] = "mutated"
	assert.Equal(t, []string{"habit"}, h.Last())
}

func TestHistoryLengths(t *testing.T) {
	var h History

	h.Append(nil)
	h.Append([]string{"habit"})
	h.Append([]string{"habit", "height"})

	assert.Equal(t, []int{0, 1, 2}, h.Lengths())
	assert.Len(t, h.Snapshot(), 3)
}
