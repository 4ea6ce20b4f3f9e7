package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterCreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runs", "out.json")

	w, err := NewWriter(path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Write(map[string]string{"status": "success"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "success", got["status"])
}

func TestWriteJSONReplacesPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	require.NoError(t, WriteJSON(path, []int{1}))
	require.NoError(t, WriteJSON(path, []int{1, 2}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []int
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, []int{1, 2}, got)

	// No staging files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.json", entries[0].Name())
}

func TestWriteJSONIsIndented(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	require.NoError(t, WriteJSON(path, map[string]string{"a": "b"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n    \"a\""), "got: %s", data)
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestWriteCharlist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "charlist.txt")

	require.NoError(t, WriteCharlist(path, []string{"habit", "height", "leaf shape"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "habit\nheight\nleaf shape\n", string(data))
}
