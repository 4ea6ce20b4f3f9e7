package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobDescriptions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))

	files := []string{"b.txt", "a.txt", "page.html", "notes.md", "data.json", "nested/c.txt"}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o644))
	}

	paths, err := GlobDescriptions(filepath.Join(dir, "**", "*"))
	require.NoError(t, err)

	got := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
	}

	// Sorted, recursive, and limited to loadable extensions.
	assert.Equal(t, []string{"a.txt", "b.txt", "nested/c.txt", "notes.md", "page.html"}, got)
}

func TestLoadSampleFileText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hakea-salicifolia.txt")
	require.NoError(t, os.WriteFile(path, []byte("Shrub to 5 m, leaves lanceolate.\n"), 0o644))

	s, err := LoadSampleFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "hakea-salicifolia", s.ID)
	assert.Equal(t, "Shrub to 5 m, leaves lanceolate.", s.Text)
}

func TestLoadSampleFileHTML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sp1.html")
	page := `<html><head><title>Species page</title><style>p{color:red}</style></head>
<body><script>track();</script><p>Shrub to <b>2 m</b>, leaves obovate.</p></body></html>`
	require.NoError(t, os.WriteFile(path, []byte(page), 0o644))

	s, err := LoadSampleFile(path, NewHTMLConverter())
	require.NoError(t, err)
	assert.Equal(t, "sp1", s.ID)
	assert.Contains(t, s.Text, "Shrub to 2 m, leaves obovate.")
	assert.NotContains(t, s.Text, "track()")
	assert.NotContains(t, s.Text, "color:red")
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>Shrub to <b>2 m</b>.</p>", "Shrub to 2 m."},
		{"plain text", "plain text"},
		{"<div>a</div>  <div>b</div>", "a b"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StripTags(tt.in), "StripTags(%q)", tt.in)
	}
}
