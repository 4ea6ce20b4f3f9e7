package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/traitmatrix/trait"
)

// textExtensions are the file types loadable as description samples.
var textExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
}

// GlobDescriptions expands a glob pattern (with ** support) to description
// file paths, filtered to loadable extensions and sorted for deterministic
// run order.
func GlobDescriptions(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	var paths []string
	for _, m := range matches {
		if textExtensions[strings.ToLower(filepath.Ext(m))] {
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadSampleFile reads one description file as a sample. The sample ID is
// the base filename without extension; HTML files are converted to plain
// description text first.
func LoadSampleFile(path string, conv *HTMLConverter) (trait.Sample, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return trait.Sample{}, fmt.Errorf("read sample: %w", err)
	}

	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))
	id := strings.TrimSuffix(base, filepath.Ext(base))

	text := string(content)
	if ext == ".html" || ext == ".htm" {
		if conv == nil {
			conv = NewHTMLConverter()
		}
		text, err = conv.Convert(content)
		if err != nil {
			return trait.Sample{}, fmt.Errorf("sample %s: %w", id, err)
		}
	}

	return trait.Sample{ID: id, Text: strings.TrimSpace(text)}, nil
}

// LoadSampleFiles loads every path as a sample, in order.
func LoadSampleFiles(paths []string) ([]trait.Sample, error) {
	conv := NewHTMLConverter()

	samples := make([]trait.Sample, 0, len(paths))
	for _, p := range paths {
		s, err := LoadSampleFile(p, conv)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, nil
}
