// Package source loads species descriptions from the supported inputs: the
// tab-separated description file exported from a Darwin Core Archive, plain
// text and HTML files on disk, and newline-separated characteristic lists.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/c360studio/traitmatrix/trait"
)

// Column order of a description file. There is no header row.
const (
	colCoreID = iota
	colType
	colText
	descFileColumns
)

// DefaultDescriptionType is the row type carrying general morphological
// descriptions, the only type the digitizer consumes by default.
const DefaultDescriptionType = "general"

// Description is one row of a description file. A core ID can have several
// rows of different types (general, habitat, distribution, ...).
type Description struct {
	CoreID string
	Type   string
	Text   string
}

// LoadDescFile reads a tab-separated description file. Rows with fewer than
// three fields are rejected; extra fields are ignored.
func LoadDescFile(path string) ([]Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open description file: %w", err)
	}
	defer f.Close()

	return ReadDescriptions(f)
}

// ReadDescriptions parses description rows from r.
func ReadDescriptions(r io.Reader) ([]Description, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var descs []Description
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("description file line %d: %w", line, err)
		}
		if len(rec) < descFileColumns {
			return nil, fmt.Errorf("description file line %d: want %d fields, got %d", line, descFileColumns, len(rec))
		}

		descs = append(descs, Description{
			CoreID: strings.TrimSpace(rec[colCoreID]),
			Type:   strings.TrimSpace(rec[colType]),
			Text:   rec[colText],
		})
	}
	return descs, nil
}

// FilterSamples keeps rows of the given type and shapes them as samples.
// An empty descType selects DefaultDescriptionType.
func FilterSamples(descs []Description, descType string) []trait.Sample {
	if descType == "" {
		descType = DefaultDescriptionType
	}

	var samples []trait.Sample
	for _, d := range descs {
		if d.Type != descType {
			continue
		}
		samples = append(samples, trait.Sample{ID: d.CoreID, Text: d.Text})
	}
	return samples
}

// Window slices samples to the run range [start, start+limit). A limit of
// zero or less means no upper bound. Out-of-range starts yield nil.
func Window(samples []trait.Sample, start, limit int) []trait.Sample {
	if start < 0 {
		start = 0
	}
	if start >= len(samples) {
		return nil
	}

	end := len(samples)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	return samples[start:end]
}
