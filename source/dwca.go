package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Darwin Core Archive description extensions carry a header row; these are
// the columns the converter consumes. Type is often a full vocabulary URI,
// so only its last path segment is kept.
var dwcaColumns = map[string]string{
	"id":          "coreid",
	"coreid":      "coreid",
	"type":        "type",
	"description": "description",
	"language":    "language",
}

// ConvertArchive flattens a Darwin Core Archive description extension into
// canonical description rows: vocabulary URIs reduced to their type token,
// embedded HTML stripped from the description text, and rows restricted to
// the given language when the extension carries one (empty lang keeps all).
func ConvertArchive(path, lang string) ([]Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive extension: %w", err)
	}
	defer f.Close()

	descs, err := ReadArchive(f, lang)
	if err != nil {
		return nil, fmt.Errorf("archive %s: %w", filepath.Base(path), err)
	}
	return descs, nil
}

// ReadArchive parses description extension rows from r.
func ReadArchive(r io.Reader, lang string) ([]Description, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int)
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := dwcaColumns[key]; ok {
			cols[canonical] = i
		}
	}
	for _, required := range []string{"coreid", "description"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var descs []Description
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if lang != "" {
			if rowLang := field(rec, "language"); rowLang != "" && !strings.EqualFold(rowLang, lang) {
				continue
			}
		}

		descs = append(descs, Description{
			CoreID: field(rec, "coreid"),
			Type:   typeToken(field(rec, "type")),
			Text:   StripTags(field(rec, "description")),
		})
	}
	return descs, nil
}

// WriteDescFile writes rows in the canonical three-column TSV layout.
func WriteDescFile(w io.Writer, descs []Description) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	for _, d := range descs {
		if err := cw.Write([]string{d.CoreID, d.Type, d.Text}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// typeToken reduces a description-type value to its bare token. Archives use
// either plain tokens ("general") or vocabulary URIs ending in the token.
func typeToken(t string) string {
	t = strings.TrimRight(t, "/")
	if i := strings.LastIndexAny(t, "/#"); i >= 0 {
		t = t[i+1:]
	}
	return strings.ToLower(t)
}
