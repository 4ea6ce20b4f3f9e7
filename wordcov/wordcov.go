// Package wordcov measures the lexical coverage of a structured output
// against its source text. It knows nothing about characteristic semantics;
// it only compares normalized word sets.
package wordcov

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/bbalet/stopwords"
	"github.com/gertd/go-pluralize"

	"github.com/c360studio/traitmatrix/trait"
)

var (
	// decimalPattern protects periods inside decimal numbers before
	// punctuation is spaced out.
	decimalPattern = regexp.MustCompile(`(\d)\.(\d)`)
	// rangePattern collapses numeric ranges like "5 - 7" into a single
	// token so ranges are not spuriously flagged as missing.
	rangePattern = regexp.MustCompile(`(\d)\s*-\s*(\d)`)
	// punctPattern isolates punctuation into standalone tokens.
	punctPattern = regexp.MustCompile("[.,:;()\"'“”]")
)

// decimalMarker temporarily replaces protected decimal points. NUL never
// appears in description text.
const decimalMarker = "\x00"

// Detector computes normalized word sets and omissions.
type Detector struct {
	plural *pluralize.Client
}

// NewDetector creates a Detector.
func NewDetector() *Detector {
	return &Detector{plural: pluralize.NewClient()}
}

// WordSet normalizes a text into its set of meaningful word tokens:
// punctuation is split off (except inside decimal numbers), numeric ranges
// collapse to one token, tokens are lowercased, stop-words and bare
// punctuation are dropped (numeric tokens are always kept), and plural nouns
// are singularized so singular and plural forms count as one token.
func (d *Detector) WordSet(text string) map[string]struct{} {
	text = decimalPattern.ReplaceAllString(text, "$1"+decimalMarker+"$2")
	text = rangePattern.ReplaceAllString(text, "$1-$2")
	text = punctPattern.ReplaceAllString(text, " $0 ")
	text = strings.ReplaceAll(text, decimalMarker, ".")

	set := make(map[string]struct{})
	for _, tok := range strings.Fields(text) {
		tok = strings.ToLower(tok)
		if !hasWordChar(tok) {
			continue
		}
		if !hasDigit(tok) && isStopWord(tok) {
			continue
		}
		if d.plural.IsPlural(tok) {
			tok = d.plural.Singular(tok)
		}
		set[tok] = struct{}{}
	}
	return set
}

// Omissions returns the meaningful source words absent from the rendered
// record set, sorted for deterministic prompting. The records are rendered
// one "name: value" line per record, mirroring how the model is asked to
// account for the source text.
func (d *Detector) Omissions(source string, records []trait.Record) []string {
	covered := d.WordSet(renderRecords(records))

	var missing []string
	for w := range d.WordSet(source) {
		if _, ok := covered[w]; !ok {
			missing = append(missing, w)
		}
	}
	sort.Strings(missing)
	return missing
}

// Recovery returns the proportion of meaningful source words present in the
// rendered record set. Returns 1 for sources with no meaningful words.
func (d *Detector) Recovery(source string, records []trait.Record) float64 {
	sourceWords := d.WordSet(source)
	if len(sourceWords) == 0 {
		return 1
	}
	covered := d.WordSet(renderRecords(records))

	matched := 0
	for w := range sourceWords {
		if _, ok := covered[w]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(sourceWords))
}

// renderRecords flattens a record set to one "name: value" line per record.
func renderRecords(records []trait.Record) string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("%s: %s", r.Name, r.Value))
	}
	return strings.Join(lines, "\n")
}

// isStopWord reports whether a single token is an English stop-word. The
// stopwords package removes stop-words from running text, so a token that
// comes back empty was one. CleanString also strips tokens with no letters,
// so callers must not pass numeric tokens; measurements are meaningful words.
func isStopWord(tok string) bool {
	return strings.TrimSpace(stopwords.CleanString(tok, "en", false)) == ""
}

// hasDigit reports whether a token contains a digit.
func hasDigit(tok string) bool {
	for _, r := range tok {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// hasWordChar reports whether a token contains at least one letter or digit.
func hasWordChar(tok string) bool {
	for _, r := range tok {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
