// Package prompt holds the prompt templates used by the digitization
// pipeline and the placeholder substitution applied before each call.
// Templates are plain text; substitution is literal replacement.
package prompt

import (
	"fmt"
	"os"
	"strings"
)

// Placeholder tokens recognized in templates.
const (
	PlaceholderDescription   = "[DESCRIPTION]"
	PlaceholderDescriptions  = "[DESCRIPTIONS]"
	PlaceholderCharacterList = "[CHARACTER_LIST]"
	PlaceholderMissingWords  = "[MISSING_WORDS]"
)

// listSeparator joins characteristic names and missing words in prompts.
const listSeparator = "; "

// Prompts is the full template set for one run. A zero value field falls back
// to the built-in default at load time, never at render time.
type Prompts struct {
	// System is the system prompt sent with every call.
	System string `json:"sys_prompt" yaml:"system"`
	// Init seeds the initial charlist from a single sample.
	Init string `json:"init_prompt,omitempty" yaml:"init"`
	// Tabulate seeds the initial charlist from a batch of samples.
	Tabulate string `json:"tab_prompt,omitempty" yaml:"tabulate"`
	// Accum extracts records conditioned on the running charlist.
	Accum string `json:"prompt" yaml:"accum"`
	// Followup asks for a corrected response given omitted words.
	Followup string `json:"f_prompt,omitempty" yaml:"followup"`
}

// Vars carries the values substituted into a template.
type Vars struct {
	Description   string
	Descriptions  string
	CharacterList []string
	MissingWords  []string
}

// Render substitutes every placeholder in the template with the corresponding
// value. List values join with "; ". Placeholders without a value substitute
// to the empty string only when their token is present and the value is empty.
func Render(tpl string, v Vars) string {
	r := strings.NewReplacer(
		PlaceholderDescription, v.Description,
		PlaceholderDescriptions, v.Descriptions,
		PlaceholderCharacterList, strings.Join(v.CharacterList, listSeparator),
		PlaceholderMissingWords, strings.Join(v.MissingWords, listSeparator),
	)
	return r.Replace(tpl)
}

// JoinSamples renders a batch of identified descriptions into the block
// substituted for [DESCRIPTIONS] during tabulation seeding.
func JoinSamples(ids, texts []string) string {
	blocks := make([]string, 0, len(ids))
	for i, id := range ids {
		blocks = append(blocks, fmt.Sprintf("Species ID: %s\n\nSpecies description:\n%s", id, texts[i]))
	}
	return strings.Join(blocks, "\n\n")
}

// Defaults returns the built-in template set.
func Defaults() Prompts {
	return Prompts{
		System:   defaultSystem,
		Init:     defaultInit,
		Tabulate: defaultTabulate,
		Accum:    defaultAccum,
		Followup: defaultFollowup,
	}
}

// LoadFile reads a template override from a file. An empty path returns the
// given fallback.
func LoadFile(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt file: %w", err)
	}
	return string(data), nil
}
