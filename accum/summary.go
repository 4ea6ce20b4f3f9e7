package accum

import (
	"github.com/c360studio/traitmatrix/llm"
	"github.com/c360studio/traitmatrix/trait"
)

// Metadata captures the run configuration that produced a summary, so an
// output file is reproducible from itself.
type Metadata struct {
	RunID          string     `json:"run_id"`
	Mode           string     `json:"mode"`
	Params         llm.Params `json:"params"`
	SystemPrompt   string     `json:"sys_prompt"`
	InitPrompt     string     `json:"init_prompt,omitempty"`
	AccumPrompt    string     `json:"prompt"`
	FollowupPrompt string     `json:"f_prompt,omitempty"`
	TabulatePrompt string     `json:"tab_prompt,omitempty"`
}

// Summary is the serializable state of a run: configuration, the per-sample
// result log, and the full charlist history. It is written after every
// processed sample so an interrupted run loses at most one sample.
type Summary struct {
	Metadata           Metadata             `json:"metadata"`
	Samples            []trait.SampleResult `json:"data"`
	CharlistHistory    [][]string           `json:"charlist_history"`
	CharlistLenHistory []int                `json:"charlist_len_history"`
}

// Summary builds a snapshot of the accumulator's state. All slices are
// copies; the caller may serialize it while the run continues.
func (a *Accumulator) Summary() Summary {
	return Summary{
		Metadata: Metadata{
			RunID:          a.runID,
			Mode:           a.mode,
			Params:         a.params,
			SystemPrompt:   a.prompts.System,
			InitPrompt:     a.prompts.Init,
			AccumPrompt:    a.prompts.Accum,
			FollowupPrompt: a.prompts.Followup,
			TabulatePrompt: a.prompts.Tabulate,
		},
		Samples:            a.Results(),
		CharlistHistory:    a.history.Snapshot(),
		CharlistLenHistory: a.history.Lengths(),
	}
}
