package accum

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/c360studio/traitmatrix/llm"
	"github.com/c360studio/traitmatrix/prompt"
	"github.com/c360studio/traitmatrix/trait"
	"github.com/c360studio/traitmatrix/wordcov"
)

// CorrectionStrategy runs the generation call(s) for one sample conditioned
// on the current charlist and returns the outcome to store. Implementations
// return an error only for backend/transport failures; unusable responses
// are encoded in the outcome.
type CorrectionStrategy interface {
	Run(ctx context.Context, b llm.Backend, p prompt.Prompts, sample trait.Sample, charlist []string) (trait.Outcome, error)
}

// NoCorrection issues a single generation call and regularizes the response.
type NoCorrection struct{}

// Run implements CorrectionStrategy.
func (NoCorrection) Run(ctx context.Context, b llm.Backend, p prompt.Prompts, sample trait.Sample, charlist []string) (trait.Outcome, error) {
	user := prompt.Render(p.Accum, prompt.Vars{
		Description:   sample.Text,
		CharacterList: charlist,
	})

	resp, err := b.Generate(ctx, p.System, user)
	if err != nil {
		return trait.Outcome{}, fmt.Errorf("generate for sample %s: %w", sample.ID, err)
	}

	return trait.Regularize(resp), nil
}

// FollowupCorrection issues the initial call and, when it succeeds, a second
// corrective call listing the source words the first response omitted. The
// first response is replayed as a simulated assistant turn so the model sees
// its own answer. A structurally unusable initial response is returned as-is;
// no corrective call is attempted for it.
type FollowupCorrection struct {
	detector *wordcov.Detector
}

// NewFollowupCorrection creates the corrective strategy.
func NewFollowupCorrection() *FollowupCorrection {
	return &FollowupCorrection{detector: wordcov.NewDetector()}
}

// Run implements CorrectionStrategy.
func (f *FollowupCorrection) Run(ctx context.Context, b llm.Backend, p prompt.Prompts, sample trait.Sample, charlist []string) (trait.Outcome, error) {
	initial, err := NoCorrection{}.Run(ctx, b, p, sample, charlist)
	if err != nil {
		return trait.Outcome{}, err
	}
	if !initial.OK() {
		return initial, nil
	}

	omissions := f.detector.Omissions(sample.Text, initial.Records)

	followup := prompt.Render(p.Followup, prompt.Vars{
		Description:   sample.Text,
		CharacterList: charlist,
		MissingWords:  omissions,
	})

	// Replay the first exchange so the corrective turn reads as a
	// continuation of it.
	replayed, err := json.MarshalIndent(initial.Records, "", "    ")
	if err != nil {
		return trait.Outcome{}, fmt.Errorf("render prior response: %w", err)
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: p.System},
		{Role: llm.RoleUser, Content: prompt.Render(p.Accum, prompt.Vars{
			Description:   sample.Text,
			CharacterList: charlist,
		})},
		{Role: llm.RoleAssistant, Content: string(replayed)},
		{Role: llm.RoleUser, Content: followup},
	}

	resp, err := b.Converse(ctx, messages)
	if err != nil {
		return trait.Outcome{}, fmt.Errorf("follow-up for sample %s: %w", sample.ID, err)
	}

	corrected := trait.Regularize(resp)
	if !corrected.OK() {
		// Tag corrective-stage failures so provenance stays unambiguous.
		corrected = corrected.InPhase(trait.PhaseFollowup)
	}
	return corrected, nil
}
