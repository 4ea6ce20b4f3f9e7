package accum

import (
	"context"
	"fmt"

	"github.com/c360studio/traitmatrix/llm"
	"github.com/c360studio/traitmatrix/prompt"
	"github.com/c360studio/traitmatrix/trait"
)

// SeedingStrategy derives the initial charlist from one or more samples.
// A seed that generates an unusable response yields an empty charlist, not
// an error; errors are reserved for backend/transport failures.
type SeedingStrategy interface {
	Seed(ctx context.Context, b llm.Backend, p prompt.Prompts, samples []trait.Sample) (SeedResult, error)
}

// SeedResult reports how seeding went.
type SeedResult struct {
	// Charlist is the initial characteristic-name list; empty when the
	// seed response was unusable.
	Charlist []string
	// Status is the regularization status of the seed response.
	Status string
	// Table holds the seed table for tabulation seeding, nil otherwise.
	Table []trait.TableRecord
}

// SingleSeeding seeds from the first sample alone, with no prior schema
// conditioning the prompt.
type SingleSeeding struct{}

// Seed implements SeedingStrategy.
func (SingleSeeding) Seed(ctx context.Context, b llm.Backend, p prompt.Prompts, samples []trait.Sample) (SeedResult, error) {
	if len(samples) == 0 {
		return SeedResult{}, fmt.Errorf("seeding requires at least one sample")
	}

	user := prompt.Render(p.Init, prompt.Vars{Description: samples[0].Text})

	resp, err := b.Generate(ctx, p.System, user)
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed generation: %w", err)
	}

	out := trait.Regularize(resp)
	res := SeedResult{Status: out.Status()}
	if out.OK() {
		res.Charlist = trait.Names(out.Records)
	}
	return res, nil
}

// TabulationSeeding seeds from a batch of samples rendered together with
// their identifiers, validated against the table shape so every sample is
// covered in every row.
type TabulationSeeding struct{}

// Seed implements SeedingStrategy.
func (TabulationSeeding) Seed(ctx context.Context, b llm.Backend, p prompt.Prompts, samples []trait.Sample) (SeedResult, error) {
	if len(samples) == 0 {
		return SeedResult{}, fmt.Errorf("tabulation requires at least one sample")
	}

	ids := make([]string, len(samples))
	texts := make([]string, len(samples))
	for i, s := range samples {
		ids[i] = s.ID
		texts[i] = s.Text
	}

	user := prompt.Render(p.Tabulate, prompt.Vars{
		Descriptions: prompt.JoinSamples(ids, texts),
	})

	resp, err := b.Generate(ctx, p.System, user)
	if err != nil {
		return SeedResult{}, fmt.Errorf("tabulation generation: %w", err)
	}

	out := trait.RegularizeTable(resp, ids)
	res := SeedResult{Status: out.Status()}
	if out.OK() {
		res.Table = out.Table
		res.Charlist = make([]string, 0, len(out.Table))
		for _, row := range out.Table {
			res.Charlist = append(res.Charlist, row.Name)
		}
	}
	return res, nil
}
