// Package accum implements the stateful trait-schema accumulation loop: it
// seeds an initial characteristic list and grows it sample by sample, never
// letting the schema shrink, while logging one result per processed sample.
package accum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/traitmatrix/llm"
	"github.com/c360studio/traitmatrix/prompt"
	"github.com/c360studio/traitmatrix/trait"
)

// ErrNotSeeded is returned when Step is called before Seed. This is a usage
// error, not a data error: callers must treat it as fatal for the run.
var ErrNotSeeded = errors.New("accum: charlist not seeded; call Seed before Step")

// Run mode names recorded in summaries.
const (
	ModeAccum         = "desc2json_accum"
	ModeAccumTab      = "desc2json_accum_tab"
	ModeAccumFollowup = "desc2json_accum_followup"
	ModeAccumTF       = "desc2json_accum_tf"
	ModeExtract       = "desc2json_wcharlist"
)

// Accumulator grows a characteristic schema across a corpus. It is strictly
// sequential: every Step reads the charlist left by the previous one, so one
// instance must never be driven from multiple goroutines.
type Accumulator struct {
	backend    llm.Backend
	prompts    prompt.Prompts
	seeding    SeedingStrategy
	correction CorrectionStrategy
	params     llm.Params
	mode       string
	logger     *slog.Logger

	runID   string
	history History
	results []trait.SampleResult
}

// Option configures an Accumulator.
type Option func(*Accumulator)

// WithSeeding sets the seeding strategy. Default is SingleSeeding.
func WithSeeding(s SeedingStrategy) Option {
	return func(a *Accumulator) {
		a.seeding = s
	}
}

// WithCorrection sets the correction strategy. Default is NoCorrection.
func WithCorrection(c CorrectionStrategy) Option {
	return func(a *Accumulator) {
		a.correction = c
	}
}

// WithMode overrides the run mode name recorded in summaries.
func WithMode(mode string) Option {
	return func(a *Accumulator) {
		a.mode = mode
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Accumulator) {
		a.logger = logger
	}
}

// New creates an accumulator. Prompts and parameters are fixed for the run;
// there is no process-wide prompt state.
func New(backend llm.Backend, prompts prompt.Prompts, params llm.Params, opts ...Option) *Accumulator {
	a := &Accumulator{
		backend:    backend,
		prompts:    prompts,
		seeding:    SingleSeeding{},
		correction: NoCorrection{},
		params:     params,
		mode:       ModeAccum,
		logger:     slog.Default(),
		runID:      uuid.New().String(),
	}

	for _, opt := range opts {
		opt(a)
	}

	// Derive the mode from the strategy combination unless overridden.
	if a.mode == ModeAccum {
		_, tab := a.seeding.(TabulationSeeding)
		_, followup := a.correction.(*FollowupCorrection)
		switch {
		case tab && followup:
			a.mode = ModeAccumTF
		case tab:
			a.mode = ModeAccumTab
		case followup:
			a.mode = ModeAccumFollowup
		}
	}

	return a
}

// Seeded reports whether the accumulator is ready to step.
func (a *Accumulator) Seeded() bool { return a.history.Seeded() }

// Charlist returns a copy of the current characteristic list.
func (a *Accumulator) Charlist() []string { return a.history.Last() }

// Seed derives the initial charlist using the configured strategy and
// transitions the accumulator to its ready state. An unusable seed response
// still seeds the run, with an empty charlist; a transport failure does not.
func (a *Accumulator) Seed(ctx context.Context, samples []trait.Sample) (SeedResult, error) {
	res, err := a.seeding.Seed(ctx, a.backend, a.prompts, samples)
	if err != nil {
		return SeedResult{}, err
	}

	a.history.Append(res.Charlist)
	a.logger.Info("Charlist seeded",
		"run_id", a.runID,
		"status", res.Status,
		"characteristics", len(res.Charlist),
		"samples", len(samples))
	return res, nil
}

// Step processes one sample: it runs the configured generation strategy
// conditioned on the current charlist, appends the sample's result to the
// log, and commits the grown charlist only when it is strictly longer than
// the previous one. The schema is a ratchet and never shrinks. Transport
// failures propagate and record nothing.
func (a *Accumulator) Step(ctx context.Context, sample trait.Sample) (trait.Outcome, error) {
	if !a.history.Seeded() {
		return trait.Outcome{}, fmt.Errorf("step for sample %s: %w", sample.ID, ErrNotSeeded)
	}

	start := time.Now()
	last := a.history.Last()

	outcome, err := a.correction.Run(ctx, a.backend, a.prompts, sample, last)
	if err != nil {
		return trait.Outcome{}, err
	}

	candidate := last
	if outcome.OK() {
		if names := trait.Names(outcome.Records); len(names) > len(last) {
			candidate = names
		}
	}
	a.history.Append(candidate)
	a.results = append(a.results, trait.NewSampleResult(sample.ID, sample.Text, outcome))

	a.logger.Info("Sample processed",
		"run_id", a.runID,
		"sample", sample.ID,
		"status", outcome.Status(),
		"charlist", len(candidate),
		"duration", time.Since(start).Round(time.Millisecond))

	return outcome, nil
}

// Results returns a copy of the per-sample result log.
func (a *Accumulator) Results() []trait.SampleResult {
	out := make([]trait.SampleResult, len(a.results))
	copy(out, a.results)
	return out
}
