package accum

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/c360studio/traitmatrix/llm"
	"github.com/c360studio/traitmatrix/prompt"
	"github.com/c360studio/traitmatrix/trait"
)

// Extractor digitizes descriptions against a fixed characteristic list.
// Unlike the accumulator it carries no cross-sample state, so samples can be
// processed concurrently.
type Extractor struct {
	backend    llm.Backend
	prompts    prompt.Prompts
	charlist   []string
	correction CorrectionStrategy
	params     llm.Params
	workers    int
	logger     *slog.Logger
	runID      string
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithExtractorCorrection sets the correction strategy. Default is NoCorrection.
func WithExtractorCorrection(c CorrectionStrategy) ExtractorOption {
	return func(e *Extractor) {
		e.correction = c
	}
}

// WithWorkers sets the number of concurrent extraction workers. Values below
// one fall back to sequential processing.
func WithWorkers(n int) ExtractorOption {
	return func(e *Extractor) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithExtractorLogger sets the logger.
func WithExtractorLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates an extractor bound to a fixed charlist.
func NewExtractor(backend llm.Backend, prompts prompt.Prompts, charlist []string, params llm.Params, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		backend:    backend,
		prompts:    prompts,
		charlist:   append([]string(nil), charlist...),
		correction: NoCorrection{},
		params:     params,
		workers:    1,
		logger:     slog.Default(),
		runID:      uuid.New().String(),
	}

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Charlist returns a copy of the fixed characteristic list.
func (e *Extractor) Charlist() []string {
	return append([]string(nil), e.charlist...)
}

// Process digitizes a single sample against the fixed charlist.
func (e *Extractor) Process(ctx context.Context, sample trait.Sample) (trait.SampleResult, error) {
	outcome, err := e.correction.Run(ctx, e.backend, e.prompts, sample, e.charlist)
	if err != nil {
		return trait.SampleResult{}, err
	}

	e.logger.Info("Sample extracted",
		"run_id", e.runID,
		"sample", sample.ID,
		"status", outcome.Status())

	return trait.NewSampleResult(sample.ID, sample.Text, outcome), nil
}

// Run digitizes all samples, up to the configured number of workers at a
// time. Results keep input order regardless of completion order. If persist
// is non-nil it is invoked after each completed sample with the results so
// far (nil slots for samples still in flight); calls are serialized.
func (e *Extractor) Run(ctx context.Context, samples []trait.Sample, persist func([]*trait.SampleResult) error) ([]trait.SampleResult, error) {
	slots := make([]*trait.SampleResult, len(samples))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, sample := range samples {
		i, sample := i, sample
		g.Go(func() error {
			res, err := e.Process(gctx, sample)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			slots[i] = &res
			if persist != nil {
				if err := persist(slots); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]trait.SampleResult, len(slots))
	for i, r := range slots {
		results[i] = *r
	}
	return results, nil
}

// Summary wraps extraction results in the standard output envelope. An
// extraction run has a single-entry charlist history: the fixed list.
func (e *Extractor) Summary(results []trait.SampleResult) Summary {
	return Summary{
		Metadata: Metadata{
			RunID:        e.runID,
			Mode:         ModeExtract,
			Params:       e.params,
			SystemPrompt: e.prompts.System,
			AccumPrompt:  e.prompts.Accum,
		},
		Samples:            results,
		CharlistHistory:    [][]string{e.Charlist()},
		CharlistLenHistory: []int{len(e.charlist)},
	}
}
