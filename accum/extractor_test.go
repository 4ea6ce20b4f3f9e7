package accum_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/traitmatrix/accum"
	"github.com/c360studio/traitmatrix/llm"
	"github.com/c360studio/traitmatrix/llm/testutil"
	"github.com/c360studio/traitmatrix/prompt"
	"github.com/c360studio/traitmatrix/trait"
)

func newExtractor(mock *testutil.MockBackend, opts ...accum.ExtractorOption) *accum.Extractor {
	return accum.NewExtractor(mock, prompt.Defaults(), []string{"habit", "height"}, llm.Params{}, opts...)
}

func TestExtractorProcess(t *testing.T) {
	mock := &testutil.MockBackend{
		Responses: []string{`[{"characteristic": "habit", "value": "tree"}]`},
	}
	e := newExtractor(mock)

	res, err := e.Process(context.Background(), trait.Sample{ID: "s1", Text: "A tall tree."})
	require.NoError(t, err)
	assert.Equal(t, "s1", res.SampleID)
	assert.Equal(t, trait.StatusSuccess, res.Status)
	require.Len(t, res.Records, 1)

	// The prompt is conditioned on the fixed charlist.
	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Messages[1].Content, "habit; height")
}

func TestExtractorRunKeepsInputOrder(t *testing.T) {
	mock := &testutil.MockBackend{
		Responses: []string{`[{"characteristic": "habit", "value": "tree"}]`},
	}
	e := newExtractor(mock, accum.WithWorkers(4))

	samples := []trait.Sample{
		{ID: "s1", Text: "First."},
		{ID: "s2", Text: "Second."},
		{ID: "s3", Text: "Third."},
		{ID: "s4", Text: "Fourth."},
		{ID: "s5", Text: "Fifth."},
	}

	results, err := e.Run(context.Background(), samples, nil)
	require.NoError(t, err)
	require.Len(t, results, len(samples))
	for i, r := range results {
		assert.Equal(t, samples[i].ID, r.SampleID)
	}
	assert.Equal(t, len(samples), mock.CallCount())
}

func TestExtractorRunPersistsAfterEachSample(t *testing.T) {
	mock := &testutil.MockBackend{
		Responses: []string{`[{"characteristic": "habit", "value": "tree"}]`},
	}
	e := newExtractor(mock, accum.WithWorkers(3))

	samples := []trait.Sample{
		{ID: "s1", Text: "First."},
		{ID: "s2", Text: "Second."},
		{ID: "s3", Text: "Third."},
	}

	var persisted atomic.Int32
	_, err := e.Run(context.Background(), samples, func(partial []*trait.SampleResult) error {
		persisted.Add(1)
		assert.Len(t, partial, len(samples))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(len(samples)), persisted.Load())
}

func TestExtractorRunPropagatesBackendError(t *testing.T) {
	mock := &testutil.MockBackend{Err: assert.AnError}
	e := newExtractor(mock)

	_, err := e.Run(context.Background(), []trait.Sample{{ID: "s1", Text: "First."}}, nil)
	require.Error(t, err)
}

func TestExtractorSummary(t *testing.T) {
	mock := &testutil.MockBackend{
		Responses: []string{`[{"characteristic": "habit", "value": "tree"}]`},
	}
	e := newExtractor(mock)

	results, err := e.Run(context.Background(), []trait.Sample{{ID: "s1", Text: "A tall tree."}}, nil)
	require.NoError(t, err)

	sum := e.Summary(results)
	assert.Equal(t, accum.ModeExtract, sum.Metadata.Mode)
	assert.Equal(t, [][]string{{"habit", "height"}}, sum.CharlistHistory)
	assert.Equal(t, []int{2}, sum.CharlistLenHistory)
	require.Len(t, sum.Samples, 1)
}
