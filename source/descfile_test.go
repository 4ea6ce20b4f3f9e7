package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/traitmatrix/trait"
)

const descFileFixture = "sp1\tgeneral\tShrub to 2 m, leaves obovate.\n" +
	"sp1\thabitat\tRocky slopes.\n" +
	"sp2\tgeneral\tTree to 10 m, bark smooth.\n" +
	"sp3\tdistribution\tWestern Cape.\n"

func TestReadDescriptions(t *testing.T) {
	descs, err := ReadDescriptions(strings.NewReader(descFileFixture))
	require.NoError(t, err)
	require.Len(t, descs, 4)

	assert.Equal(t, "sp1", descs[0].CoreID)
	assert.Equal(t, "general", descs[0].Type)
	assert.Equal(t, "Shrub to 2 m, leaves obovate.", descs[0].Text)
}

func TestReadDescriptionsRejectsShortRows(t *testing.T) {
	_, err := ReadDescriptions(strings.NewReader("sp1\tgeneral\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestFilterSamples(t *testing.T) {
	descs, err := ReadDescriptions(strings.NewReader(descFileFixture))
	require.NoError(t, err)

	general := FilterSamples(descs, "")
	require.Len(t, general, 2)
	assert.Equal(t, "sp1", general[0].ID)
	assert.Equal(t, "sp2", general[1].ID)

	habitat := FilterSamples(descs, "habitat")
	require.Len(t, habitat, 1)
	assert.Equal(t, "Rocky slopes.", habitat[0].Text)

	assert.Empty(t, FilterSamples(descs, "phenology"))
}

func TestWindow(t *testing.T) {
	samples := []trait.Sample{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}

	tests := []struct {
		name   string
		start  int
		limit  int
		want   []string
	}{
		{"full range", 0, 0, []string{"a", "b", "c", "d"}},
		{"limit only", 0, 2, []string{"a", "b"}},
		{"start only", 2, 0, []string{"c", "d"}},
		{"start and limit", 1, 2, []string{"b", "c"}},
		{"limit past end", 3, 10, []string{"d"}},
		{"start past end", 10, 2, nil},
		{"negative start", -1, 1, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Window(samples, tt.start, tt.limit)
			ids := make([]string, 0, len(got))
			for _, s := range got {
				ids = append(ids, s.ID)
			}
			if tt.want == nil {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.want, ids)
			}
		})
	}
}
