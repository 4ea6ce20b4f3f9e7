package source

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const archiveFixture = "coreid\ttype\tlanguage\tdescription\n" +
	"sp1\thttp://rs.gbif.org/vocabulary/gbif/description_type/general\ten\t<p>Shrub to <b>2 m</b>, leaves obovate.</p>\n" +
	"sp1\tgeneral\tfr\tArbuste atteignant 2 m.\n" +
	"sp2\thttp://rs.gbif.org/vocabulary/gbif/description_type/habitat\ten\tRocky slopes.\n"

func TestReadArchive(t *testing.T) {
	descs, err := ReadArchive(strings.NewReader(archiveFixture), "en")
	require.NoError(t, err)
	require.Len(t, descs, 2)

	assert.Equal(t, "sp1", descs[0].CoreID)
	assert.Equal(t, "general", descs[0].Type)
	assert.Equal(t, "Shrub to 2 m, leaves obovate.", descs[0].Text)
	assert.Equal(t, "habitat", descs[1].Type)
}

func TestReadArchiveKeepsAllLanguagesWhenUnset(t *testing.T) {
	descs, err := ReadArchive(strings.NewReader(archiveFixture), "")
	require.NoError(t, err)
	assert.Len(t, descs, 3)
}

func TestReadArchiveMissingColumn(t *testing.T) {
	_, err := ReadArchive(strings.NewReader("coreid\ttype\nsp1\tgeneral\n"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description")
}

func TestWriteDescFileRoundTrip(t *testing.T) {
	descs := []Description{
		{CoreID: "sp1", Type: "general", Text: "Shrub to 2 m."},
		{CoreID: "sp2", Type: "general", Text: "Tree to 10 m."},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDescFile(&buf, descs))

	back, err := ReadDescriptions(&buf)
	require.NoError(t, err)
	assert.Equal(t, descs, back)
}

func TestTypeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"general", "general"},
		{"General", "general"},
		{"http://rs.gbif.org/vocabulary/gbif/description_type/general", "general"},
		{"http://example.org/types#habitat", "habitat"},
		{"http://example.org/types/general/", "general"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, typeToken(tt.in), "typeToken(%q)", tt.in)
	}
}
