package validators

import (
	"testing"

	"bitwise74/ingest-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataValidator(t *testing.T) {
	valid := model.MovieMetadata{
		Title:    "Heat",
		Year:     1995,
		Duration: 170,
		Rating:   8.3,
	}

	require.NoError(t, MetadataValidator(&valid))
}

func TestMetadataValidatorMissingTitle(t *testing.T) {
	m := model.MovieMetadata{Year: 1995}

	err := MetadataValidator(&m)
	require.ErrorIs(t, err, ErrNoTitle)
	assert.True(t, IsValidationError(err))
}

func TestMetadataValidatorBadFields(t *testing.T) {
	cases := []struct {
		name string
		meta model.MovieMetadata
	}{
		{"year too early", model.MovieMetadata{Title: "x", Year: 1500}},
		{"negative duration", model.MovieMetadata{Title: "x", Duration: -1}},
		{"rating out of range", model.MovieMetadata{Title: "x", Rating: 11}},
		{"broken trailer url", model.MovieMetadata{Title: "x", TrailerURL: "not a url"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := MetadataValidator(&tc.meta)
			require.ErrorIs(t, err, ErrInvalidFields)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestMetadataValidatorSchemaVersion(t *testing.T) {
	m := model.MovieMetadata{SchemaVersion: 99, Title: "x"}

	err := MetadataValidator(&m)
	require.ErrorIs(t, err, ErrBadSchema)

	// Version 0 (unset) and 1 are both accepted
	m = model.MovieMetadata{SchemaVersion: 1, Title: "x"}
	assert.NoError(t, MetadataValidator(&m))
}
