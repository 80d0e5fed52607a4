package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriteria(t *testing.T) {
	tests := []struct {
		name           string
		criteria       Criteria
		wantField      FilterField
		wantName       string
		wantType       string
		wantGeneration string
		wantString     string
	}{
		{
			name:       "no filter",
			criteria:   NoFilter(),
			wantField:  FieldNone,
			wantString: "none",
		},
		{
			name:       "name",
			criteria:   NameFilter("pika"),
			wantField:  FieldName,
			wantName:   "pika",
			wantString: "name=pika",
		},
		{
			name:       "type",
			criteria:   TypeFilter("fire"),
			wantField:  FieldType,
			wantType:   "fire",
			wantString: "type=fire",
		},
		{
			name:           "generation",
			criteria:       GenerationFilter("generation-i"),
			wantField:      FieldGeneration,
			wantGeneration: "generation-i",
			wantString:     "generation=generation-i",
		},
		{
			name:       "empty value is no filter",
			criteria:   TypeFilter(""),
			wantField:  FieldNone,
			wantString: "none",
		},
		{
			name:       "field none ignores value",
			criteria:   NewCriteria(FieldNone, "fire"),
			wantField:  FieldNone,
			wantString: "none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantField, tt.criteria.Field())
			assert.Equal(t, tt.wantField == FieldNone, tt.criteria.IsEmpty())
			assert.Equal(t, tt.wantName, tt.criteria.Name())
			assert.Equal(t, tt.wantType, tt.criteria.Type())
			assert.Equal(t, tt.wantGeneration, tt.criteria.Generation())
			assert.Equal(t, tt.wantString, tt.criteria.String())
		})
	}

	assert.Equal(t, NoFilter(), Criteria{})
}

func TestParseFilterField(t *testing.T) {
	for _, name := range []string{"name", "type", "generation"} {
		field, err := ParseFilterField(name)
		require.NoError(t, err)
		assert.Equal(t, name, field.String())
	}

	field, err := ParseFilterField(" Type ")
	require.NoError(t, err)
	assert.Equal(t, FieldType, field)

	_, err = ParseFilterField("color")
	assert.EqualError(t, err, `unknown filter field: "color"`)
}
