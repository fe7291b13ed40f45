package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldType_TextRoundTrip(t *testing.T) {
	t.Parallel()

	for ft, name := range fieldTypeNames {
		text, err := ft.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, name, string(text))

		var parsed FieldType
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, ft, parsed)
	}
}

func TestFieldType_UnmarshalUnknown(t *testing.T) {
	t.Parallel()

	var ft FieldType
	assert.Error(t, ft.UnmarshalText([]byte("int128")))
	assert.Equal(t, "FieldType(99)", FieldType(99).String())
}

func TestField_HasDefault(t *testing.T) {
	t.Parallel()

	blank := " "
	value := "0"
	assert.False(t, Field{}.HasDefault())
	assert.False(t, Field{DefaultValue: &blank}.HasDefault())
	assert.True(t, Field{DefaultValue: &value}.HasDefault())
}
