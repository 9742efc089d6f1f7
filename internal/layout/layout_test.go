// internal/layout/layout_test.go
package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLayout() Layout {
	return Layout{
		WordsPerModule: 10,
		Fields: []FieldSpec{
			{Name: "a", Offset: 0, Words: 2, Count: 2, Type: Float32},
			{Name: "b", Offset: 4, Words: 1, Count: 1, Type: UInt16},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validLayout().Validate())
}

func TestValidate_ZeroModuleSpan(t *testing.T) {
	l := validLayout()
	l.WordsPerModule = 0
	assert.Error(t, l.Validate())
}

func TestValidate_NoFields(t *testing.T) {
	l := Layout{WordsPerModule: 10}
	assert.Error(t, l.Validate())
}

func TestValidate_FieldExceedsSpan(t *testing.T) {
	l := validLayout()
	// 8 + 2*2 > 10
	l.Fields = append(l.Fields, FieldSpec{
		Name: "c", Offset: 8, Words: 2, Count: 2, Type: Float32,
	})
	assert.Error(t, l.Validate())
}

func TestValidate_OverlapDetected(t *testing.T) {
	l := validLayout()
	// a covers 0-3
	l.Fields = append(l.Fields, FieldSpec{
		Name: "c", Offset: 3, Words: 1, Count: 1, Type: Int16,
	})
	assert.Error(t, l.Validate())
}

func TestValidate_TouchingFieldsAllowed(t *testing.T) {
	l := Layout{
		WordsPerModule: 4,
		Fields: []FieldSpec{
			{Name: "a", Offset: 0, Words: 2, Count: 1, Type: Float32}, // 0-1
			{Name: "b", Offset: 2, Words: 2, Count: 1, Type: Float32}, // 2-3
		},
	}
	assert.NoError(t, l.Validate())
}

func TestValidate_WidthTypeMismatch(t *testing.T) {
	l := Layout{
		WordsPerModule: 4,
		Fields: []FieldSpec{
			{Name: "a", Offset: 0, Words: 1, Count: 1, Type: Float32},
		},
	}
	assert.Error(t, l.Validate())
}

func TestValidate_UnsupportedType(t *testing.T) {
	l := Layout{
		WordsPerModule: 4,
		Fields: []FieldSpec{
			{Name: "a", Offset: 0, Words: 1, Count: 1, Type: "string"},
		},
	}
	assert.Error(t, l.Validate())
}

func TestValidate_DuplicateName(t *testing.T) {
	l := Layout{
		WordsPerModule: 4,
		Fields: []FieldSpec{
			{Name: "a", Offset: 0, Words: 1, Count: 1, Type: UInt16},
			{Name: "a", Offset: 1, Words: 1, Count: 1, Type: UInt16},
		},
	}
	assert.Error(t, l.Validate())
}

func TestValidate_ZeroCount(t *testing.T) {
	l := Layout{
		WordsPerModule: 4,
		Fields: []FieldSpec{
			{Name: "a", Offset: 0, Words: 1, Count: 0, Type: UInt16},
		},
	}
	assert.Error(t, l.Validate())
}
