package avro

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_NewCompatibleResult(t *testing.T) {
	r := NewCompatibleResult()
	assert.True(t, r.IsCompatible)
	assert.Empty(t, r.Messages)
}

func TestResult_AddMessageFlipsCompatible(t *testing.T) {
	r := NewCompatibleResult()
	r.AddMessage("field %q missing", "id")
	assert.False(t, r.IsCompatible)
	assert.Equal(t, []string{`field "id" missing`}, r.Messages)
}

func TestResult_MergeIncompatibleIntoCompatible(t *testing.T) {
	r := NewCompatibleResult()
	other := NewIncompatibleResult("bad thing")
	r.Merge(other)
	assert.False(t, r.IsCompatible)
	assert.Equal(t, []string{"bad thing"}, r.Messages)
}

func TestResult_MergeCompatibleIntoCompatibleStaysCompatible(t *testing.T) {
	r := NewCompatibleResult()
	r.Merge(NewCompatibleResult())
	assert.True(t, r.IsCompatible)
	assert.Empty(t, r.Messages)
}
