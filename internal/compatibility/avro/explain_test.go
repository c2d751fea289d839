package avro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplain_CompatibleHasNoMessages(t *testing.T) {
	reader := mustBuild(t, `"long"`)
	writer := mustBuild(t, `"int"`)

	result := Explain(reader, writer)
	assert.True(t, result.IsCompatible)
	assert.Empty(t, result.Messages)
}

func TestExplain_ReportsTypeMismatch(t *testing.T) {
	reader := mustBuild(t, `"int"`)
	writer := mustBuild(t, `"string"`)

	result := Explain(reader, writer)
	require.False(t, result.IsCompatible)
	require.Len(t, result.Messages, 1)
	assert.Contains(t, result.Messages[0], "type mismatch")
}

func TestExplain_ReportsMissingFieldWithoutDefault(t *testing.T) {
	reader := mustBuild(t, `{
		"type": "record", "name": "Widget",
		"fields": [{"name": "id", "type": "long"}, {"name": "label", "type": "string"}]
	}`)
	writer := mustBuild(t, `{
		"type": "record", "name": "Widget",
		"fields": [{"name": "id", "type": "long"}]
	}`)

	result := Explain(reader, writer)
	require.False(t, result.IsCompatible)
	require.Len(t, result.Messages, 1)
	assert.Contains(t, result.Messages[0], "label")
	assert.Contains(t, result.Messages[0], "no non-null default")
}

func TestExplain_CollectsMultipleFieldMismatches(t *testing.T) {
	reader := mustBuild(t, `{
		"type": "record", "name": "Widget",
		"fields": [
			{"name": "a", "type": "string"},
			{"name": "b", "type": "string"}
		]
	}`)
	writer := mustBuild(t, `{
		"type": "record", "name": "Widget",
		"fields": []
	}`)

	result := Explain(reader, writer)
	require.False(t, result.IsCompatible)
	assert.Len(t, result.Messages, 2)
}

func TestExplain_ReportsEnumSymbolWithoutDefault(t *testing.T) {
	reader := mustBuild(t, `{"type":"enum","name":"Suit","symbols":["SPADES","HEARTS"]}`)
	writer := mustBuild(t, `{"type":"enum","name":"Suit","symbols":["SPADES","HEARTS","CLUBS"]}`)

	result := Explain(reader, writer)
	require.False(t, result.IsCompatible)
	assert.Contains(t, result.Messages[0], "CLUBS")
}

func TestExplain_ReportsFixedMismatchesSeparately(t *testing.T) {
	reader := mustBuild(t, `{"type":"fixed","name":"MD5","size":16}`)
	writer := mustBuild(t, `{"type":"fixed","name":"SHA1","size":20}`)

	result := Explain(reader, writer)
	require.False(t, result.IsCompatible)
	require.Len(t, result.Messages, 2)
}

func TestExplain_NestedFieldPathIncludedInMessage(t *testing.T) {
	reader := mustBuild(t, `{
		"type": "record", "name": "Outer",
		"fields": [
			{"name": "inner", "type": {
				"type": "record", "name": "Inner",
				"fields": [{"name": "count", "type": "string"}]
			}}
		]
	}`)
	writer := mustBuild(t, `{
		"type": "record", "name": "Outer",
		"fields": [
			{"name": "inner", "type": {
				"type": "record", "name": "Inner",
				"fields": [{"name": "count", "type": "int"}]
			}}
		]
	}`)

	result := Explain(reader, writer)
	require.False(t, result.IsCompatible)
	assert.Contains(t, result.Messages[0], "inner.count")
}

func TestExplain_SelfRecursiveSchemaTerminates(t *testing.T) {
	schemaText := `{
		"type": "record", "name": "Node",
		"fields": [
			{"name": "value", "type": "int"},
			{"name": "next", "type": ["null", "Node"], "default": null}
		]
	}`
	reader := mustBuild(t, schemaText)
	writer := mustBuild(t, schemaText)

	result := Explain(reader, writer)
	assert.True(t, result.IsCompatible)
}
