package avro

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axonops/avro-schema-core/internal/schema"
)

func TestSanitize_StripsNamespacedInlineName(t *testing.T) {
	in := `{"type":"record","name":"com.acme.Widget","fields":[]}`

	out, err := Sanitize([]byte(in))
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "Widget", got["name"])
}

func TestSanitize_RejectsRecordWithoutFields(t *testing.T) {
	in := `{"type":"record","name":"Widget"}`

	_, err := Sanitize([]byte(in))
	require.Error(t, err)

	var ie *schema.InvalidError
	require.ErrorAs(t, err, &ie)
	assert.Contains(t, ie.Error(), "fields")
}

func TestSanitize_RejectsMalformedJSON(t *testing.T) {
	_, err := Sanitize([]byte(`{"type": "record",`))
	require.Error(t, err)

	var ie *schema.InvalidError
	require.ErrorAs(t, err, &ie)
	assert.GreaterOrEqual(t, ie.Offset, int64(0))
}

func TestSanitize_RejectsEmptyInlineName(t *testing.T) {
	_, err := Sanitize([]byte(`{"type":"record","name":"","fields":[]}`))
	require.Error(t, err)

	var ie *schema.InvalidError
	require.ErrorAs(t, err, &ie)
	assert.Contains(t, ie.Error(), "name")
}

func TestSanitize_RecursesIntoNestedSchemas(t *testing.T) {
	in := `{
		"type": "record",
		"name": "Outer",
		"fields": [
			{"name": "items", "type": {"type": "array", "items": {"type": "record", "name": "ns.Inner", "fields": []}}}
		]
	}`

	out, err := Sanitize([]byte(in))
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &got))

	fields := got["fields"].([]interface{})
	first := fields[0].(map[string]interface{})
	itemsType := first["type"].(map[string]interface{})
	inner := itemsType["items"].(map[string]interface{})
	assert.Equal(t, "Inner", inner["name"])
}

func TestSanitize_Idempotent(t *testing.T) {
	in := `{"type":"record","name":"com.acme.Widget","fields":[{"name":"id","type":"long"}]}`

	once, err := Sanitize([]byte(in))
	require.NoError(t, err)

	twice, err := Sanitize(once)
	require.NoError(t, err)

	var a, b map[string]interface{}
	require.NoError(t, json.Unmarshal(once, &a))
	require.NoError(t, json.Unmarshal(twice, &b))
	assert.Equal(t, a, b)
}

func TestSanitize_StripsDoc(t *testing.T) {
	in := `{"type":"record","name":"Widget","doc":"a widget","fields":[{"name":"id","type":"long","doc":"the id"}]}`

	out, err := Sanitize([]byte(in))
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &got))
	_, present := got["doc"]
	assert.False(t, present)

	fields := got["fields"].([]interface{})
	first := fields[0].(map[string]interface{})
	_, fieldDocPresent := first["doc"]
	assert.False(t, fieldDocPresent)
}

func TestSanitize_LeavesPlainTypeStringUnchanged(t *testing.T) {
	out, err := Sanitize([]byte(`"long"`))
	require.NoError(t, err)
	assert.JSONEq(t, `"long"`, string(out))
}

func TestLastSegment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no namespace", "Widget", "Widget"},
		{"one segment", "com.Widget", "Widget"},
		{"deep namespace", "com.acme.v2.Widget", "Widget"},
		{"trailing dot", "com.acme.", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lastSegment(tt.in))
		})
	}
}
