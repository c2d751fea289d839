package avro

import (
	"errors"

	json "github.com/goccy/go-json"

	"github.com/axonops/avro-schema-core/internal/schema"
)

func joinPath(base, segment string) string {
	if base == "" {
		return segment
	}
	return base + "." + segment
}

// parseJSON decodes text into the generic interface{} shape sanitize.go and
// builder.go both walk, wrapping any failure as a schema.InvalidError with
// whatever byte offset the decoder reports.
func parseJSON(text []byte) (interface{}, error) {
	var val interface{}
	if err := json.Unmarshal(text, &val); err != nil {
		return nil, wrapJSONError(err)
	}
	return val, nil
}

func wrapJSONError(err error) *schema.InvalidError {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return schema.InvalidAtOffset(syn.Offset, "invalid JSON: %v", err)
	}
	return schema.Invalidf("invalid JSON: %v", err)
}

// attachSchemaText annotates an *schema.InvalidError returned from deeper in
// the pipeline with the original input, per this package's contract that
// every schema_invalid error carries the offending text for debugging.
func attachSchemaText(err error, text []byte) error {
	var ie *schema.InvalidError
	if errors.As(err, &ie) {
		ie.Schema = string(text)
	}
	return err
}

func pathOrRoot(path string) string {
	if path == "" {
		return "root"
	}
	return path
}
