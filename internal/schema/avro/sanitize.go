package avro

import (
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/axonops/avro-schema-core/internal/schema"
)

// Sanitize normalizes user-submitted Avro schema JSON before it reaches
// Build: it strips namespace prefixes accidentally baked into an inline
// "name", requires that a "record" carry a "fields" array, and rejects
// malformed input with a schema.InvalidError. The result is deterministic —
// re-sanitizing it is a no-op — but it is not guaranteed byte-identical to
// any particular ordering of the input's object members.
func Sanitize(text []byte) ([]byte, error) {
	val, err := parseJSON(text)
	if err != nil {
		return nil, attachSchemaText(err, text)
	}

	sanitized, err := sanitizeValue(val, "")
	if err != nil {
		return nil, attachSchemaText(err, text)
	}

	out, err := json.Marshal(sanitized)
	if err != nil {
		return nil, attachSchemaText(schema.Invalidf("failed to serialize canonical schema: %v", err), text)
	}
	return out, nil
}

func sanitizeValue(v interface{}, path string) (interface{}, error) {
	switch val := v.(type) {
	case map[string]interface{}:
		return sanitizeObject(val, path)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			sv, err := sanitizeValue(item, joinPath(path, indexSegment(i)))
			if err != nil {
				return nil, err
			}
			out[i] = sv
		}
		return out, nil
	default:
		// string, number, bool, nil: left unchanged.
		return val, nil
	}
}

func sanitizeObject(obj map[string]interface{}, path string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(obj))

	if rawName, present := obj["name"]; present {
		name, ok := rawName.(string)
		if !ok || name == "" {
			return nil, schema.InvalidAtPath(joinPath(path, "name"), `schema "name" must be a non-empty string`)
		}
		out["name"] = lastSegment(name)
	}

	handledFields := false
	if rawType, present := obj["type"]; present {
		sanitizedType, err := sanitizeValue(rawType, joinPath(path, "type"))
		if err != nil {
			return nil, err
		}
		out["type"] = sanitizedType

		if typeStr, ok := rawType.(string); ok && typeStr == "record" {
			rawFields, present := obj["fields"]
			if !present {
				return nil, schema.InvalidAtPath(joinPath(path, "fields"), `record schema is missing required "fields" array`)
			}
			fieldsArr, ok := rawFields.([]interface{})
			if !ok {
				return nil, schema.InvalidAtPath(joinPath(path, "fields"), `record "fields" must be an array`)
			}
			sanitizedFields := make([]interface{}, len(fieldsArr))
			for i, f := range fieldsArr {
				sf, err := sanitizeValue(f, joinPath(path, "fields"+indexSegment(i)))
				if err != nil {
					return nil, err
				}
				sanitizedFields[i] = sf
			}
			out["fields"] = sanitizedFields
			handledFields = true
		}
	}

	for k, v := range obj {
		if k == "name" || k == "type" || k == "doc" {
			continue
		}
		if k == "fields" && handledFields {
			continue
		}
		sv, err := sanitizeValue(v, joinPath(path, k))
		if err != nil {
			return nil, err
		}
		out[k] = sv
	}

	return out, nil
}

// lastSegment drops everything up to and including the final '.', collapsing
// an accidentally namespaced inline name like "com.acme.Widget" to "Widget".
func lastSegment(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i+1:]
		}
	}
	return name
}

func indexSegment(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
