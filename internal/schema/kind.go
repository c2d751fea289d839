// Package schema is the in-memory data model for a single Avro schema: a
// tree of typed nodes, the named-type arena that lets those nodes reference
// each other (and themselves) by index, and the structured error returned
// when schema text cannot be turned into that tree.
package schema

// Kind tags the shape of a Node. It mirrors the Avro primitive and complex
// type vocabulary plus the synthetic NamedRef kind used for a second (or
// later) occurrence of an already-declared record, enum, or fixed name.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindBytes
	KindString
	KindRecord
	KindEnum
	KindArray
	KindMap
	KindUnion
	KindFixed
	KindNamedRef
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindRecord:
		return "record"
	case KindEnum:
		return "enum"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindUnion:
		return "union"
	case KindFixed:
		return "fixed"
	case KindNamedRef:
		return "named_ref"
	default:
		return "unknown"
	}
}

// PrimitiveKinds maps the Avro JSON type-name strings to their Kind. The
// Tree Builder consults it directly; callers that only need to know whether
// a string names a primitive can use it too.
var PrimitiveKinds = map[string]Kind{
	"null":    KindNull,
	"boolean": KindBoolean,
	"int":     KindInt,
	"long":    KindLong,
	"float":   KindFloat,
	"double":  KindDouble,
	"bytes":   KindBytes,
	"string":  KindString,
}
