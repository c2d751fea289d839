package schema

// Default is a record field's default value, kept distinct from "no
// default present" even when the JSON value itself was null. Compatibility
// rules in this package's sibling compatibility/avro treat a null default
// the same as no default at all. Enum defaults are held in
// Node.EnumDefault instead.
type Default struct {
	IsNull bool
	Value  interface{}
}

// Field is one member of a record, in declaration order.
type Field struct {
	Name    string
	Type    *Node
	Default *Default // nil: no default was present in the schema
	Aliases []string
}

// HasNonNullDefault reports whether this field carries a default value that
// is not itself JSON null.
func (f *Field) HasNonNullDefault() bool {
	return f.Default != nil && !f.Default.IsNull
}

// Node is one node of a schema tree. Which of the kind-specific fields are
// meaningful depends on Kind; see the field comments.
type Node struct {
	Kind Kind
	Name QualifiedName // Record, Enum, Fixed (a NamedRef leaves it empty; see RefIndex)

	LogicalType string   // optional, carried for fidelity; never affects resolution
	Aliases     []string // Record, Enum, Fixed

	Fields []*Field // Record

	Symbols     []string // Enum
	EnumDefault *string  // Enum; nil means no usable default (absent or JSON null)

	Items *Node // Array

	Values *Node // Map

	Branches []*Node // Union

	Size int // Fixed

	RefIndex int // NamedRef: index into the owning Arena
}

// Arena owns every named type (record, enum, fixed) declared anywhere in one
// schema, addressed by a stable index. A NamedRef node carries the index of
// the type it refers to instead of a direct pointer, so that a schema with
// mutually recursive records is just as easy to walk as an acyclic one.
type Arena struct {
	nodes []*Node
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Register adds a named node to the arena and returns its stable index.
func (a *Arena) Register(n *Node) int {
	a.nodes = append(a.nodes, n)
	return len(a.nodes) - 1
}

// At returns the node previously registered at idx.
func (a *Arena) At(idx int) *Node {
	return a.nodes[idx]
}

// Len returns the number of named types registered in the arena.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Schema is the opaque handle returned by Build: a root node plus the arena
// of named types it (and its descendants) may reference.
type Schema struct {
	Root  *Node
	Arena *Arena
}

// Resolve follows a NamedRef to the node it refers to. Any other node is
// returned unchanged.
func (s *Schema) Resolve(n *Node) *Node {
	if n == nil || n.Kind != KindNamedRef {
		return n
	}
	return s.Arena.At(n.RefIndex)
}
