package schema

// QualifiedName is an Avro named type's namespace plus its local name. Two
// qualified names are equal iff both components are byte-equal — Avro does
// not normalize case or collapse namespace segments.
type QualifiedName struct {
	Namespace string
	Name      string
}

// Full returns the dot-joined namespace.name, or just name when the
// namespace is empty.
func (q QualifiedName) Full() string {
	if q.Namespace == "" {
		return q.Name
	}
	return q.Namespace + "." + q.Name
}

// Equal reports whether two qualified names refer to the same type.
func (q QualifiedName) Equal(o QualifiedName) bool {
	return q.Namespace == o.Namespace && q.Name == o.Name
}
