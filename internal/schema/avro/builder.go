package avro

import (
	"strconv"
	"strings"

	"github.com/axonops/avro-schema-core/internal/schema"
)

// Build turns sanitized Avro schema JSON into a Schema tree. It expects text
// that has already passed through Sanitize; running it on raw, unsanitized
// text is safe but may leave inline named-type prefixes in the tree that
// Sanitize would otherwise have stripped.
func Build(text []byte) (*schema.Schema, error) {
	val, err := parseJSON(text)
	if err != nil {
		return nil, attachSchemaText(err, text)
	}

	b := &builder{arena: schema.NewArena(), names: map[string]int{}}
	root, err := b.build(val, "", "")
	if err != nil {
		return nil, attachSchemaText(err, text)
	}
	return &schema.Schema{Root: root, Arena: b.arena}, nil
}

// builder walks one schema's JSON DOM exactly once, accumulating named types
// (record, enum, fixed) into an arena as it discovers them so that a later
// reference — including a record field referring back to its own enclosing
// record — resolves to the same Node rather than a duplicate.
type builder struct {
	arena *schema.Arena
	names map[string]int
}

func (b *builder) build(v interface{}, namespace, path string) (*schema.Node, error) {
	switch val := v.(type) {
	case string:
		return b.buildNamed(val, namespace, path)
	case []interface{}:
		return b.buildUnion(val, namespace, path)
	case map[string]interface{}:
		return b.buildComplex(val, namespace, path)
	default:
		return nil, schema.InvalidAtPath(pathOrRoot(path), "expected a type name, union, or schema object, got %T", v)
	}
}

// buildNamed resolves a bare type string: either one of the eight
// primitives, or a reference to an already-declared record, enum, or fixed.
func (b *builder) buildNamed(name string, namespace, path string) (*schema.Node, error) {
	if k, ok := schema.PrimitiveKinds[name]; ok {
		return &schema.Node{Kind: k}, nil
	}

	full := resolveName(name, namespace)
	if idx, ok := b.names[full]; ok {
		return &schema.Node{Kind: schema.KindNamedRef, RefIndex: idx}, nil
	}
	if idx, ok := b.names[name]; ok {
		return &schema.Node{Kind: schema.KindNamedRef, RefIndex: idx}, nil
	}
	return nil, schema.InvalidAtPath(pathOrRoot(path), "unknown named type reference %q", name)
}

// resolveName qualifies a declared or referenced name against the enclosing
// namespace, unless the name already carries its own (any '.' makes it
// fully qualified and namespace-independent).
func resolveName(name, namespace string) string {
	if strings.Contains(name, ".") || namespace == "" {
		return name
	}
	return namespace + "." + name
}

func (b *builder) buildUnion(items []interface{}, namespace, path string) (*schema.Node, error) {
	branches := make([]*schema.Node, len(items))
	for i, item := range items {
		itemPath := joinPath(path, "branch["+strconv.Itoa(i)+"]")
		if _, nested := item.([]interface{}); nested {
			return nil, schema.InvalidAtPath(pathOrRoot(itemPath), "unions cannot directly contain another union")
		}
		branch, err := b.build(item, namespace, itemPath)
		if err != nil {
			return nil, err
		}
		branches[i] = branch
	}
	if err := b.checkUnionBranchKinds(branches, path); err != nil {
		return nil, err
	}
	return &schema.Node{Kind: schema.KindUnion, Branches: branches}, nil
}

// checkUnionBranchKinds enforces that no two branches resolve to the same
// kind, except that record, enum, and fixed — the named kinds — may repeat
// since each occurrence is a distinct named type.
func (b *builder) checkUnionBranchKinds(branches []*schema.Node, path string) error {
	seen := make(map[schema.Kind]bool, len(branches))
	for _, branch := range branches {
		kind := b.resolvedKind(branch)
		if kind == schema.KindRecord || kind == schema.KindEnum || kind == schema.KindFixed {
			continue
		}
		if seen[kind] {
			return schema.InvalidAtPath(pathOrRoot(path), "union has more than one branch of kind %q", kind)
		}
		seen[kind] = true
	}
	return nil
}

// resolvedKind returns n's kind, following a NamedRef to the kind of the
// named type it refers to.
func (b *builder) resolvedKind(n *schema.Node) schema.Kind {
	if n.Kind == schema.KindNamedRef {
		return b.arena.At(n.RefIndex).Kind
	}
	return n.Kind
}

func (b *builder) buildComplex(obj map[string]interface{}, namespace, path string) (*schema.Node, error) {
	rawType, ok := obj["type"]
	if !ok {
		return nil, schema.InvalidAtPath(pathOrRoot(path), `schema object is missing required "type"`)
	}

	typeStr, isStr := rawType.(string)
	if !isStr {
		return b.build(rawType, namespace, joinPath(path, "type"))
	}

	switch typeStr {
	case "record":
		return b.buildRecord(obj, namespace, path)
	case "enum":
		return b.buildEnum(obj, namespace, path)
	case "array":
		return b.buildArray(obj, namespace, path)
	case "map":
		return b.buildMap(obj, namespace, path)
	case "fixed":
		return b.buildFixed(obj, namespace, path)
	default:
		node, err := b.buildNamed(typeStr, namespace, path)
		if err != nil {
			return nil, err
		}
		if lt, ok := obj["logicalType"].(string); ok {
			node.LogicalType = lt
		}
		return node, nil
	}
}

// resolveDeclaredName computes the qualified name and child namespace for a
// record, enum, or fixed declaration: an explicit "namespace" sets it for
// nested declarations, and a dotted "name" overrides it entirely.
func (b *builder) resolveDeclaredName(obj map[string]interface{}, namespace, path string) (schema.QualifiedName, string, error) {
	rawName, ok := obj["name"].(string)
	if !ok || rawName == "" {
		return schema.QualifiedName{}, "", schema.InvalidAtPath(joinPath(path, "name"), `named schema is missing required non-empty "name"`)
	}

	childNamespace := namespace
	if ns, ok := obj["namespace"].(string); ok {
		childNamespace = ns
	}

	if idx := strings.LastIndex(rawName, "."); idx >= 0 {
		childNamespace = rawName[:idx]
		rawName = rawName[idx+1:]
	}

	return schema.QualifiedName{Namespace: childNamespace, Name: rawName}, childNamespace, nil
}

// bindName reserves the node's arena slot and registers its qualified name
// (and aliases) before the caller fills in the node's body, so a field that
// refers back to this name — directly or through a cycle of other named
// types — resolves instead of failing as unknown.
func (b *builder) bindName(kind schema.Kind, qname schema.QualifiedName, childNamespace string, aliases []string) (*schema.Node, int) {
	resolvedAliases := make([]string, len(aliases))
	for i, alias := range aliases {
		resolvedAliases[i] = resolveName(alias, childNamespace)
	}

	node := &schema.Node{Kind: kind, Name: qname, Aliases: resolvedAliases}
	idx := b.arena.Register(node)
	b.names[qname.Full()] = idx
	for _, alias := range resolvedAliases {
		b.names[alias] = idx
	}
	return node, idx
}

func (b *builder) buildRecord(obj map[string]interface{}, namespace, path string) (*schema.Node, error) {
	qname, childNamespace, err := b.resolveDeclaredName(obj, namespace, path)
	if err != nil {
		return nil, err
	}
	aliases, err := b.stringSlice(obj["aliases"], joinPath(path, "aliases"))
	if err != nil {
		return nil, err
	}
	node, _ := b.bindName(schema.KindRecord, qname, childNamespace, aliases)

	rawFields, ok := obj["fields"].([]interface{})
	if !ok {
		return nil, schema.InvalidAtPath(joinPath(path, "fields"), `record %q is missing required "fields" array`, qname.Full())
	}

	fields := make([]*schema.Field, len(rawFields))
	seenFields := make(map[string]bool, len(rawFields))
	for i, rf := range rawFields {
		fieldPath := joinPath(path, "fields["+strconv.Itoa(i)+"]")
		fobj, ok := rf.(map[string]interface{})
		if !ok {
			return nil, schema.InvalidAtPath(fieldPath, "field must be an object")
		}

		fname, ok := fobj["name"].(string)
		if !ok || fname == "" {
			return nil, schema.InvalidAtPath(joinPath(fieldPath, "name"), `field is missing required non-empty "name"`)
		}
		if seenFields[fname] {
			return nil, schema.InvalidAtPath(joinPath(fieldPath, "name"), "record %q has duplicate field name %q", qname.Full(), fname)
		}
		seenFields[fname] = true

		ftypeRaw, ok := fobj["type"]
		if !ok {
			return nil, schema.InvalidAtPath(joinPath(fieldPath, "type"), `field %q is missing required "type"`, fname)
		}
		ftype, err := b.build(ftypeRaw, childNamespace, joinPath(fieldPath, "type"))
		if err != nil {
			return nil, err
		}

		fieldAliases, err := b.stringSlice(fobj["aliases"], joinPath(fieldPath, "aliases"))
		if err != nil {
			return nil, err
		}

		field := &schema.Field{Name: fname, Type: ftype, Aliases: fieldAliases}
		if defRaw, present := fobj["default"]; present {
			if defRaw == nil {
				field.Default = &schema.Default{IsNull: true}
			} else {
				field.Default = &schema.Default{Value: defRaw}
			}
		}
		fields[i] = field
	}
	node.Fields = fields
	return node, nil
}

func (b *builder) buildEnum(obj map[string]interface{}, namespace, path string) (*schema.Node, error) {
	qname, childNamespace, err := b.resolveDeclaredName(obj, namespace, path)
	if err != nil {
		return nil, err
	}
	aliases, err := b.stringSlice(obj["aliases"], joinPath(path, "aliases"))
	if err != nil {
		return nil, err
	}
	node, _ := b.bindName(schema.KindEnum, qname, childNamespace, aliases)

	rawSymbols, ok := obj["symbols"].([]interface{})
	if !ok {
		return nil, schema.InvalidAtPath(joinPath(path, "symbols"), `enum %q is missing required "symbols" array`, qname.Full())
	}
	symbols, err := b.stringSlice(rawSymbols, joinPath(path, "symbols"))
	if err != nil {
		return nil, err
	}
	seenSymbols := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		if seenSymbols[s] {
			return nil, schema.InvalidAtPath(joinPath(path, "symbols"), "enum %q has duplicate symbol %q", qname.Full(), s)
		}
		seenSymbols[s] = true
	}
	node.Symbols = symbols

	if defRaw, present := obj["default"]; present && defRaw != nil {
		defStr, ok := defRaw.(string)
		if !ok {
			return nil, schema.InvalidAtPath(joinPath(path, "default"), "enum default must be a string")
		}
		found := false
		for _, s := range symbols {
			if s == defStr {
				found = true
				break
			}
		}
		if !found {
			return nil, schema.InvalidAtPath(joinPath(path, "default"), "enum default %q is not one of its symbols", defStr)
		}
		node.EnumDefault = &defStr
	}

	return node, nil
}

func (b *builder) buildArray(obj map[string]interface{}, namespace, path string) (*schema.Node, error) {
	itemsRaw, ok := obj["items"]
	if !ok {
		return nil, schema.InvalidAtPath(joinPath(path, "items"), `array schema is missing required "items"`)
	}
	items, err := b.build(itemsRaw, namespace, joinPath(path, "items"))
	if err != nil {
		return nil, err
	}
	return &schema.Node{Kind: schema.KindArray, Items: items}, nil
}

func (b *builder) buildMap(obj map[string]interface{}, namespace, path string) (*schema.Node, error) {
	valuesRaw, ok := obj["values"]
	if !ok {
		return nil, schema.InvalidAtPath(joinPath(path, "values"), `map schema is missing required "values"`)
	}
	values, err := b.build(valuesRaw, namespace, joinPath(path, "values"))
	if err != nil {
		return nil, err
	}
	return &schema.Node{Kind: schema.KindMap, Values: values}, nil
}

func (b *builder) buildFixed(obj map[string]interface{}, namespace, path string) (*schema.Node, error) {
	qname, childNamespace, err := b.resolveDeclaredName(obj, namespace, path)
	if err != nil {
		return nil, err
	}
	aliases, err := b.stringSlice(obj["aliases"], joinPath(path, "aliases"))
	if err != nil {
		return nil, err
	}
	node, _ := b.bindName(schema.KindFixed, qname, childNamespace, aliases)

	size, err := asInt(obj["size"])
	if err != nil || size < 0 {
		return nil, schema.InvalidAtPath(joinPath(path, "size"), "fixed %q must have a non-negative integer size", qname.Full())
	}
	node.Size = size
	return node, nil
}

func (b *builder) stringSlice(v interface{}, path string) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil, schema.InvalidAtPath(pathOrRoot(path), "expected an array of strings")
	}
	out := make([]string, len(arr))
	for i, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, schema.InvalidAtPath(pathOrRoot(joinPath(path, "["+strconv.Itoa(i)+"]")), "expected a string")
		}
		out[i] = s
	}
	return out, nil
}

func asInt(v interface{}) (int, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, schema.Invalidf("expected a number")
	}
	if f != float64(int(f)) {
		return 0, schema.Invalidf("expected an integer")
	}
	return int(f), nil
}
