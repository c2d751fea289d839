package avro

import (
	"fmt"

	"github.com/axonops/avro-schema-core/internal/schema"
)

// Explain walks the same resolution rules as Compatible but keeps going
// after the first mismatch, collecting one message per incompatibility it
// finds along with the field or branch path it occurred at. Use Compatible
// when only the bool matters; Explain is for surfacing why two schemas
// don't resolve.
func Explain(reader, writer *schema.Schema) *Result {
	e := &explainer{reader: reader, writer: writer, visited: map[pairKey]bool{}}
	return e.explain(reader.Root, writer.Root, "")
}

type explainer struct {
	reader, writer *schema.Schema
	visited        map[pairKey]bool
}

func (e *explainer) explain(r, w *schema.Node, path string) *Result {
	r = e.reader.Resolve(r)
	w = e.writer.Resolve(w)
	result := NewCompatibleResult()

	if promotable(w.Kind, r.Kind) {
		return result
	}

	if r.Kind != w.Kind {
		switch {
		case r.Kind == schema.KindUnion:
			return e.explainReaderUnion(r, w, path)
		case w.Kind == schema.KindUnion:
			return e.explainWriterUnion(r, w, path)
		default:
			result.AddMessage("%s: type mismatch: reader has %s, writer has %s", pathOrRoot(path), r.Kind, w.Kind)
			return result
		}
	}

	switch r.Kind {
	case schema.KindRecord:
		return e.explainRecord(r, w, path)
	case schema.KindEnum:
		return e.explainEnum(r, w, path)
	case schema.KindArray:
		return e.explain(r.Items, w.Items, appendPath(path, "[]"))
	case schema.KindMap:
		return e.explain(r.Values, w.Values, appendPath(path, "{}"))
	case schema.KindUnion:
		return e.explainUnion(r, w, path)
	case schema.KindFixed:
		if !namesMatch(r, w) {
			result.AddMessage("%s: fixed name mismatch: reader has %s, writer has %s", pathOrRoot(path), r.Name.Full(), w.Name.Full())
		}
		if r.Size != w.Size {
			result.AddMessage("%s: fixed size mismatch: reader has %d, writer has %d", pathOrRoot(path), r.Size, w.Size)
		}
		return result
	default:
		return result
	}
}

func (e *explainer) explainRecord(r, w *schema.Node, path string) *Result {
	result := NewCompatibleResult()

	if !namesMatch(r, w) {
		result.AddMessage("%s: record name mismatch: reader has %s, writer has %s", pathOrRoot(path), r.Name.Full(), w.Name.Full())
		return result
	}

	key := pairKey{r.Name.Full(), w.Name.Full()}
	if e.visited[key] {
		return result
	}
	e.visited[key] = true

	writerFields := make(map[string]*schema.Field, len(w.Fields))
	for _, f := range w.Fields {
		writerFields[f.Name] = f
		for _, alias := range f.Aliases {
			writerFields[alias] = f
		}
	}

	for _, rf := range r.Fields {
		fieldPath := appendPath(path, rf.Name)

		wf := findWriterField(rf, writerFields)
		if wf == nil {
			if !rf.HasNonNullDefault() {
				result.AddMessage("%s: reader field '%s' has no non-null default and is missing from writer", pathOrRoot(path), rf.Name)
			}
			continue
		}

		result.Merge(e.explain(rf.Type, wf.Type, fieldPath))
	}

	return result
}

func (e *explainer) explainEnum(r, w *schema.Node, path string) *Result {
	result := NewCompatibleResult()

	if !namesMatch(r, w) {
		result.AddMessage("%s: enum name mismatch: reader has %s, writer has %s", pathOrRoot(path), r.Name.Full(), w.Name.Full())
		return result
	}

	readerSymbols := make(map[string]bool, len(r.Symbols))
	for _, s := range r.Symbols {
		readerSymbols[s] = true
	}

	for _, ws := range w.Symbols {
		if !readerSymbols[ws] && r.EnumDefault == nil {
			result.AddMessage("%s: writer enum symbol '%s' not found in reader and no default set", pathOrRoot(path), ws)
		}
	}

	return result
}

func (e *explainer) explainUnion(r, w *schema.Node, path string) *Result {
	result := NewCompatibleResult()

	for _, wt := range w.Branches {
		found := false
		for _, rt := range r.Branches {
			if e.explain(rt, wt, path).IsCompatible {
				found = true
				break
			}
		}
		if !found {
			result.AddMessage("%s: writer union branch %s is not compatible with any reader union branch", pathOrRoot(path), e.writer.Resolve(wt).Kind)
		}
	}

	return result
}

func (e *explainer) explainReaderUnion(r, w *schema.Node, path string) *Result {
	for _, rt := range r.Branches {
		if e.explain(rt, w, path).IsCompatible {
			return NewCompatibleResult()
		}
	}
	return NewIncompatibleResult(
		fmt.Sprintf("%s: writer type %s is not compatible with any branch in reader union", pathOrRoot(path), e.writer.Resolve(w).Kind))
}

func (e *explainer) explainWriterUnion(r, w *schema.Node, path string) *Result {
	for _, wt := range w.Branches {
		branch := e.explain(r, wt, path)
		if !branch.IsCompatible {
			return NewIncompatibleResult(
				fmt.Sprintf("%s: reader type %s cannot read writer union branch %s", pathOrRoot(path), e.reader.Resolve(r).Kind, e.writer.Resolve(wt).Kind))
		}
	}
	return NewCompatibleResult()
}

func pathOrRoot(path string) string {
	if path == "" {
		return "root"
	}
	return path
}

func appendPath(path, segment string) string {
	if path == "" {
		return segment
	}
	return path + "." + segment
}
