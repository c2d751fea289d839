package avro

import "github.com/axonops/avro-schema-core/internal/schema"

// Compatible reports whether data written under writer can be read back
// using reader, per Avro's schema resolution rules. It never returns an
// error: an incompatible pair simply reports false.
func Compatible(reader, writer *schema.Schema) bool {
	c := &checker{reader: reader, writer: writer, visited: map[pairKey]bool{}}
	return c.check(reader.Root, writer.Root)
}

// pairKey identifies one (reader record, writer record) pair by qualified
// name. Once a pair has been entered, a recursive schema
// that reaches the same pair again is assumed compatible — the coinductive
// hypothesis that makes checking a self- or mutually-recursive schema
// terminate instead of looping forever.
type pairKey struct {
	reader, writer string
}

type checker struct {
	reader, writer *schema.Schema
	visited        map[pairKey]bool
}

func (c *checker) check(r, w *schema.Node) bool {
	r = c.reader.Resolve(r)
	w = c.writer.Resolve(w)

	if promotable(w.Kind, r.Kind) {
		return true
	}

	if r.Kind != w.Kind {
		switch {
		case r.Kind == schema.KindUnion:
			return c.checkReaderUnion(r, w)
		case w.Kind == schema.KindUnion:
			return c.checkWriterUnion(r, w)
		default:
			return false
		}
	}

	switch r.Kind {
	case schema.KindRecord:
		return c.checkRecord(r, w)
	case schema.KindEnum:
		return c.checkEnum(r, w)
	case schema.KindArray:
		return c.check(r.Items, w.Items)
	case schema.KindMap:
		return c.check(r.Values, w.Values)
	case schema.KindUnion:
		return c.checkUnion(r, w)
	case schema.KindFixed:
		return namesMatch(r, w) && r.Size == w.Size
	default:
		return true
	}
}

func (c *checker) checkRecord(r, w *schema.Node) bool {
	if !namesMatch(r, w) {
		return false
	}

	key := pairKey{r.Name.Full(), w.Name.Full()}
	if c.visited[key] {
		return true
	}
	c.visited[key] = true

	writerFields := make(map[string]*schema.Field, len(w.Fields))
	for _, f := range w.Fields {
		writerFields[f.Name] = f
		for _, alias := range f.Aliases {
			writerFields[alias] = f
		}
	}

	for _, rf := range r.Fields {
		wf := findWriterField(rf, writerFields)
		if wf == nil {
			if !rf.HasNonNullDefault() {
				return false
			}
			continue
		}
		if !c.check(rf.Type, wf.Type) {
			return false
		}
	}
	return true
}

func findWriterField(rf *schema.Field, writerFields map[string]*schema.Field) *schema.Field {
	if wf, ok := writerFields[rf.Name]; ok {
		return wf
	}
	for _, alias := range rf.Aliases {
		if wf, ok := writerFields[alias]; ok {
			return wf
		}
	}
	return nil
}

func (c *checker) checkEnum(r, w *schema.Node) bool {
	if !namesMatch(r, w) {
		return false
	}

	readerSymbols := make(map[string]bool, len(r.Symbols))
	for _, s := range r.Symbols {
		readerSymbols[s] = true
	}

	for _, ws := range w.Symbols {
		if !readerSymbols[ws] && r.EnumDefault == nil {
			return false
		}
	}
	return true
}

func (c *checker) checkUnion(r, w *schema.Node) bool {
	for _, wt := range w.Branches {
		found := false
		for _, rt := range r.Branches {
			if c.check(rt, wt) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// checkReaderUnion handles a reader union against a non-union writer: the
// writer schema need only be absorbed by one reader branch.
func (c *checker) checkReaderUnion(r, w *schema.Node) bool {
	for _, rt := range r.Branches {
		if c.check(rt, w) {
			return true
		}
	}
	return false
}

// checkWriterUnion handles a non-union reader against a writer union: every
// writer branch must be readable by the single reader schema.
func (c *checker) checkWriterUnion(r, w *schema.Node) bool {
	for _, wt := range w.Branches {
		if !c.check(r, wt) {
			return false
		}
	}
	return true
}

func namesMatch(r, w *schema.Node) bool {
	if r.Name.Equal(w.Name) {
		return true
	}
	rFull, wFull := r.Name.Full(), w.Name.Full()
	for _, alias := range w.Aliases {
		if rFull == alias {
			return true
		}
	}
	for _, alias := range r.Aliases {
		if wFull == alias {
			return true
		}
	}
	return false
}

// promotable reports whether a value written as writerKind can be read as
// readerKind without a type mismatch: the numeric widening promotions plus
// the string/bytes symmetry that Avro's resolution rules allow. A matching
// pair of kinds with no promotion needed is handled by the caller, not here.
func promotable(writerKind, readerKind schema.Kind) bool {
	switch writerKind {
	case schema.KindInt:
		return readerKind == schema.KindLong || readerKind == schema.KindFloat || readerKind == schema.KindDouble
	case schema.KindLong:
		return readerKind == schema.KindFloat || readerKind == schema.KindDouble
	case schema.KindFloat:
		return readerKind == schema.KindDouble
	case schema.KindString:
		return readerKind == schema.KindBytes
	case schema.KindBytes:
		return readerKind == schema.KindString
	default:
		return false
	}
}
