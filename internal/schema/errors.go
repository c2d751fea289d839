package schema

import "fmt"

// InvalidError is the single error category this package's callers
// (Sanitize and Build) ever return: the schema text could not be turned
// into a canonical form or a tree, for a structural or semantic reason
// named in Message. Offset and Path are filled in where available but
// never both — a JSON parse failure carries a byte Offset, a structural or
// semantic failure discovered while walking the DOM carries a member Path.
type InvalidError struct {
	Message string
	Offset  int64  // -1 when not applicable
	Path    string // "" when not applicable
	Schema  string // original schema text, appended for human debugging
}

func (e *InvalidError) Error() string {
	msg := e.Message
	switch {
	case e.Path != "":
		msg = fmt.Sprintf("%s (at %s)", msg, e.Path)
	case e.Offset >= 0:
		msg = fmt.Sprintf("%s (at byte %d)", msg, e.Offset)
	}
	if e.Schema != "" {
		msg = fmt.Sprintf("%s\nschema: %s", msg, e.Schema)
	}
	return msg
}

// Invalidf builds an InvalidError with neither an offset nor a path.
func Invalidf(format string, args ...interface{}) *InvalidError {
	return &InvalidError{Message: fmt.Sprintf(format, args...), Offset: -1}
}

// InvalidAtOffset builds an InvalidError pinned to a byte offset, typically
// from a JSON parse failure.
func InvalidAtOffset(offset int64, format string, args ...interface{}) *InvalidError {
	return &InvalidError{Message: fmt.Sprintf(format, args...), Offset: offset}
}

// InvalidAtPath builds an InvalidError pinned to a member path, for
// structural or semantic failures discovered while walking the schema DOM.
func InvalidAtPath(path, format string, args ...interface{}) *InvalidError {
	return &InvalidError{Message: fmt.Sprintf(format, args...), Offset: -1, Path: path}
}
