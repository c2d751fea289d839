// Package avro implements Avro schema resolution compatibility: whether a
// reader schema can decode data written under a writer schema.
package avro

import "fmt"

// Result carries the outcome of Explain: whether reader can read data
// written under writer, and, when it cannot, one message per point of
// incompatibility found along the way.
type Result struct {
	IsCompatible bool     `json:"is_compatible"`
	Messages     []string `json:"messages,omitempty"`
}

// NewCompatibleResult returns a Result with no incompatibility messages.
func NewCompatibleResult() *Result {
	return &Result{IsCompatible: true}
}

// NewIncompatibleResult returns an incompatible Result carrying the given
// messages.
func NewIncompatibleResult(messages ...string) *Result {
	return &Result{Messages: messages}
}

// AddMessage appends a formatted incompatibility message and marks the
// result incompatible.
func (r *Result) AddMessage(format string, args ...interface{}) {
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
	r.IsCompatible = false
}

// Merge folds another result's messages into this one. A compatible other
// leaves r unchanged.
func (r *Result) Merge(other *Result) {
	if !other.IsCompatible {
		r.IsCompatible = false
		r.Messages = append(r.Messages, other.Messages...)
	}
}
