// Package validation provides the append-only result accumulator shared by
// document rules, cross-tier requests and notification dispatch.
//
// A Builder collects entries for exactly one operation. It never forgets an
// entry: once an error has been added, IsSuccessful stays false for the rest
// of the operation. Build returns an immutable snapshot for callers that must
// not observe later appends.
package validation

import (
	"strings"
	"sync"
)

// Severity classifies a validation entry.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Entry is one (severity, message) pair. Code is a stable machine-readable key.
type Entry struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code,omitempty"`
	Message  string   `json:"message"`
}

// Builder accumulates entries. The zero value is ready to use.
type Builder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Add(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, e)
}

func (b *Builder) AddError(code, message string) {
	b.Add(Entry{Severity: SeverityError, Code: code, Message: message})
}

func (b *Builder) AddWarning(code, message string) {
	b.Add(Entry{Severity: SeverityWarning, Code: code, Message: message})
}

func (b *Builder) AddInfo(code, message string) {
	b.Add(Entry{Severity: SeverityInfo, Code: code, Message: message})
}

// Append copies every entry of r into the builder. A nil result is ignored.
func (b *Builder) Append(r *Result) {
	if r == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, r.entries...)
}

// IsSuccessful reports whether no error entry has been added so far.
func (b *Builder) IsSuccessful() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !hasErrors(b.entries)
}

// Len returns the number of entries collected so far.
func (b *Builder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Build returns a snapshot of the entries collected so far.
func (b *Builder) Build() *Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	entries := make([]Entry, len(b.entries))
	copy(entries, b.entries)
	return &Result{entries: entries}
}

// Result is an immutable set of validation entries.
type Result struct {
	entries []Entry
}

// Success returns an empty, successful result.
func Success() *Result {
	return &Result{}
}

// Failure returns a result holding a single error entry.
func Failure(code, message string) *Result {
	return &Result{entries: []Entry{{Severity: SeverityError, Code: code, Message: message}}}
}

// FromEntries builds a result from decoded entries, e.g. a cross-tier response.
func FromEntries(entries []Entry) *Result {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Result{entries: cp}
}

// IsSuccessful reports whether the result holds no error entries.
// A nil result is successful.
func (r *Result) IsSuccessful() bool {
	if r == nil {
		return true
	}
	return !hasErrors(r.entries)
}

// IsEmpty reports whether the result holds no entries at all.
func (r *Result) IsEmpty() bool {
	return r == nil || len(r.entries) == 0
}

// Entries returns a copy of all entries in insertion order.
func (r *Result) Entries() []Entry {
	if r == nil {
		return nil
	}
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Errors returns only the error-severity entries.
func (r *Result) Errors() []Entry {
	if r == nil {
		return nil
	}
	var out []Entry
	for _, e := range r.entries {
		if e.Severity == SeverityError {
			out = append(out, e)
		}
	}
	return out
}

// HasCode reports whether any entry carries the given code.
func (r *Result) HasCode(code string) bool {
	if r == nil {
		return false
	}
	for _, e := range r.entries {
		if e.Code == code {
			return true
		}
	}
	return false
}

// Error joins all error messages; handy for log attributes.
func (r *Result) Error() string {
	errs := r.Errors()
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

func hasErrors(entries []Entry) bool {
	for _, e := range entries {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}
