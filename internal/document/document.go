// Package document models the versioned, schema-sectioned records (cards)
// that workflow hooks inspect. Field access is scoped by a Schema: asking for
// an undeclared field is a lookup failure, never a panic.
package document

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"docflow/pkg/platform/sentinel"
)

// StoreMode tells whether a document is being created or updated.
type StoreMode int

const (
	StoreModeUpdate StoreMode = iota
	StoreModeInsert
)

func (m StoreMode) String() string {
	if m == StoreModeInsert {
		return "insert"
	}
	return "update"
}

// File is an attachment known to the in-memory document.
type File struct {
	ID   uuid.UUID
	Name string
}

// Document is one workflow record.
type Document struct {
	ID        uuid.UUID
	TypeID    uuid.UUID
	Version   int
	StoreMode StoreMode

	// Files is the in-memory attachment list. It may be incomplete when the
	// document was not fully loaded; nil means the list was not loaded at all.
	Files []File

	schema *Schema

	mu       sync.RWMutex
	sections map[string]*Section
}

// New creates an empty document bound to schema.
func New(schema *Schema, id uuid.UUID, mode StoreMode) *Document {
	return &Document{
		ID:        id,
		StoreMode: mode,
		schema:    schema,
		sections:  make(map[string]*Section),
	}
}

// Schema returns the schema the document is bound to.
func (d *Document) Schema() *Schema {
	return d.schema
}

// Section returns a section carried by this document. A declared section that
// was not loaded is reported as absent.
func (d *Document) Section(name string) (*Section, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.sections[name]
	return s, ok
}

// AddSection attaches an empty declared section, returning the existing one
// if already present.
func (d *Document) AddSection(name string) (*Section, error) {
	def, ok := d.schema.Section(name)
	if !ok {
		return nil, fmt.Errorf("section %q: %w", name, sentinel.ErrUnknownField)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if s, ok := d.sections[name]; ok {
		return s, nil
	}
	s := newSection(def)
	d.sections[name] = s
	return s, nil
}

// SectionNames lists the loaded sections in name order.
func (d *Document) SectionNames() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.sections))
	for n := range d.sections {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// FilesLoaded reports whether the in-memory attachment list was loaded.
func (d *Document) FilesLoaded() bool {
	return d.Files != nil
}
