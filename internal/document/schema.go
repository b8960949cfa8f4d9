package document

import (
	"fmt"

	"docflow/pkg/platform/sentinel"
)

// Kind is the storage type of a field.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindUUID
	KindDate
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindUUID:
		return "uuid"
	case KindDate:
		return "date"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FieldDef declares one field of a section.
type FieldDef struct {
	Name string
	Kind Kind
}

// SectionDef declares a section and the fields it owns. Table is the backing
// table name; it defaults to Name.
type SectionDef struct {
	Name   string
	Table  string
	Fields []FieldDef
}

// Field looks up a declared field.
func (d SectionDef) Field(name string) (FieldDef, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// TableName returns the backing table of the section.
func (d SectionDef) TableName() string {
	if d.Table != "" {
		return d.Table
	}
	return d.Name
}

// Schema is the set of declared sections. A field belongs to exactly one section.
type Schema struct {
	sections map[string]SectionDef
	owners   map[string]string
}

// NewSchema validates and indexes section declarations. It panics on a field
// declared by two sections, since schemas are static program data.
func NewSchema(defs ...SectionDef) *Schema {
	s := &Schema{
		sections: make(map[string]SectionDef, len(defs)),
		owners:   make(map[string]string),
	}
	for _, d := range defs {
		if _, dup := s.sections[d.Name]; dup {
			panic(fmt.Sprintf("document: section %q declared twice", d.Name))
		}
		for _, f := range d.Fields {
			key := d.Name + "." + f.Name
			if _, dup := s.owners[key]; dup {
				panic(fmt.Sprintf("document: field %q declared twice", key))
			}
			s.owners[key] = d.Name
		}
		s.sections[d.Name] = d
	}
	return s
}

// Section returns the declaration of a section.
func (s *Schema) Section(name string) (SectionDef, bool) {
	d, ok := s.sections[name]
	return d, ok
}

// Field resolves section.field to its declaration.
func (s *Schema) Field(section, field string) (FieldDef, error) {
	d, ok := s.sections[section]
	if !ok {
		return FieldDef{}, fmt.Errorf("section %q: %w", section, sentinel.ErrUnknownField)
	}
	f, ok := d.Field(field)
	if !ok {
		return FieldDef{}, fmt.Errorf("%s.%s: %w", section, field, sentinel.ErrUnknownField)
	}
	return f, nil
}
