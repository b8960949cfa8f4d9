package document

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"docflow/pkg/platform/sentinel"
)

// Wire is the JSON form of a document submitted by a host.
type Wire struct {
	ID        uuid.UUID                 `json:"id"`
	TypeID    uuid.UUID                 `json:"type_id"`
	Version   int                       `json:"version"`
	StoreMode string                    `json:"store_mode"`
	Files     []WireFile                `json:"files"`
	Sections  map[string]map[string]any `json:"sections"`
}

type WireFile struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// FromWire builds a document from its JSON form. Sections and fields must be
// declared by schema; JSON values are converted to the declared kind. Omitted
// files mean the attachment list was not loaded.
func FromWire(schema *Schema, w Wire) (*Document, error) {
	mode, err := parseStoreMode(w.StoreMode)
	if err != nil {
		return nil, err
	}
	doc := New(schema, w.ID, mode)
	doc.TypeID = w.TypeID
	doc.Version = w.Version
	if w.Files != nil {
		doc.Files = make([]File, 0, len(w.Files))
		for _, f := range w.Files {
			doc.Files = append(doc.Files, File{ID: f.ID, Name: f.Name})
		}
	}

	for name, fields := range w.Sections {
		section, err := doc.AddSection(name)
		if err != nil {
			return nil, err
		}
		for field, raw := range fields {
			def, ok := section.Def().Field(field)
			if !ok {
				return nil, fmt.Errorf("%s.%s: %w", name, field, sentinel.ErrUnknownField)
			}
			v, err := fromJSON(def.Kind, raw)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", name, field, err)
			}
			if err := section.Set(field, v); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

func parseStoreMode(s string) (StoreMode, error) {
	switch s {
	case "", "update":
		return StoreModeUpdate, nil
	case "insert":
		return StoreModeInsert, nil
	default:
		return 0, fmt.Errorf("store mode %q: %w", s, sentinel.ErrKindMismatch)
	}
}

// fromJSON converts a decoded JSON value to the Go type NewValue expects.
func fromJSON(kind Kind, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch kind {
	case KindInt:
		switch n := raw.(type) {
		case float64:
			if n != math.Trunc(n) {
				return nil, fmt.Errorf("%v is not an integer: %w", n, sentinel.ErrKindMismatch)
			}
			return int64(n), nil
		case json.Number:
			return n.Int64()
		}
	case KindDate:
		if s, ok := raw.(string); ok {
			for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
				if t, err := time.Parse(layout, s); err == nil {
					return t, nil
				}
			}
			return nil, fmt.Errorf("%q is not a date: %w", s, sentinel.ErrKindMismatch)
		}
	}
	return raw, nil
}
