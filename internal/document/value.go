package document

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"docflow/pkg/platform/sentinel"
)

// Value is a typed field value. The zero Value is null.
type Value struct {
	kind Kind
	v    any
}

// Null returns a null value of the given kind.
func Null(kind Kind) Value {
	return Value{kind: kind}
}

// NewValue normalizes v to the representation used for kind. Pointers are
// dereferenced and nil (or a nil pointer) becomes a null value.
func NewValue(kind Kind, v any) (Value, error) {
	if v == nil {
		return Null(kind), nil
	}
	switch kind {
	case KindString:
		switch t := v.(type) {
		case string:
			return Value{kind: kind, v: t}, nil
		case *string:
			if t == nil {
				return Null(kind), nil
			}
			return Value{kind: kind, v: *t}, nil
		}
	case KindInt:
		switch t := v.(type) {
		case int:
			return Value{kind: kind, v: int64(t)}, nil
		case int32:
			return Value{kind: kind, v: int64(t)}, nil
		case int64:
			return Value{kind: kind, v: t}, nil
		case *int64:
			if t == nil {
				return Null(kind), nil
			}
			return Value{kind: kind, v: *t}, nil
		}
	case KindUUID:
		switch t := v.(type) {
		case uuid.UUID:
			return Value{kind: kind, v: t}, nil
		case *uuid.UUID:
			if t == nil {
				return Null(kind), nil
			}
			return Value{kind: kind, v: *t}, nil
		case uuid.NullUUID:
			if !t.Valid {
				return Null(kind), nil
			}
			return Value{kind: kind, v: t.UUID}, nil
		case string:
			id, err := uuid.Parse(t)
			if err != nil {
				return Value{}, fmt.Errorf("parse uuid: %w", err)
			}
			return Value{kind: kind, v: id}, nil
		}
	case KindDate:
		switch t := v.(type) {
		case time.Time:
			return Value{kind: kind, v: t}, nil
		case *time.Time:
			if t == nil {
				return Null(kind), nil
			}
			return Value{kind: kind, v: *t}, nil
		}
	case KindBool:
		switch t := v.(type) {
		case bool:
			return Value{kind: kind, v: t}, nil
		case *bool:
			if t == nil {
				return Null(kind), nil
			}
			return Value{kind: kind, v: *t}, nil
		}
	}
	return Value{}, fmt.Errorf("%T is not a %s value: %w", v, kind, sentinel.ErrKindMismatch)
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.v == nil }

// Any returns the underlying value, or nil for null.
func (v Value) Any() any { return v.v }

func (v Value) String() (string, bool) {
	s, ok := v.v.(string)
	return s, ok
}

func (v Value) Int() (int64, bool) {
	i, ok := v.v.(int64)
	return i, ok
}

func (v Value) UUID() (uuid.UUID, bool) {
	id, ok := v.v.(uuid.UUID)
	return id, ok
}

func (v Value) Time() (time.Time, bool) {
	t, ok := v.v.(time.Time)
	return t, ok
}

func (v Value) Bool() (bool, bool) {
	b, ok := v.v.(bool)
	return b, ok
}

// UUIDPtr returns the value as *uuid.UUID, nil when null.
func (v Value) UUIDPtr() *uuid.UUID {
	if id, ok := v.UUID(); ok {
		return &id
	}
	return nil
}

// TimePtr returns the value as *time.Time, nil when null.
func (v Value) TimePtr() *time.Time {
	if t, ok := v.Time(); ok {
		return &t
	}
	return nil
}

// Values is a set of field values read for one section.
type Values map[string]Value

// Get returns the value for name; an absent name reads as null.
func (vs Values) Get(name string) Value {
	return vs[name]
}
