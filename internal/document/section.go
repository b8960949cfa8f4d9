package document

import (
	"fmt"
	"sync"

	"docflow/pkg/platform/sentinel"
)

// FieldChangedFunc reacts to a field value change.
type FieldChangedFunc func(name string, value any)

// Section is a named group of typed fields.
type Section struct {
	def SectionDef

	mu     sync.RWMutex
	values map[string]Value
	subs   map[string]FieldChangedFunc
	order  []string
}

func newSection(def SectionDef) *Section {
	return &Section{
		def:    def,
		values: make(map[string]Value),
		subs:   make(map[string]FieldChangedFunc),
	}
}

func (s *Section) Name() string { return s.def.Name }

// Def returns the section declaration.
func (s *Section) Def() SectionDef { return s.def }

// Has reports whether the section carries a value (possibly null) for a
// declared field.
func (s *Section) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[name]
	return ok
}

// Get reads a declared field. Declared but unset fields read as null.
func (s *Section) Get(name string) (Value, error) {
	f, ok := s.def.Field(name)
	if !ok {
		return Value{}, fmt.Errorf("%s.%s: %w", s.def.Name, name, sentinel.ErrUnknownField)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[name]; ok {
		return v, nil
	}
	return Null(f.Kind), nil
}

// Set writes a declared field and notifies subscribers with the normalized value.
func (s *Section) Set(name string, v any) error {
	f, ok := s.def.Field(name)
	if !ok {
		return fmt.Errorf("%s.%s: %w", s.def.Name, name, sentinel.ErrUnknownField)
	}
	val, err := NewValue(f.Kind, v)
	if err != nil {
		return fmt.Errorf("%s.%s: %w", s.def.Name, name, err)
	}

	s.mu.Lock()
	s.values[name] = val
	subs := make([]FieldChangedFunc, 0, len(s.order))
	for _, key := range s.order {
		subs = append(subs, s.subs[key])
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(name, val.Any())
	}
	return nil
}

// Subscribe registers fn under key. Registering the same key again replaces
// the previous reaction, so re-initializing a view never stacks handlers.
// The returned func removes the registration.
func (s *Section) Subscribe(key string, fn FieldChangedFunc) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.subs[key]; !exists {
		s.order = append(s.order, key)
	}
	s.subs[key] = fn
	return func() { s.unsubscribe(key) }
}

func (s *Section) unsubscribe(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[key]; !ok {
		return
	}
	delete(s.subs, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Subscribers returns the number of registered reactions.
func (s *Section) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
