package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and infrastructure layers return
// these (optionally wrapped) so callers can tell a missing row from a broken query.
//
// - ErrNotFound: entity does not exist in store
// - ErrUnknownField: field name is not declared by the section schema
// - ErrKindMismatch: value does not match the declared field kind
// - ErrUnavailable: backing service (database, broker, cache) cannot be reached
//
// Business-rule violations are never errors; they go to a validation.Builder.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnknownField = errors.New("unknown field")
	ErrKindMismatch = errors.New("field kind mismatch")
	ErrUnavailable  = errors.New("unavailable")
)
