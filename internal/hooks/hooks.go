// Package hooks holds the document lifecycle extensions and the pipeline
// that drives them for one storage operation.
package hooks

import (
	"context"

	"docflow/internal/document"
	"docflow/internal/session"
	"docflow/pkg/platform/tx"
	"docflow/pkg/validation"
)

// StoreRequest describes a pending storage operation.
type StoreRequest struct {
	Document *document.Document
	// ForceTransaction asks the host to open an explicit transaction before
	// AfterBeginTransaction runs.
	ForceTransaction bool
}

// StoreContext is created per storage operation and dropped when it ends.
// Validation only ever grows during the operation.
type StoreContext struct {
	Request    *StoreRequest
	Validation *validation.Builder
	// DB is the scope of the operation: the open transaction once
	// AfterBeginTransaction runs.
	DB      tx.Querier
	Session session.Session
}

// Document returns the document being stored, or nil.
func (c *StoreContext) Document() *document.Document {
	if c == nil || c.Request == nil {
		return nil
	}
	return c.Request.Document
}

// StoreExtension reacts to server-side storage events. Extensions append to
// the validation builder and never commit or roll back.
type StoreExtension interface {
	BeforeRequest(ctx context.Context, sc *StoreContext) error
	AfterBeginTransaction(ctx context.Context, sc *StoreContext) error
}

// Controls toggles the visibility of named form controls.
type Controls interface {
	SetVisible(name string, visible bool)
}

// Notifier shows a validation result to the user when it has entries.
type Notifier interface {
	ShowNotEmpty(ctx context.Context, result *validation.Result)
}

// CardModel is the client-side view of an opened document.
type CardModel interface {
	Document() *document.Document
	InSpecialMode() bool
	Controls() Controls
}

// UIContext is passed to UI extensions when a form is initialized.
type UIContext struct {
	Model    CardModel
	Notifier Notifier
}
