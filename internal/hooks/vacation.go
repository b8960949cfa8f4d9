package hooks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"docflow/internal/rules"
)

// VacationStoreExtension validates vacation requests inside the storage
// transaction.
type VacationStoreExtension struct {
	loader    *rules.Loader
	evaluator *rules.Evaluator
	logger    *slog.Logger
}

type VacationOption func(*VacationStoreExtension)

func WithVacationLogger(logger *slog.Logger) VacationOption {
	return func(e *VacationStoreExtension) {
		e.logger = logger
	}
}

func NewVacationStoreExtension(loader *rules.Loader, evaluator *rules.Evaluator, opts ...VacationOption) (*VacationStoreExtension, error) {
	if loader == nil {
		return nil, errors.New("loader is required")
	}
	if evaluator == nil {
		return nil, errors.New("evaluator is required")
	}
	e := &VacationStoreExtension{loader: loader, evaluator: evaluator, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// BeforeRequest forces an explicit transaction unless validation already failed.
func (e *VacationStoreExtension) BeforeRequest(_ context.Context, sc *StoreContext) error {
	if !sc.Validation.IsSuccessful() || sc.Request == nil {
		return nil
	}
	sc.Request.ForceTransaction = true
	return nil
}

// AfterBeginTransaction runs the vacation rules against the document and
// the persisted state visible to the open transaction.
func (e *VacationStoreExtension) AfterBeginTransaction(ctx context.Context, sc *StoreContext) error {
	doc := sc.Document()
	if !sc.Validation.IsSuccessful() || doc == nil {
		return nil
	}

	snap, actor, err := e.loader.LoadVacation(ctx, sc.DB, doc, sc.Session.User)
	if err != nil {
		return fmt.Errorf("load vacation request %s: %w", doc.ID, err)
	}

	before := sc.Validation.Len()
	e.evaluator.Validate(snap, actor, sc.Validation)
	if added := sc.Validation.Len() - before; added > 0 {
		e.logger.DebugContext(ctx, "vacation request rejected",
			"document_id", doc.ID,
			"user_id", sc.Session.User.ID,
			"errors", added,
		)
	}
	return nil
}
