package hooks

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"docflow/internal/document"
	"docflow/internal/request"
	"docflow/internal/rules"
	"docflow/pkg/validation"
)

// StorageVisibilityKey identifies the storage type reaction on the archive
// request section. Re-initializing a form replaces it instead of stacking.
const StorageVisibilityKey = "archive-request/storage-visibility"

const defaultLookupTimeout = 30 * time.Second

// ArchiveRequestUIExtension drives the archive request form: storage type
// dependent controls and the author's department on new requests.
type ArchiveRequestUIExtension struct {
	repo          request.Repository
	logger        *slog.Logger
	lookupTimeout time.Duration
	wg            sync.WaitGroup
}

type ArchiveOption func(*ArchiveRequestUIExtension)

func WithArchiveLogger(logger *slog.Logger) ArchiveOption {
	return func(e *ArchiveRequestUIExtension) {
		e.logger = logger
	}
}

// WithLookupTimeout bounds the background department lookup.
func WithLookupTimeout(d time.Duration) ArchiveOption {
	return func(e *ArchiveRequestUIExtension) {
		if d > 0 {
			e.lookupTimeout = d
		}
	}
}

func NewArchiveRequestUIExtension(repo request.Repository, opts ...ArchiveOption) *ArchiveRequestUIExtension {
	e := &ArchiveRequestUIExtension{repo: repo, logger: slog.Default(), lookupTimeout: defaultLookupTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialized applies storage visibility, subscribes to storage type changes
// and, for new requests, starts the department lookup in the background.
func (e *ArchiveRequestUIExtension) Initialized(ctx context.Context, uc *UIContext) error {
	if uc == nil || uc.Model == nil || uc.Model.InSpecialMode() {
		return nil
	}
	doc := uc.Model.Document()
	if doc == nil {
		return nil
	}
	section, ok := doc.Section(document.SectionArchiveRequest)
	if !ok {
		return nil
	}

	storage, err := section.Get(document.FieldStorageID)
	if err != nil {
		return err
	}
	applyVisibility(uc.Model.Controls(), storage.UUIDPtr())

	controls := uc.Model.Controls()
	section.Subscribe(StorageVisibilityKey, func(name string, value any) {
		if name != document.FieldStorageID || value == nil {
			return
		}
		if id, ok := value.(uuid.UUID); ok {
			applyVisibility(controls, &id)
		}
	})

	if doc.StoreMode == document.StoreModeInsert {
		var authorID *uuid.UUID
		if common, ok := doc.Section(document.SectionCommonInfo); ok {
			if v, err := common.Get(document.FieldAuthorID); err == nil {
				authorID = v.UUIDPtr()
			}
		}
		// The lookup outlives Initialized, so it keeps the caller's values
		// but not its cancellation.
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.lookupTimeout)
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			defer cancel()
			e.fillDepartment(lookupCtx, uc.Notifier, section, authorID)
		}()
	}
	return nil
}

// Wait blocks until every department lookup started by Initialized finished.
func (e *ArchiveRequestUIExtension) Wait() {
	e.wg.Wait()
}

func (e *ArchiveRequestUIExtension) fillDepartment(ctx context.Context, notifier Notifier, section *document.Section, authorID *uuid.UUID) {
	info, result, err := request.RequestUserDepartmentInfo(ctx, e.repo, authorID)
	if err != nil {
		e.logger.WarnContext(ctx, "department lookup failed", "author_id", authorID, "error", err)
		result = validation.Failure(request.CodeLookupFailed, "Не удалось получить подразделение автора")
	}
	if notifier != nil && !result.IsEmpty() {
		notifier.ShowNotEmpty(ctx, result)
	}
	if info == nil || !result.IsSuccessful() {
		return
	}

	var deptID any
	if info.ID != uuid.Nil {
		deptID = info.ID
	}
	fields := []struct {
		name  string
		value any
	}{
		{document.FieldDepartmentID, deptID},
		{document.FieldDepartmentName, info.Name},
		{document.FieldDepartmentIdx, info.Index},
	}
	for _, f := range fields {
		if err := section.Set(f.name, f.value); err != nil {
			e.logger.ErrorContext(ctx, "set department field", "field", f.name, "error", err)
		}
	}
}

func applyVisibility(controls Controls, storageType *uuid.UUID) {
	if controls == nil {
		return
	}
	v := rules.DeriveStorageVisibility(storageType)
	controls.SetVisible(rules.ControlBox, v.Box)
	controls.SetVisible(rules.ControlBarcode, v.Barcode)
}
