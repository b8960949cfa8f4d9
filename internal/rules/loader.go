package rules

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"docflow/internal/document"
	"docflow/internal/session"
	"docflow/pkg/platform/sentinel"
	"docflow/pkg/platform/tx"
)

// Lookup reads persisted state inside the caller's database scope.
type Lookup interface {
	FieldValues(ctx context.Context, q tx.Querier, docID uuid.UUID, section document.SectionDef, fields ...string) (document.Values, error)
	CountFiles(ctx context.Context, q tx.Querier, docID uuid.UUID) (int, error)
	IsUserInRole(ctx context.Context, q tx.Querier, userID, roleID uuid.UUID) (bool, error)
}

// Loader assembles rule snapshots from a document and its persisted state.
type Loader struct {
	lookup Lookup
}

func NewLoader(lookup Lookup) (*Loader, error) {
	if lookup == nil {
		return nil, errors.New("lookup is required")
	}
	return &Loader{lookup: lookup}, nil
}

// LoadVacation builds the vacation snapshot and the actor's role check.
// Any error is a data-access failure and aborts the storage operation.
func (l *Loader) LoadVacation(ctx context.Context, q tx.Querier, doc *document.Document, user session.User) (VacationSnapshot, Actor, error) {
	isHR, err := l.lookup.IsUserInRole(ctx, q, user.ID, HRRoleID)
	if err != nil {
		return VacationSnapshot{}, Actor{}, fmt.Errorf("check hr role: %w", err)
	}
	actor := Actor{IsHR: isHR, IsAdmin: user.IsAdmin}

	values, err := l.realValues(ctx, q, doc, document.SectionRequests,
		document.FieldVacationCategory,
		document.FieldFirstDate,
		document.FieldConnectRoaming,
		document.FieldCountry,
		document.FieldComment,
	)
	if err != nil {
		return VacationSnapshot{}, Actor{}, err
	}
	common, err := l.realValues(ctx, q, doc, document.SectionCommonInfo, document.FieldCreationDate)
	if err != nil {
		return VacationSnapshot{}, Actor{}, err
	}

	snap := VacationSnapshot{
		CategoryID:    values.Get(document.FieldVacationCategory).UUIDPtr(),
		FirstDate:     values.Get(document.FieldFirstDate).TimePtr(),
		CreationDate:  common.Get(document.FieldCreationDate).TimePtr(),
		AttachedFiles: len(doc.Files),
	}
	snap.Roaming, _ = values.Get(document.FieldConnectRoaming).Bool()
	snap.Country, _ = values.Get(document.FieldCountry).String()
	snap.Comment, _ = values.Get(document.FieldComment).String()

	if (snap.isCategory(StudyLeaveID) || snap.isCategory(OtherLeaveID)) && snap.AttachedFiles == 0 {
		snap.StoredFiles, err = l.lookup.CountFiles(ctx, q, doc.ID)
		if err != nil {
			return VacationSnapshot{}, Actor{}, fmt.Errorf("count files: %w", err)
		}
	}
	return snap, actor, nil
}

// realValues prefers values carried by the in-memory document and falls back
// to the persisted row for fields the request did not touch.
func (l *Loader) realValues(ctx context.Context, q tx.Querier, doc *document.Document, sectionName string, fields ...string) (document.Values, error) {
	def, ok := doc.Schema().Section(sectionName)
	if !ok {
		return nil, fmt.Errorf("section %q: %w", sectionName, sentinel.ErrUnknownField)
	}

	out := make(document.Values, len(fields))
	var missing []string
	sec, loaded := doc.Section(sectionName)
	for _, name := range fields {
		if loaded && sec.Has(name) {
			v, err := sec.Get(name)
			if err != nil {
				return nil, err
			}
			out[name] = v
			continue
		}
		missing = append(missing, name)
	}

	if len(missing) == 0 || doc.StoreMode == document.StoreModeInsert {
		return out, nil
	}

	persisted, err := l.lookup.FieldValues(ctx, q, doc.ID, def, missing...)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, fmt.Errorf("read %s: %w", sectionName, err)
	}
	for name, v := range persisted {
		out[name] = v
	}
	return out, nil
}
