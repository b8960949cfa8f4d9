package request

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"docflow/internal/store"
	"docflow/pkg/platform/sentinel"
	"docflow/pkg/platform/tx"
	"docflow/pkg/validation"
)

// GetUserDepartmentInfoRequestTypeID resolves the department of a user.
var GetUserDepartmentInfoRequestTypeID = uuid.MustParse("5b0f9a26-8d4c-4a63-9a1f-3e0c2f7d6b11")

const (
	CodeDepartmentNotFound = "department_not_found"

	ParamAuthorID      = "authorID"
	OutDepartmentID    = "DepartmentID"
	OutDepartmentName  = "Name"
	OutDepartmentIndex = "Index"
)

// DepartmentLookup finds the department a user belongs to.
type DepartmentLookup interface {
	DepartmentByUser(ctx context.Context, q tx.Querier, userID uuid.UUID) (*store.Department, error)
}

// DepartmentInfo is the typed output of GetUserDepartmentInfo.
type DepartmentInfo struct {
	ID    uuid.UUID
	Name  string
	Index string
}

// GetUserDepartmentInfo returns the handler for GetUserDepartmentInfoRequestTypeID.
// Data-access errors are logged and reported as a lookup failure.
func GetUserDepartmentInfo(lookup DepartmentLookup, db tx.Querier, logger *slog.Logger) HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, info Info) *Response {
		authorID, ok := info.UUID(ParamAuthorID)
		if !ok || authorID == uuid.Nil {
			return Failed(CodeInvalidRequest, "Не указан автор документа")
		}

		dept, err := lookup.DepartmentByUser(ctx, tx.Or(ctx, db), authorID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return Failed(CodeDepartmentNotFound, "Не удалось определить подразделение автора")
		}
		if err != nil {
			logger.ErrorContext(ctx, "department lookup failed", "author_id", authorID, "error", err)
			return Failed(CodeLookupFailed, "Ошибка при получении подразделения автора")
		}

		return &Response{
			Validation: validation.Success(),
			Info: Info{
				OutDepartmentID:    dept.ID.String(),
				OutDepartmentName:  dept.Name,
				OutDepartmentIndex: dept.Index,
			},
		}
	}
}

// RequestUserDepartmentInfo asks repo for the department of authorID. A nil
// info with an unsuccessful result means the lookup failed; the error is only
// set when the transport itself failed.
func RequestUserDepartmentInfo(ctx context.Context, repo Repository, authorID *uuid.UUID) (*DepartmentInfo, *validation.Result, error) {
	params := Info{}
	if authorID != nil {
		params[ParamAuthorID] = authorID.String()
	}
	resp, err := repo.Request(ctx, Request{Type: GetUserDepartmentInfoRequestTypeID, Info: params})
	if err != nil {
		return nil, nil, err
	}
	if resp == nil {
		return nil, validation.Failure(CodeLookupFailed, "Пустой ответ сервера"), nil
	}
	if !resp.Successful() {
		return nil, resp.Validation, nil
	}

	out := &DepartmentInfo{}
	out.ID, _ = resp.Info.UUID(OutDepartmentID)
	out.Name, _ = resp.Info.String(OutDepartmentName)
	out.Index, _ = resp.Info.String(OutDepartmentIndex)
	return out, resp.Validation, nil
}
