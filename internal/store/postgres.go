// Package store reads persisted card state for rules and cross-tier requests.
// Every method runs against the caller's Querier so it participates in the
// caller's transaction or scoped connection.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"docflow/internal/document"
	"docflow/pkg/platform/sentinel"
	"docflow/pkg/platform/tx"
)

// Department is the organizational unit a user belongs to.
type Department struct {
	ID    uuid.UUID
	Name  string
	Index string
}

// PostgresStore implements card lookups on PostgreSQL.
type PostgresStore struct{}

// NewPostgres constructs a PostgreSQL-backed card store.
func NewPostgres() *PostgresStore {
	return &PostgresStore{}
}

// FieldValues reads the persisted values of fields in section for one card.
// Field names are checked against the section declaration before they reach
// SQL; identifiers are quoted, values are bound.
func (s *PostgresStore) FieldValues(ctx context.Context, q tx.Querier, docID uuid.UUID, section document.SectionDef, fields ...string) (document.Values, error) {
	if len(fields) == 0 {
		return document.Values{}, nil
	}

	defs := make([]document.FieldDef, 0, len(fields))
	cols := make([]string, 0, len(fields))
	for _, name := range fields {
		f, ok := section.Field(name)
		if !ok {
			return nil, fmt.Errorf("%s.%s: %w", section.Name, name, sentinel.ErrUnknownField)
		}
		defs = append(defs, f)
		cols = append(cols, pq.QuoteIdentifier(f.Name))
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE "ID" = $1`,
		strings.Join(cols, ", "), pq.QuoteIdentifier(section.TableName()))

	holders := make([]any, len(defs))
	for i, f := range defs {
		holders[i] = scanHolder(f.Kind)
	}
	if err := q.QueryRowContext(ctx, query, docID).Scan(holders...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s %s: %w", section.Name, docID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("read %s fields: %w", section.Name, err)
	}

	out := make(document.Values, len(defs))
	for i, f := range defs {
		v, err := fromHolder(f.Kind, holders[i])
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", section.Name, f.Name, err)
		}
		out[f.Name] = v
	}
	return out, nil
}

// CountFiles returns the authoritative number of files attached to a card.
func (s *PostgresStore) CountFiles(ctx context.Context, q tx.Querier, docID uuid.UUID) (int, error) {
	var n int
	err := q.QueryRowContext(ctx, `SELECT count(*) FROM "Files" WHERE "ID" = $1`, docID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count files: %w", err)
	}
	return n, nil
}

// IsUserInRole reports whether userID is a member of roleID.
func (s *PostgresStore) IsUserInRole(ctx context.Context, q tx.Querier, userID, roleID uuid.UUID) (bool, error) {
	var member bool
	err := q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM "RoleUsers" WHERE "ID" = $1 AND "UserID" = $2)`,
		roleID, userID,
	).Scan(&member)
	if err != nil {
		return false, fmt.Errorf("check role membership: %w", err)
	}
	return member, nil
}

// DepartmentByUser resolves the department of userID. When a user belongs to
// several departments the one with the lowest name wins.
func (s *PostgresStore) DepartmentByUser(ctx context.Context, q tx.Querier, userID uuid.UUID) (*Department, error) {
	var (
		d     Department
		index sql.NullString
	)
	err := q.QueryRowContext(ctx, `
		SELECT r."ID", r."Name", dr."Index"
		FROM "RoleUsers" ru
		INNER JOIN "DepartmentRoles" dr ON dr."ID" = ru."ID"
		INNER JOIN "Roles" r ON r."ID" = dr."ID"
		WHERE ru."UserID" = $1
		ORDER BY r."Name", r."ID"
		LIMIT 1`,
		userID,
	).Scan(&d.ID, &d.Name, &index)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("department of %s: %w", userID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find department: %w", err)
	}
	d.Index = index.String
	return &d, nil
}

func scanHolder(kind document.Kind) any {
	switch kind {
	case document.KindInt:
		return new(sql.NullInt64)
	case document.KindUUID:
		return new(uuid.NullUUID)
	case document.KindDate:
		return new(sql.NullTime)
	case document.KindBool:
		return new(sql.NullBool)
	default:
		return new(sql.NullString)
	}
}

func fromHolder(kind document.Kind, holder any) (document.Value, error) {
	var raw any
	switch h := holder.(type) {
	case *sql.NullInt64:
		if h.Valid {
			raw = h.Int64
		}
	case *uuid.NullUUID:
		if h.Valid {
			raw = h.UUID
		}
	case *sql.NullTime:
		if h.Valid {
			raw = h.Time
		}
	case *sql.NullBool:
		if h.Valid {
			raw = h.Bool
		}
	case *sql.NullString:
		if h.Valid {
			raw = h.String
		}
	}
	return document.NewValue(kind, raw)
}
