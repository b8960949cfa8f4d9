package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"docflow/internal/notice"
	"docflow/pkg/platform/tx"
)

// activeStatus is Partners.StatusID of partners under approval.
const activeStatus = 0

// PostgresStore runs the partner notice queries on PostgreSQL. Reads use the
// default READ COMMITTED level of the scoped connection; the job never writes.
type PostgresStore struct{}

// NewPostgres constructs a PostgreSQL-backed notice store.
func NewPostgres() *PostgresStore {
	return &PostgresStore{}
}

// ExpiringPartners returns active partners whose validity falls exactly
// offsets days after today. Offsets are matched individually, not as a range.
func (s *PostgresStore) ExpiringPartners(ctx context.Context, q tx.Querier, today time.Time, offsets []int) ([]uuid.UUID, error) {
	if len(offsets) == 0 {
		return nil, nil
	}
	days := make([]int64, len(offsets))
	for i, o := range offsets {
		days[i] = int64(o)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT p."ID"
		FROM "Partners" p
		WHERE p."Validity" IS NOT NULL
		  AND (p."Validity" - $1::date) = ANY($2::int[])
		  AND p."StatusID" = $3
		ORDER BY p."Validity", p."ID"`,
		today.Format("2006-01-02"), pq.Array(days), activeStatus,
	)
	if err != nil {
		return nil, fmt.Errorf("query expiring partners: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan partner id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expiring partners: %w", err)
	}
	return ids, nil
}

// PartnerNotice resolves the latest non-draft partner request whose author has
// a usable email. Ties on creation date fall back to the request ID so the
// result is stable. It returns nil, nil when nothing qualifies.
func (s *PostgresStore) PartnerNotice(ctx context.Context, q tx.Querier, partnerID uuid.UUID) (*notice.Row, error) {
	var (
		row      notice.Row
		inn, kpp sql.NullString
	)
	err := q.QueryRowContext(ctx, `
		SELECT ppr."ID", pr."Email", ppr."PartnerName", p."INN", p."KPP", p."Validity"
		FROM "PnrPartnerRequests" ppr
		INNER JOIN "DocumentCommonInfo" dci ON dci."ID" = ppr."ID"
		INNER JOIN "PersonalRoles" pr ON pr."ID" = dci."AuthorID"
		INNER JOIN "Partners" p ON p."ID" = ppr."PartnerID"
		INNER JOIN "FdSatelliteCommonInfo" fsci ON fsci."MainCardId" = ppr."ID"
		WHERE ppr."PartnerID" = $1
		  AND fsci."StateName" <> $2
		  AND pr."Email" LIKE '%@%.%'
		ORDER BY dci."CreationDate" DESC, ppr."ID" DESC
		LIMIT 1`,
		partnerID, notice.DraftStateName,
	).Scan(&row.RequestID, &row.To, &row.PartnerName, &inn, &kpp, &row.Validity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query partner notice: %w", err)
	}
	row.PartnerID = partnerID
	if inn.Valid {
		row.INN = &inn.String
	}
	if kpp.Valid {
		row.KPP = &kpp.String
	}
	return &row, nil
}
