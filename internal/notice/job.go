// Package notice implements the partner approval expiry job: it finds
// partners whose approval validity ends in one of the configured offsets,
// resolves one recipient per partner and mails them a fixed notice.
package notice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"docflow/internal/platform/metrics"
	"docflow/pkg/platform/tx"
	"docflow/pkg/requestcontext"
	"docflow/pkg/validation"
)

// DefaultOffsets are the days-before-expiry that trigger a notice.
var DefaultOffsets = []int{60, 30}

const defaultDedupeTTL = 36 * time.Hour

// Conn is one scoped database connection.
type Conn interface {
	tx.Querier
	Close() error
}

// Scope hands out the connection a run works in.
type Scope interface {
	Acquire(ctx context.Context) (Conn, error)
}

// DBScope acquires dedicated connections from a pool. No transaction is
// opened: the job only reads.
type DBScope struct {
	DB *sql.DB
}

func (s DBScope) Acquire(ctx context.Context) (Conn, error) {
	conn, err := s.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Store runs the two job queries.
type Store interface {
	// ExpiringPartners lists active partners whose validity is exactly one of
	// offsets days after today, in query order.
	ExpiringPartners(ctx context.Context, q tx.Querier, today time.Time, offsets []int) ([]uuid.UUID, error)
	// PartnerNotice resolves the notification row for a partner, or nil when
	// no eligible request with a usable email exists.
	PartnerNotice(ctx context.Context, q tx.Querier, partnerID uuid.UUID) (*Row, error)
}

// Dispatcher sends one message; failures land in result, never in a return value.
type Dispatcher interface {
	Send(ctx context.Context, to, subject, htmlBody string, result *validation.Builder)
}

// Report summarizes one run.
type Report struct {
	Candidates int  `json:"candidates"`
	Resolved   int  `json:"resolved"`
	Skipped    int  `json:"skipped"`
	Invalid    int  `json:"invalid"`
	Duplicates int  `json:"duplicates"`
	Sent       int  `json:"sent"`
	Failed     int  `json:"failed"`
	Stopped    bool `json:"stopped"`
}

// Job is the partner notice job. Each Run is self-contained: no cursor is
// kept between runs and every run rescans the whole window.
type Job struct {
	scope      Scope
	store      Store
	dispatcher Dispatcher
	deduper    Deduper
	renderer   *Renderer
	offsets    []int
	dedupeTTL  time.Duration
	location   *time.Location
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type Option func(*Job)

func WithDeduper(d Deduper) Option {
	return func(j *Job) {
		j.deduper = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(j *Job) {
		j.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(j *Job) {
		j.metrics = m
	}
}

func WithOffsets(offsets ...int) Option {
	return func(j *Job) {
		if len(offsets) > 0 {
			j.offsets = append([]int(nil), offsets...)
		}
	}
}

func WithDedupeTTL(ttl time.Duration) Option {
	return func(j *Job) {
		if ttl > 0 {
			j.dedupeTTL = ttl
		}
	}
}

// WithLocation sets the zone "today" is computed in.
func WithLocation(loc *time.Location) Option {
	return func(j *Job) {
		if loc != nil {
			j.location = loc
		}
	}
}

func WithLanguage(tag language.Tag) Option {
	return func(j *Job) {
		j.renderer = NewRenderer(tag)
	}
}

// New constructs a Job.
func New(scope Scope, store Store, dispatcher Dispatcher, opts ...Option) (*Job, error) {
	if scope == nil {
		return nil, errors.New("database scope is required")
	}
	if store == nil {
		return nil, errors.New("notice store is required")
	}
	if dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	j := &Job{
		scope:      scope,
		store:      store,
		dispatcher: dispatcher,
		deduper:    NewMemoryDeduper(),
		renderer:   NewRenderer(language.Russian),
		offsets:    DefaultOffsets,
		dedupeTTL:  defaultDedupeTTL,
		location:   time.Local,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// Name identifies the job in logs and schedules.
func (j *Job) Name() string {
	return "partner-notice"
}

// Run executes one scan and dispatch. A stop requested before the run
// starts returns an empty report without touching the database. A stop
// during the run ends it at the next candidate boundary; queries and sends
// already in flight complete. Data-access errors abort the run; dispatch
// failures are counted per candidate.
func (j *Job) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{}

	if ctx.Err() != nil {
		j.logger.InfoContext(ctx, "partner notice run skipped: stop requested")
		report.Stopped = true
		j.observe(report, start, nil)
		return report, nil
	}

	j.logger.InfoContext(ctx, "starting partner notice run", "run_id", requestcontext.RunID(ctx))

	candidates, err := j.scan(ctx, report)
	if err != nil {
		j.observe(report, start, err)
		return report, err
	}
	if !report.Stopped {
		j.dispatch(ctx, candidates, report)
	}

	j.observe(report, start, nil)
	j.logger.InfoContext(ctx, "partner notice run finished",
		"candidates", report.Candidates,
		"resolved", report.Resolved,
		"skipped", report.Skipped,
		"invalid", report.Invalid,
		"duplicates", report.Duplicates,
		"sent", report.Sent,
		"failed", report.Failed,
		"stopped", report.Stopped,
		"elapsed", time.Since(start),
	)
	return report, nil
}

func (j *Job) scan(ctx context.Context, report *Report) ([]Candidate, error) {
	conn, err := j.scope.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			j.logger.WarnContext(ctx, "failed to release connection", "error", err)
		}
	}()

	if ctx.Err() != nil {
		report.Stopped = true
		return nil, nil
	}

	today := requestcontext.Now(ctx).In(j.location)
	ids, err := j.store.ExpiringPartners(ctx, conn, today, j.offsets)
	if err != nil {
		return nil, fmt.Errorf("find expiring partners: %w", err)
	}
	report.Candidates = len(ids)

	candidates := make([]Candidate, 0, len(ids))
	for _, partnerID := range ids {
		if ctx.Err() != nil {
			j.logger.InfoContext(ctx, "partner notice run stopped during scan", "resolved", len(candidates))
			report.Stopped = true
			return nil, nil
		}

		row, err := j.store.PartnerNotice(ctx, conn, partnerID)
		if err != nil {
			return nil, fmt.Errorf("resolve partner %s: %w", partnerID, err)
		}
		if row == nil {
			j.logger.DebugContext(ctx, "no notice recipient for partner", "partner_id", partnerID)
			report.Skipped++
			continue
		}

		c, err := j.candidate(*row, today)
		if err != nil {
			j.logger.WarnContext(ctx, "partner notice rejected", "partner_id", partnerID, "error", err)
			report.Invalid++
			continue
		}
		candidates = append(candidates, c)
	}
	report.Resolved = len(candidates)
	return candidates, nil
}

func (j *Job) candidate(row Row, today time.Time) (Candidate, error) {
	body, err := j.renderer.Body(Params{
		Partner:  row.PartnerName,
		INN:      row.INN,
		KPP:      row.KPP,
		Validity: row.Validity,
	})
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{
		PartnerID: row.PartnerID,
		To:        row.To,
		Subject:   j.renderer.Subject(row.PartnerName),
		Body:      body,
		Validity:  row.Validity,
		DaysLeft:  daysBetween(today, row.Validity),
	}, nil
}

func (j *Job) dispatch(ctx context.Context, candidates []Candidate, report *Report) {
	for _, c := range candidates {
		if ctx.Err() != nil {
			j.logger.InfoContext(ctx, "partner notice run stopped during dispatch", "sent", report.Sent)
			report.Stopped = true
			return
		}

		key := c.DedupeKey()
		claimed, err := j.deduper.Claim(ctx, key, j.dedupeTTL)
		if err != nil {
			// A missed deadline notice costs more than a duplicate one.
			j.logger.WarnContext(ctx, "notice dedupe unavailable, sending anyway", "partner_id", c.PartnerID, "error", err)
			claimed = true
		}
		if !claimed {
			report.Duplicates++
			j.metrics.ObserveDispatch("duplicate")
			continue
		}

		result := validation.NewBuilder()
		j.dispatcher.Send(ctx, c.To, c.Subject, c.Body, result)
		if result.IsSuccessful() {
			report.Sent++
			j.metrics.ObserveDispatch("sent")
			continue
		}

		report.Failed++
		j.metrics.ObserveDispatch("failed")
		j.logger.WarnContext(ctx, "partner notice send failed",
			"partner_id", c.PartnerID,
			"error", result.Build().Error(),
		)
		if err := j.deduper.Release(ctx, key); err != nil {
			j.logger.WarnContext(ctx, "failed to release notice claim", "partner_id", c.PartnerID, "error", err)
		}
	}
}

func (j *Job) observe(report *Report, start time.Time, err error) {
	outcome := "success"
	switch {
	case err != nil:
		outcome = "error"
	case report.Stopped:
		outcome = "stopped"
	}
	j.metrics.ObserveNoticeRun(outcome, report.Resolved, time.Since(start))
}
