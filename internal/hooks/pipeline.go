package hooks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"docflow/internal/document"
	"docflow/internal/session"
	"docflow/pkg/platform/tx"
	"docflow/pkg/validation"
)

const defaultTxTimeout = 5 * time.Second

// Tx is an open storage transaction.
type Tx interface {
	tx.Querier
	Commit() error
	Rollback() error
}

// Beginner opens storage transactions.
type Beginner interface {
	Begin(ctx context.Context) (Tx, error)
}

// SQLBeginner opens transactions on a database pool.
type SQLBeginner struct {
	DB *sql.DB
}

func (b SQLBeginner) Begin(ctx context.Context) (Tx, error) {
	t, err := b.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Pipeline drives store extensions through one storage operation:
// BeforeRequest for every extension, then, inside a transaction,
// AfterBeginTransaction for every extension. The transaction commits only
// when the final validation result is successful.
type Pipeline struct {
	beginner   Beginner
	extensions map[uuid.UUID][]StoreExtension
	timeout    time.Duration
	logger     *slog.Logger
}

type PipelineOption func(*Pipeline)

func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithTxTimeout bounds the transaction when the caller's context has no deadline.
func WithTxTimeout(d time.Duration) PipelineOption {
	return func(p *Pipeline) {
		p.timeout = d
	}
}

func NewPipeline(beginner Beginner, opts ...PipelineOption) (*Pipeline, error) {
	if beginner == nil {
		return nil, errors.New("transaction beginner is required")
	}
	p := &Pipeline{
		beginner:   beginner,
		extensions: make(map[uuid.UUID][]StoreExtension),
		timeout:    defaultTxTimeout,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Register attaches ext to documents of typeID. uuid.Nil attaches it to
// every document type. Extensions run in registration order.
func (p *Pipeline) Register(typeID uuid.UUID, ext StoreExtension) {
	p.extensions[typeID] = append(p.extensions[typeID], ext)
}

func (p *Pipeline) extensionsFor(typeID uuid.UUID) []StoreExtension {
	exts := append([]StoreExtension(nil), p.extensions[uuid.Nil]...)
	if typeID != uuid.Nil {
		exts = append(exts, p.extensions[typeID]...)
	}
	return exts
}

// Store runs the extensions for doc under sess. Validation failures come back
// in the result; only data-access failures are returned as errors, after the
// transaction was rolled back.
func (p *Pipeline) Store(ctx context.Context, sess session.Session, doc *document.Document) (*validation.Result, error) {
	if doc == nil {
		return nil, errors.New("document is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("store aborted: %w", err)
	}

	exts := p.extensionsFor(doc.TypeID)
	sc := &StoreContext{
		Request:    &StoreRequest{Document: doc},
		Validation: validation.NewBuilder(),
		Session:    sess,
	}
	ctx = session.WithSession(ctx, sess)

	for _, ext := range exts {
		if err := ext.BeforeRequest(ctx, sc); err != nil {
			return nil, fmt.Errorf("before request: %w", err)
		}
	}

	if !sc.Request.ForceTransaction && doc.StoreMode != document.StoreModeUpdate {
		return sc.Validation.Build(), nil
	}
	if err := p.runInTx(ctx, sc, exts); err != nil {
		return nil, err
	}
	return sc.Validation.Build(), nil
}

func (p *Pipeline) runInTx(ctx context.Context, sc *StoreContext, exts []StoreExtension) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	t, err := p.beginner.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			if err := t.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				p.logger.WarnContext(ctx, "rollback failed", "document_id", sc.Document().ID, "error", err)
			}
		}
	}()

	sc.DB = t
	for _, ext := range exts {
		if err := ext.AfterBeginTransaction(ctx, sc); err != nil {
			return fmt.Errorf("after begin transaction: %w", err)
		}
	}

	if !sc.Validation.IsSuccessful() {
		p.logger.InfoContext(ctx, "storage rejected by validation",
			"document_id", sc.Document().ID,
			"user_id", sc.Session.User.ID,
		)
		return nil
	}
	if err := t.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}
