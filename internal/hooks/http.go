package hooks

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"docflow/internal/document"
	"docflow/internal/session"
	"docflow/pkg/platform/httputil"
	"docflow/pkg/requestcontext"
	"docflow/pkg/validation"
)

// StorePath accepts documents for validation and storage.
const StorePath = "/v1/documents"

// Headers the host sets for the authenticated user. Authentication itself
// happens in the host.
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserName  = "X-User-Name"
	HeaderUserAdmin = "X-User-Admin"
)

// Storer runs a storage operation.
type Storer interface {
	Store(ctx context.Context, sess session.Session, doc *document.Document) (*validation.Result, error)
}

// StoreHandler exposes a Storer over HTTP for hosts running out of process.
type StoreHandler struct {
	storer Storer
	schema *document.Schema
	logger *slog.Logger
}

func NewStoreHandler(storer Storer, schema *document.Schema, logger *slog.Logger) *StoreHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreHandler{storer: storer, schema: schema, logger: logger}
}

// Register mounts the store endpoint on r.
func (h *StoreHandler) Register(r chi.Router) {
	r.Post(StorePath, h.handleStore)
}

// storeResponse reports whether the pipeline accepted the document: every
// extension passed and its transaction, if one was opened, committed.
type storeResponse struct {
	Accepted   bool               `json:"accepted"`
	Validation []validation.Entry `json:"validation"`
}

func (h *StoreHandler) handleStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	sess, ok := sessionFromHeaders(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid "+HeaderUserID)
		return
	}

	var wire document.Wire
	if err := httputil.DecodeJSON(r, &wire); err != nil {
		h.logger.WarnContext(ctx, "invalid document payload", "request_id", requestID, "error", err.Error())
		httputil.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	doc, err := document.FromWire(h.schema, wire)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	result, err := h.storer.Store(ctx, sess, doc)
	if err != nil {
		h.logger.ErrorContext(ctx, "document store failed",
			"request_id", requestID,
			"document_id", doc.ID,
			"error", err.Error(),
		)
		httputil.WriteError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	entries := result.Entries()
	if entries == nil {
		entries = []validation.Entry{}
	}
	status := http.StatusOK
	if !result.IsSuccessful() {
		status = http.StatusUnprocessableEntity
	}
	httputil.WriteJSON(w, status, storeResponse{Accepted: result.IsSuccessful(), Validation: entries})
}

func sessionFromHeaders(r *http.Request) (session.Session, bool) {
	id, err := uuid.Parse(strings.TrimSpace(r.Header.Get(HeaderUserID)))
	if err != nil || id == uuid.Nil {
		return session.Session{}, false
	}
	admin, _ := strconv.ParseBool(r.Header.Get(HeaderUserAdmin))
	return session.Session{User: session.User{
		ID:      id,
		Name:    r.Header.Get(HeaderUserName),
		IsAdmin: admin,
	}}, true
}
