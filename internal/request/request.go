// Package request carries typed requests between the client tier and the
// server tier. A request names its type by UUID and passes named parameters;
// the response returns a validation result plus named output values.
package request

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"docflow/pkg/validation"
)

const (
	CodeUnknownRequestType = "unknown_request_type"
	CodeInvalidRequest     = "invalid_request"
	CodeLookupFailed       = "lookup_failed"
)

var ErrTransport = errors.New("cross-tier transport failed")

// Info is a bag of named parameters or output values.
type Info map[string]any

// UUID returns key as a UUID. Values decoded from JSON arrive as strings.
func (i Info) UUID(key string) (uuid.UUID, bool) {
	switch v := i[key].(type) {
	case uuid.UUID:
		return v, true
	case *uuid.UUID:
		if v == nil {
			return uuid.Nil, false
		}
		return *v, true
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, false
		}
		return id, true
	default:
		return uuid.Nil, false
	}
}

// String returns key as a string.
func (i Info) String(key string) (string, bool) {
	v, ok := i[key].(string)
	return v, ok
}

// Request is one cross-tier call.
type Request struct {
	Type uuid.UUID `json:"type"`
	Info Info      `json:"info,omitempty"`
}

// Response is the result of a Request. Validation is never nil once a
// handler ran.
type Response struct {
	Validation *validation.Result
	Info       Info
}

// Successful reports whether the response carries no error entries.
func (r *Response) Successful() bool {
	return r == nil || r.Validation.IsSuccessful()
}

type wireResponse struct {
	Validation []validation.Entry `json:"validation"`
	Info       Info               `json:"info,omitempty"`
}

func (r *Response) MarshalJSON() ([]byte, error) {
	entries := r.Validation.Entries()
	if entries == nil {
		entries = []validation.Entry{}
	}
	return json.Marshal(wireResponse{Validation: entries, Info: r.Info})
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var w wireResponse
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	r.Validation = validation.FromEntries(w.Validation)
	r.Info = w.Info
	return nil
}

// Failed builds a response carrying a single error entry.
func Failed(code, message string) *Response {
	return &Response{Validation: validation.Failure(code, message), Info: Info{}}
}

// Repository sends requests to the server tier.
type Repository interface {
	Request(ctx context.Context, req Request) (*Response, error)
}
