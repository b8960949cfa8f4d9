// Package session carries the authenticated actor of a storage or request
// operation. Authentication itself happens in the host.
package session

import (
	"context"

	"github.com/google/uuid"
)

// User is the authenticated user as seen by extensions.
type User struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	IsAdmin bool      `json:"is_admin"`
}

// Session is the host session an operation runs under.
type Session struct {
	User User
}

// System returns the session background jobs run under.
func System() Session {
	return Session{User: User{ID: SystemUserID, Name: "System", IsAdmin: true}}
}

// SystemUserID is the well-known ID of the system user.
var SystemUserID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

type ctxKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// From returns the session carried by ctx.
func From(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
