// internal/auth/context.go
//
// Request-scoped user identity.
//
// Context
// -------
// Users live in the hosted auth provider; this service only sees the
// provider's user ID (a UUID) and email, carried by the signed session
// cookie.  The session middleware attaches them to the request context.
//
// Usage
// -----
//     ctx = auth.WithUser(ctx, auth.User{ID: id, Email: email})
//     u, ok := auth.FromContext(ctx)

package auth

import "context"

// User is the authenticated caller.
type User struct {
	ID    string
	Email string
}

type userKey struct{}

// WithUser returns a new context carrying u.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// FromContext returns the user attached by WithUser.
func FromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userKey{}).(User)
	return u, ok && u.ID != ""
}

// UserID is a shortcut for FromContext(ctx).ID.
func UserID(ctx context.Context) (string, bool) {
	u, ok := FromContext(ctx)
	return u.ID, ok
}
