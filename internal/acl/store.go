// internal/acl/store.go
//
// Query helpers for role-based access control.
//
// Context
// -------
// Roles are granted per user in one table owned by the hosted backend:
//
//	user_roles (user_id, role)   -- role is 'admin' or 'user'
//
// The moderation surface asks one question: does user X hold role R?
// Queries are written with `?` and rebound for the active driver, so the
// same helpers serve MySQL and Postgres.
package acl

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// UserRoles returns the role names bound to userID.
func UserRoles(ctx context.Context, db *sqlx.DB, userID string) ([]string, error) {
	q := db.Rebind(`SELECT role
                      FROM user_roles
                     WHERE user_id = ?
                     ORDER BY role`)

	roles := make([]string, 0, 2)
	if err := db.SelectContext(ctx, &roles, q, userID); err != nil {
		return nil, err
	}
	return roles, nil
}

// HasRole reports whether userID holds role.
func HasRole(ctx context.Context, db *sqlx.DB, userID, role string) (bool, error) {
	q := db.Rebind(`SELECT COUNT(*)
                      FROM user_roles
                     WHERE user_id = ? AND role = ?`)

	var n int
	if err := db.GetContext(ctx, &n, q, userID, role); err != nil {
		return false, err
	}
	return n > 0, nil
}
