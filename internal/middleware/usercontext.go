package middleware

import (
	"context"
	"net/http"
	"strings"
)

// Roles the gateway puts in the x-user-role header
const (
	RoleCustomer   = "customer"
	RoleRestaurant = "restaurant"
	RoleAdmin      = "admin"
)

// UserContext is the identity the gateway resolved for this request.
// Authentication happens upstream; this service only reads the headers.
type UserContext struct {
	Role   string
	UserID string
	Email  string
}

type contextKey string

const userContextKey contextKey = "user_context"

// ExtractUser reads the x-user-* headers into a UserContext
func ExtractUser(r *http.Request) UserContext {
	return UserContext{
		Role:   strings.ToLower(r.Header.Get("x-user-role")),
		UserID: r.Header.Get("x-user-id"),
		Email:  r.Header.Get("x-user-email"),
	}
}

// WithUser stores the user context on the request context
func WithUser(ctx context.Context, user UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFrom returns the user context stored on ctx, if any
func UserFrom(ctx context.Context) (UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(UserContext)
	return user, ok
}
