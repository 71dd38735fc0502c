package auth

import (
	"context"
)

// Context keys for authentication data
type contextKey string

const (
	// ContextKeyDID is the context key for the authenticated DID
	ContextKeyDID contextKey = "did"
	// ContextKeyRole is the context key for the user's role
	ContextKeyRole contextKey = "role"
)

// WithDID adds the authenticated DID to the context
func WithDID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextKeyDID, id)
}

// DIDFromContext retrieves the authenticated DID from the context
func DIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextKeyDID).(string)
	return id, ok && id != ""
}

// WithRole adds the user's role to the context
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, ContextKeyRole, role)
}

// RoleFromContext retrieves the user's role from the context
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(ContextKeyRole).(string)
	return role, ok
}

// AuthInfo contains all authentication information for a request
type AuthInfo struct {
	DID  string
	Role string
}

// WithAuthInfo adds all authentication info to the context
func WithAuthInfo(ctx context.Context, info *AuthInfo) context.Context {
	ctx = WithDID(ctx, info.DID)
	ctx = WithRole(ctx, info.Role)
	return ctx
}

// AuthInfoFromContext retrieves all authentication info from the context
func AuthInfoFromContext(ctx context.Context) *AuthInfo {
	info := &AuthInfo{}
	info.DID, _ = DIDFromContext(ctx)
	info.Role, _ = RoleFromContext(ctx)
	return info
}
