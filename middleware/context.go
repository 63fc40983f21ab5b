package middleware

import (
	"context"

	"github.com/elinonga/company-service/auth"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Context key type to avoid collisions
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"

	// IdentityKey is the context key for the caller identity
	IdentityKey contextKey = "identity"

	// TokenKey is the context key for the raw bearer token
	TokenKey contextKey = "token"
)

// GetRequestIDFromContext retrieves the request ID from context.
// Falls back to the ID assigned by chi's RequestID middleware.
func GetRequestIDFromContext(ctx context.Context) string {
	if val := ctx.Value(RequestIDKey); val != nil {
		if requestID, ok := val.(string); ok {
			return requestID
		}
	}
	return chimiddleware.GetReqID(ctx)
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetIdentityFromContext retrieves the caller identity from context.
// Returns nil when the gate attached nothing.
func GetIdentityFromContext(ctx context.Context) *auth.Identity {
	if val := ctx.Value(IdentityKey); val != nil {
		if identity, ok := val.(auth.Identity); ok {
			return &identity
		}
	}
	return nil
}

// WithIdentity adds the caller identity to the context
func WithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetAuthenticatedIdentity returns the identity only when it is authenticated
func GetAuthenticatedIdentity(ctx context.Context) (auth.Identity, bool) {
	identity := GetIdentityFromContext(ctx)
	if identity == nil || !identity.IsAuthenticated {
		return auth.Identity{}, false
	}
	return *identity, true
}

// GetTokenFromContext retrieves the raw bearer token from context
func GetTokenFromContext(ctx context.Context) string {
	if val := ctx.Value(TokenKey); val != nil {
		if token, ok := val.(string); ok {
			return token
		}
	}
	return ""
}

// WithToken adds the raw bearer token to the context
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
