package middleware

import (
	"net/http"
	"strings"

	"github.com/elinonga/company-service/auth"
	"github.com/elinonga/company-service/utils"
	"go.uber.org/zap"
)

// TokenVerifier defines the interface for verifying bearer tokens
type TokenVerifier interface {
	// Verify checks a raw token and returns its claims
	Verify(rawToken string) (*auth.Claims, error)
}

// AuthMiddleware splits authentication in two layers: Authenticate never
// rejects a request, RequireAuth rejects anything without an authenticated identity.
type AuthMiddleware struct {
	verifier     TokenVerifier
	publicPrefix []string
	logger       *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware. Requests whose path starts
// with one of publicPrefixes skip token processing entirely.
func NewAuthMiddleware(verifier TokenVerifier, publicPrefixes []string, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier:     verifier,
		publicPrefix: publicPrefixes,
		logger:       logger,
	}
}

// Authenticate attaches the caller identity to the request context when a
// valid bearer token is present. Missing, malformed or rejected tokens leave
// the request anonymous; it always reaches next.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.isPublic(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		token, ok := extractBearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			m.logger.Debug("bearer token ignored",
				zap.String("request_id", requestID),
				zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		identity := auth.Adapt(claims)
		ctx = WithIdentity(ctx, identity)
		ctx = WithToken(ctx, token)

		m.logger.Debug("identity attached",
			zap.String("request_id", requestID),
			zap.Stringer("identity", identity),
			zap.Bool("authenticated", identity.IsAuthenticated))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth is a middleware that requires an authenticated identity
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if _, ok := GetAuthenticatedIdentity(ctx); !ok {
			m.logger.Warn("unauthenticated request rejected",
				zap.String("request_id", GetRequestIDFromContext(ctx)),
				zap.String("path", r.URL.Path))
			_ = utils.WriteUnauthorized(w, "")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) isPublic(path string) bool {
	for _, prefix := range m.publicPrefix {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// extractBearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The header must hold exactly two whitespace-separated fields.
func extractBearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	return parts[1], true
}
