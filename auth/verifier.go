package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Reason classifies why a token was rejected
type Reason string

const (
	ReasonExpired          Reason = "expired"
	ReasonMalformed        Reason = "malformed"
	ReasonInvalidSignature Reason = "invalid_signature"
	ReasonOther            Reason = "other"
)

// RejectionError is returned by Verify for every token that does not yield claims.
// Err keeps the underlying parser error for logging; it is never shown to callers.
type RejectionError struct {
	Reason Reason
	Err    error
}

// Error implements the error interface
func (e *RejectionError) Error() string {
	switch e.Reason {
	case ReasonExpired:
		return "token has expired"
	case ReasonMalformed:
		return "token is malformed"
	case ReasonInvalidSignature:
		return "token signature is invalid"
	default:
		return "token rejected"
	}
}

// Unwrap implements errors.Unwrap
func (e *RejectionError) Unwrap() error {
	return e.Err
}

// Is matches another RejectionError with the same reason, so the sentinels below
// work with errors.Is.
func (e *RejectionError) Is(target error) bool {
	t, ok := target.(*RejectionError)
	if !ok {
		return false
	}
	return e.Reason == t.Reason
}

var (
	// ErrTokenExpired is returned when the exp claim is in the past
	ErrTokenExpired = &RejectionError{Reason: ReasonExpired}

	// ErrTokenMalformed is returned when the token cannot be decoded
	ErrTokenMalformed = &RejectionError{Reason: ReasonMalformed}

	// ErrInvalidSignature is returned for a bad signature or a disallowed algorithm
	ErrInvalidSignature = &RejectionError{Reason: ReasonInvalidSignature}

	// ErrTokenRejected is returned for any other verification failure
	ErrTokenRejected = &RejectionError{Reason: ReasonOther}
)

// SupportedAlgorithms lists the symmetric signing algorithms a verifier may be configured with
var SupportedAlgorithms = []string{
	jwt.SigningMethodHS256.Alg(),
	jwt.SigningMethodHS384.Alg(),
	jwt.SigningMethodHS512.Alg(),
}

// Claims represents the token payload consumed by the service.
// The subject (user id) and exp come from the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	TenantID string `json:"tenant_id,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// VerifierConfig holds the pre-shared secret and the single accepted algorithm
type VerifierConfig struct {
	SecretKey string
	Algorithm string

	// Now overrides the clock used for exp checks. Defaults to time.Now.
	Now func() time.Time
}

// Verifier validates bearer tokens minted by the external auth service.
// It is safe for concurrent use and never touches the network or the database.
type Verifier struct {
	key    []byte
	method jwt.SigningMethod
	parser *jwt.Parser
	logger *zap.Logger
}

// NewVerifier creates a new Verifier. It fails if the secret is empty or the
// algorithm is not one of SupportedAlgorithms.
func NewVerifier(config VerifierConfig, logger *zap.Logger) (*Verifier, error) {
	if config.SecretKey == "" {
		return nil, errors.New("jwt secret key is required")
	}

	method, err := lookupMethod(config.Algorithm)
	if err != nil {
		return nil, err
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{method.Alg()}),
	}
	if config.Now != nil {
		opts = append(opts, jwt.WithTimeFunc(config.Now))
	}

	return &Verifier{
		key:    []byte(config.SecretKey),
		method: method,
		parser: jwt.NewParser(opts...),
		logger: logger,
	}, nil
}

// Algorithm returns the configured signing algorithm name
func (v *Verifier) Algorithm() string {
	return v.method.Alg()
}

// Verify decodes the raw token (without the "Bearer " prefix), checks the
// signature and expiry, and returns the claims. Every failure is a *RejectionError.
func (v *Verifier) Verify(rawToken string) (*Claims, error) {
	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		return v.key, nil
	})
	if err != nil {
		return nil, v.reject(err)
	}

	if !token.Valid {
		return nil, v.reject(errors.New("token not valid"))
	}

	return claims, nil
}

// reject classifies a parser error and logs it at the severity of its class
func (v *Verifier) reject(err error) *RejectionError {
	var reason Reason
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		reason = ReasonExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		reason = ReasonMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		reason = ReasonInvalidSignature
	default:
		reason = ReasonOther
	}

	if reason == ReasonOther {
		v.logger.Error("unexpected token verification error", zap.Error(err))
	} else {
		v.logger.Warn("token rejected",
			zap.String("reason", string(reason)),
			zap.Error(err))
	}

	return &RejectionError{Reason: reason, Err: err}
}

func lookupMethod(alg string) (jwt.SigningMethod, error) {
	for _, supported := range SupportedAlgorithms {
		if alg == supported {
			return jwt.GetSigningMethod(alg), nil
		}
	}
	return nil, fmt.Errorf("unsupported jwt algorithm %q: must be one of %v", alg, SupportedAlgorithms)
}
