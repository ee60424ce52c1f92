package security

import (
	"context"
	"errors"

	"rentacar-backend/internal/domain"
)

// ErrUnauthorized is raised when the caller cannot prove control of the
// required principal. It is deliberately outside the engine's error set:
// authorization failures abort an operation before its own logic runs.
var ErrUnauthorized = errors.New("security: caller is not authorized as the required principal")

// Authorizer proves that the invoking call controls a principal identity.
// Require returns nil when the proof succeeds and ErrUnauthorized (or a
// token validation error) otherwise.
type Authorizer interface {
	Require(ctx context.Context, principal domain.Principal) error
}

type contextKey string

const tokenContextKey contextKey = "bearer-token"

// ContextWithToken attaches a raw bearer token to the context. The HTTP
// layer calls this for every request carrying an Authorization header.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// TokenFromContext returns the bearer token attached to the context.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok && token != ""
}

type jwtAuthorizer struct {
	tokens TokenManager
}

// NewJWTAuthorizer builds an Authorizer that accepts a context-carried JWT
// whose principal claim matches the required principal.
func NewJWTAuthorizer(tokens TokenManager) Authorizer {
	return &jwtAuthorizer{tokens: tokens}
}

func (a *jwtAuthorizer) Require(ctx context.Context, principal domain.Principal) error {
	raw, ok := TokenFromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}
	claims, err := a.tokens.ValidateToken(raw)
	if err != nil {
		return err
	}
	if claims.Principal != string(principal) {
		return ErrUnauthorized
	}
	return nil
}
