package identity

import (
	"github.com/goliatone/go-router"
	"github.com/toolboxd/go-identity/middleware/jwtware"
)

// tokenValidatorAdapter bridges TokenService to the middleware's claim
// surface without an import cycle.
type tokenValidatorAdapter struct {
	tokens TokenService
}

func (a tokenValidatorAdapter) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := a.tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ProtectedRoute verifies the inbound bearer token with the same secret
// and algorithm contract used at issuance, and stores the validated
// claims under the configured context key.
func ProtectedRoute(cfg Config, tokens TokenService, errorHandler router.ErrorHandler) router.MiddlewareFunc {
	return jwtware.New(jwtware.Config{
		ErrorHandler:   errorHandler,
		TokenValidator: tokenValidatorAdapter{tokens: tokens},
		ContextKey:     cfg.GetContextKey(),
		TokenLookup:    cfg.GetTokenLookup(),
		AuthScheme:     cfg.GetAuthScheme(),
	})
}

// SubjectFromContext reads the verified token subject stashed by the
// middleware. Returns the empty string when no validated claims are
// present, which downstream resolution reports as unauthenticated.
func SubjectFromContext(c router.Context, keys ...string) string {
	key := "user"
	if len(keys) > 0 && keys[0] != "" {
		key = keys[0]
	}

	value := c.Locals(key)
	if value == nil {
		return ""
	}

	if claims, ok := value.(interface{ Subject() string }); ok {
		return claims.Subject()
	}

	return ""
}

// GetRouterSession builds a session object from the validated claims the
// middleware stored in the request locals.
func GetRouterSession(c router.Context, key string) (*SessionObject, error) {
	value := c.Locals(key)
	if value == nil {
		return nil, ErrUnauthenticated
	}

	claims, ok := value.(*Claims)
	if !ok {
		return nil, ErrUnableToMapClaims
	}

	return SessionFromClaims(claims)
}
