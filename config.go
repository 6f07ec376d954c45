package identity

import (
	"github.com/goliatone/go-errors"
)

// MinSecretLen is the minimum signing secret length in bytes. A 32 byte
// secret carries 256 bits of entropy, matching the HS256 key size.
const MinSecretLen = 32

// DefaultTokenExpiration is the token lifetime in minutes when the
// configuration leaves it unset.
const DefaultTokenExpiration = 60

// SimpleConfig is a plain value implementation of Config
type SimpleConfig struct {
	SigningKey      string
	Issuer          string
	Audience        []string
	TokenExpiration int
	ContextKey      string
	TokenLookup     string
	AuthScheme      string
}

var _ Config = (*SimpleConfig)(nil)

func (c *SimpleConfig) GetSigningKey() string { return c.SigningKey }

func (c *SimpleConfig) GetIssuer() string { return c.Issuer }

func (c *SimpleConfig) GetAudience() []string { return c.Audience }

func (c *SimpleConfig) GetTokenExpiration() int {
	if c.TokenExpiration <= 0 {
		return DefaultTokenExpiration
	}
	return c.TokenExpiration
}

func (c *SimpleConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return "user"
	}
	return c.ContextKey
}

func (c *SimpleConfig) GetTokenLookup() string {
	if c.TokenLookup == "" {
		return "header:Authorization"
	}
	return c.TokenLookup
}

func (c *SimpleConfig) GetAuthScheme() string {
	if c.AuthScheme == "" {
		return "Bearer"
	}
	return c.AuthScheme
}

// ValidateConfig rejects configurations that must never reach request
// time: an absent or under-length signing secret, or an unidentified
// issuer or audience. Call it once at startup.
func ValidateConfig(cfg Config) error {
	if cfg == nil {
		return errors.New("config is required", errors.CategoryValidation)
	}

	if len(cfg.GetSigningKey()) < MinSecretLen {
		return errors.New("signing secret must be at least 32 bytes", errors.CategoryValidation).
			WithTextCode("WEAK_SIGNING_SECRET").
			WithMetadata(map[string]any{
				"secret_len": len(cfg.GetSigningKey()),
				"min_len":    MinSecretLen,
			})
	}

	if cfg.GetIssuer() == "" {
		return errors.New("token issuer is required", errors.CategoryValidation).
			WithTextCode("MISSING_ISSUER")
	}

	if len(cfg.GetAudience()) == 0 {
		return errors.New("token audience is required", errors.CategoryValidation).
			WithTextCode("MISSING_AUDIENCE")
	}

	if cfg.GetTokenExpiration() <= 0 {
		return errors.New("token expiration must be positive", errors.CategoryValidation).
			WithTextCode("INVALID_TOKEN_EXPIRATION")
	}

	return nil
}
