package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set carried by issued tokens: the registered
// sub/iss/aud/iat/exp fields plus the identity's email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// Subject returns the sub claim, the user id
func (c *Claims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserEmail returns the email claim
func (c *Claims) UserEmail() string {
	return c.Email
}

// Expires returns the expiration time
func (c *Claims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *Claims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
