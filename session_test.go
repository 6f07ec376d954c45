package identity_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	identity "github.com/toolboxd/go-identity"
)

func TestSessionFromClaims(t *testing.T) {
	id := uuid.New()
	iat := time.Now().Truncate(time.Second)
	exp := iat.Add(time.Hour)

	claims := &identity.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "go-identity",
			Subject:   id.String(),
			Audience:  jwt.ClaimStrings{"go-identity-api"},
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: "a@x.com",
	}

	session, err := identity.SessionFromClaims(claims)
	require.NoError(t, err)

	assert.Equal(t, id.String(), session.GetUserID())
	assert.Equal(t, "a@x.com", session.GetEmail())
	assert.Equal(t, []string{"go-identity-api"}, session.GetAudience())
	assert.Equal(t, "go-identity", session.GetIssuer())

	require.NotNil(t, session.GetIssuedAt())
	assert.True(t, session.GetIssuedAt().Equal(iat))
	require.NotNil(t, session.GetExpiration())
	assert.True(t, session.GetExpiration().Equal(exp))

	parsed, err := session.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
	assert.True(t, identity.HasUserUUID(session))
}

func TestSessionFromClaimsNil(t *testing.T) {
	_, err := identity.SessionFromClaims(nil)
	require.Error(t, err)
}

func TestSessionFromClaimsPartial(t *testing.T) {
	claims := &identity.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "not-a-uuid",
		},
	}

	session, err := identity.SessionFromClaims(claims)
	require.NoError(t, err)

	assert.Nil(t, session.GetIssuedAt())
	assert.Nil(t, session.GetExpiration())

	_, err = session.GetUserUUID()
	require.Error(t, err)
	assert.False(t, identity.HasUserUUID(session))
}

func TestHasUserUUIDNilSession(t *testing.T) {
	assert.False(t, identity.HasUserUUID(nil))
}
