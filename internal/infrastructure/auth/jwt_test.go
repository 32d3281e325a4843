package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelerp/backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	})
}

func newTestInput() TokenInput {
	branchID := uuid.New()
	return TokenInput{
		TenantID:    uuid.New(),
		UserID:      uuid.New(),
		Username:    "agent",
		BranchID:    &branchID,
		Roles:       []string{"agent"},
		Permissions: []string{"ticket:read", "ticket:write"},
	}
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	token, expiresAt, err := svc.GenerateAccessToken(input)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, input.TenantID.String(), claims.TenantID)
	assert.True(t, claims.HasPermission("ticket:write"))
	assert.False(t, claims.HasPermission("payment:refund"))
	assert.Greater(t, claims.GetRemainingTTL(), 14*time.Minute)

	actor, err := claims.Actor()
	require.NoError(t, err)
	assert.Equal(t, input.TenantID, actor.TenantID)
	assert.Equal(t, input.UserID, actor.UserID)
	require.NotNil(t, actor.BranchID)
	assert.Equal(t, *input.BranchID, *actor.BranchID)
	assert.Equal(t, []string{"agent"}, actor.Roles)
}

func TestGenerateAccessToken_RequiresIdentity(t *testing.T) {
	svc := newTestJWTService()

	input := newTestInput()
	input.TenantID = uuid.Nil
	_, _, err := svc.GenerateAccessToken(input)
	assert.ErrorIs(t, err, ErrMissingTenantID)

	input = newTestInput()
	input.UserID = uuid.Nil
	_, _, err = svc.GenerateAccessToken(input)
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestValidateAccessToken_Errors(t *testing.T) {
	svc := newTestJWTService()
	token, _, err := svc.GenerateAccessToken(newTestInput())
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		late := newTestJWTService()
		late.now = func() time.Time { return time.Now().Add(time.Hour) }
		_, err := late.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "another-secret-key-of-32-characters", AccessTokenExpiration: time.Minute, Issuer: "test-issuer"})
		_, err := other.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "test-secret-key-at-least-32-chars", AccessTokenExpiration: time.Minute, Issuer: "elsewhere"})
		_, err := other.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{Issuer: "test-issuer"},
			TenantID:         uuid.NewString(),
			UserID:           uuid.NewString(),
		})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.ValidateAccessToken(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClaimsActor_InvalidIDs(t *testing.T) {
	_, err := (&Claims{TenantID: "x", UserID: uuid.NewString()}).Actor()
	assert.ErrorIs(t, err, ErrInvalidClaims)

	_, err = (&Claims{TenantID: uuid.NewString(), UserID: uuid.NewString(), BranchID: "bad"}).Actor()
	assert.ErrorIs(t, err, ErrInvalidClaims)
}
