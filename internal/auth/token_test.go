package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khata/internal/auth"
	"khata/internal/config"
	"khata/internal/domain"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret-key-for-unit-tests", Issuer: "khata-test", Audience: "khata-api"}
}

func testActor() domain.Actor {
	return domain.Actor{
		TenantID:      uuid.New(),
		UserID:        uuid.New(),
		Role:          domain.RoleMember,
		HomeStateCode: "27",
		GSTIN:         "27AAAAA0000A1Z5",
		Email:         "owner@shop.test",
		DisplayName:   "Sharma Stores",
	}
}

func TestHMACVerifier_RoundTrip(t *testing.T) {
	v := auth.NewHMACVerifier(testJWTConfig())
	actor := testActor()

	token, err := v.Issue(actor, time.Hour)
	require.NoError(t, err)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, actor, claims.Actor())
}

func TestHMACVerifier_Expired(t *testing.T) {
	v := auth.NewHMACVerifier(testJWTConfig())

	token, err := v.Issue(testActor(), -time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestHMACVerifier_WrongSecret(t *testing.T) {
	other := testJWTConfig()
	other.Secret = "another-secret"
	token, err := auth.NewHMACVerifier(other).Issue(testActor(), time.Hour)
	require.NoError(t, err)

	_, err = auth.NewHMACVerifier(testJWTConfig()).Verify(token)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestHMACVerifier_WrongAudience(t *testing.T) {
	other := testJWTConfig()
	other.Audience = "refresh"
	token, err := auth.NewHMACVerifier(other).Issue(testActor(), time.Hour)
	require.NoError(t, err)

	_, err = auth.NewHMACVerifier(testJWTConfig()).Verify(token)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestHMACVerifier_MissingTenant(t *testing.T) {
	v := auth.NewHMACVerifier(testJWTConfig())
	actor := testActor()
	actor.TenantID = uuid.Nil

	token, err := v.Issue(actor, time.Hour)
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.Error(t, err)
}
