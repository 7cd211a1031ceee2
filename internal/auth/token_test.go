package auth

import (
	"testing"
	"time"

	"github.com/DukeRupert/motorcheck/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCodecRoundTrip(t *testing.T) {
	codec, err := NewTokenCodec("test-secret", time.Hour)
	require.NoError(t, err)

	user := &domain.User{
		ID:   uuid.New(),
		Role: domain.RoleMechanic,
	}

	token, err := codec.Mint(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, domain.RoleMechanic, role)
}

func TestTokenCodecRejectsWrongSecret(t *testing.T) {
	codec, err := NewTokenCodec("secret-a", time.Hour)
	require.NoError(t, err)
	other, err := NewTokenCodec("secret-b", time.Hour)
	require.NoError(t, err)

	token, err := codec.Mint(&domain.User{ID: uuid.New(), Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, _, err = other.Verify(token)
	assert.Error(t, err)
}

func TestTokenCodecRejectsExpired(t *testing.T) {
	codec, err := NewTokenCodec("test-secret", time.Nanosecond)
	require.NoError(t, err)

	token, err := codec.Mint(&domain.User{ID: uuid.New(), Role: domain.RoleAdmin})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, _, err = codec.Verify(token)
	assert.Error(t, err)
}

func TestTokenCodecRejectsGarbage(t *testing.T) {
	codec, err := NewTokenCodec("test-secret", time.Hour)
	require.NoError(t, err)

	_, _, err = codec.Verify("not-a-token")
	assert.Error(t, err)
}

func TestNewTokenCodecRequiresSecret(t *testing.T) {
	_, err := NewTokenCodec("", time.Hour)
	assert.Error(t, err)
}
