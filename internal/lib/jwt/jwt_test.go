package jwt

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secureid/internal/domain/models"
)

const secret = "secure-key-123"

func TestNewToken_ParseRoundTrip(t *testing.T) {
	acc := models.Account{ID: 42, Email: gofakeit.Email()}

	token, err := NewToken(acc, secret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, secret)
	require.NoError(t, err)

	assert.Equal(t, acc.ID, claims.UserID)
	assert.Equal(t, acc.Email, claims.Email)
	_, err = uuid.Parse(claims.ID)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestNewToken_NotEnoughData(t *testing.T) {
	_, err := NewToken(models.Account{}, secret, time.Hour)
	require.Error(t, err)

	_, err = NewToken(models.Account{ID: 1}, "", time.Hour)
	require.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := NewToken(models.Account{ID: 1}, secret, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "another-secret")
	require.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := NewToken(models.Account{ID: 1}, secret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, secret)
	require.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("mock-jwt-token-1", secret)
	require.Error(t, err)
}
