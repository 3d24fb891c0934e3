// internal/lib/jwt/jwt_test.go
package jwt

import (
	"testing"
	"time"

	"papertrade/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	user := &domain.User{ID: 42, Username: "ann"}

	token, err := NewToken(user, "secret", time.Hour)
	require.NoError(t, err)

	userID, err := ParseUserID(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestParseUserID_WrongSecret(t *testing.T) {
	user := &domain.User{ID: 42, Username: "ann"}

	token, err := NewToken(user, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseUserID(token, "other-secret")
	assert.Error(t, err)
}

func TestParseUserID_Expired(t *testing.T) {
	user := &domain.User{ID: 42, Username: "ann"}

	token, err := NewToken(user, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseUserID(token, "secret")
	assert.Error(t, err)
}

func TestParseUserID_Garbage(t *testing.T) {
	_, err := ParseUserID("not-a-token", "secret")
	assert.Error(t, err)
}
