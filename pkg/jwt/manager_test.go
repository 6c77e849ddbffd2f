package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	manager := NewManager("test-secret", 24)

	token, err := manager.GenerateToken(42, "Keycap Collector", 10)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := manager.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "Keycap Collector", claims.Nickname)
	assert.Equal(t, 10, claims.Level)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	manager := NewManager("test-secret", 24)
	other := NewManager("other-secret", 24)

	token, err := manager.GenerateToken(42, "nick", 1)
	assert.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenGarbage(t *testing.T) {
	manager := NewManager("test-secret", 24)

	_, err := manager.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
