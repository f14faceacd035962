package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckAPIKey(t *testing.T) {
	hash, err := HashAPIKey("swap24-key-123")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	assert.True(t, CheckAPIKey("swap24-key-123", hash))
	assert.False(t, CheckAPIKey("wrong-key", hash))
}

func TestGenerateRandomToken(t *testing.T) {
	token, err := GenerateRandomToken(16)
	assert.NoError(t, err)
	assert.Len(t, token, 32) // hex encoded

	apiKey, err := GenerateAPIKey()
	assert.NoError(t, err)
	assert.Len(t, apiKey, 64)
}

func TestHashAPIKeyAndGenerateRandomToken_ErrorBranches(t *testing.T) {
	origBcrypt := bcryptGenerateFromPassword
	origRandRead := randomRead
	t.Cleanup(func() {
		bcryptGenerateFromPassword = origBcrypt
		randomRead = origRandRead
	})

	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("bcrypt failed")
	}
	_, err := HashAPIKey("swap24-key-123")
	assert.Error(t, err)

	bcryptGenerateFromPassword = origBcrypt
	randomRead = func([]byte) (int, error) {
		return 0, errors.New("rand failed")
	}
	_, err = GenerateRandomToken(16)
	assert.Error(t, err)
}
