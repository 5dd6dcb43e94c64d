package cryptox

import (
	"testing"

	"github.com/dmitrijs2005/securepass/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := common.GenerateRandByteArray(SaltSize)

	key1, err := DeriveKey("correcthorse", salt)
	require.NoError(t, err)
	key2, err := DeriveKey("correcthorse", salt)
	require.NoError(t, err)

	assert.Equal(t, key1, key2)
	assert.Len(t, key1, KeySize)
}

func TestDeriveKey_DifferentSaltsDifferentKeys(t *testing.T) {
	salt1 := common.GenerateRandByteArray(SaltSize)
	salt2 := common.GenerateRandByteArray(SaltSize)

	key1, err := DeriveKey("correcthorse", salt1)
	require.NoError(t, err)
	key2, err := DeriveKey("correcthorse", salt2)
	require.NoError(t, err)

	assert.NotEqual(t, key1, key2)
}

func TestDeriveKey_DifferentPasswordsDifferentKeys(t *testing.T) {
	salt := common.GenerateRandByteArray(SaltSize)

	key1, err := DeriveKey("password-one", salt)
	require.NoError(t, err)
	key2, err := DeriveKey("password-two", salt)
	require.NoError(t, err)

	assert.NotEqual(t, key1, key2)
}

func TestDeriveKey_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		password string
		salt     []byte
	}{
		{"empty password", "", common.GenerateRandByteArray(SaltSize)},
		{"short salt", "pw", common.GenerateRandByteArray(SaltSize - 1)},
		{"long salt", "pw", common.GenerateRandByteArray(SaltSize + 1)},
		{"nil salt", "pw", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeriveKey(tt.password, tt.salt)
			assert.ErrorIs(t, err, common.ErrInvalidInput)
		})
	}
}

func TestDeriveKey_AnyPasswordContentAccepted(t *testing.T) {
	salt := common.GenerateRandByteArray(SaltSize)

	for _, pw := range []string{" ", "\x00", "пароль", "🔑", "multi\nline"} {
		_, err := DeriveKey(pw, salt)
		assert.NoError(t, err, "password %q should be accepted", pw)
	}
}
