package cli

import (
	"encoding/base64"
	"testing"

	"github.com/dmitrijs2005/securepass/internal/common"
	"github.com/dmitrijs2005/securepass/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShareLink(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		wantUUID string
		wantKey  string
		wantErr  bool
	}{
		{"full url", "https://host/s/abc-123#a2V5", "abc-123", "a2V5", false},
		{"short form", "abc-123#a2V5", "abc-123", "a2V5", false},
		{"missing key", "abc-123", "", "", true},
		{"empty key", "abc-123#", "", "", true},
		{"missing id", "https://host/s/#a2V5", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, key, err := parseShareLink(tt.link)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUUID, id)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestDecryptShare_RoundTrip(t *testing.T) {
	key := common.GenerateRandByteArray(cryptox.KeySize)
	sealed, err := cryptox.EncryptWithKey(key, []byte("hunter2"))
	require.NoError(t, err)

	keyText := base64.URLEncoding.EncodeToString(key)
	sealedText := base64.URLEncoding.EncodeToString(sealed)

	content, err := decryptShare(keyText, sealedText)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", string(content))
}

func TestDecryptShare_WrongKey(t *testing.T) {
	key := common.GenerateRandByteArray(cryptox.KeySize)
	sealed, err := cryptox.EncryptWithKey(key, []byte("hunter2"))
	require.NoError(t, err)

	wrongKey := base64.URLEncoding.EncodeToString(common.GenerateRandByteArray(cryptox.KeySize))
	sealedText := base64.URLEncoding.EncodeToString(sealed)

	_, err = decryptShare(wrongKey, sealedText)
	assert.ErrorIs(t, err, common.ErrAuthenticationFailed)
}

func TestDecryptShare_BadEncoding(t *testing.T) {
	_, err := decryptShare("not base64 !!!", "also not base64 !!!")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
