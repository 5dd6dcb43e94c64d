package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/dmitrijs2005/securepass/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		password  string
		plaintext string
	}{
		{"simple", "correcthorse", "p@ss1234"},
		{"unicode password", "pфrole🔑", "secret"},
		{"empty plaintext", "correcthorse", ""},
		{"long plaintext", "correcthorse", string(make([]byte, 4096))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := Encrypt(tt.password, []byte(tt.plaintext))
			require.NoError(t, err)

			got, err := Decrypt(tt.password, blob)
			require.NoError(t, err)
			// string comparison treats nil and empty alike, which is what a
			// caller of Decrypt observes for empty plaintext
			assert.Equal(t, tt.plaintext, string(got))
		})
	}
}

func TestEncrypt_NonDeterministic(t *testing.T) {
	blob1, err := Encrypt("correcthorse", []byte("p@ss1234"))
	require.NoError(t, err)
	blob2, err := Encrypt("correcthorse", []byte("p@ss1234"))
	require.NoError(t, err)

	assert.NotEqual(t, blob1, blob2)
}

func TestDecrypt_WrongPassword(t *testing.T) {
	blob, err := Encrypt("correcthorse", []byte("p@ss1234"))
	require.NoError(t, err)

	_, err = Decrypt("wrongpass", blob)
	assert.ErrorIs(t, err, common.ErrAuthenticationFailed)
}

func TestDecrypt_TamperedBlobAnyBit(t *testing.T) {
	blob, err := Encrypt("correcthorse", []byte("p@ss1234"))
	require.NoError(t, err)

	raw, err := base64.URLEncoding.DecodeString(blob)
	require.NoError(t, err)

	// Flip one bit in every byte past the version byte in turn: salt, nonce,
	// ciphertext and tag corruption must all fail closed.
	for i := 1; i < len(raw); i++ {
		tampered := make([]byte, len(raw))
		copy(tampered, raw)
		tampered[i] ^= 0x01

		_, err := Decrypt("correcthorse", base64.URLEncoding.EncodeToString(tampered))
		assert.ErrorIs(t, err, common.ErrAuthenticationFailed, "bit flip at byte %d must fail authentication", i)
	}
}

func TestDecrypt_MalformedBlob(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"empty", base64.URLEncoding.EncodeToString(nil)},
		{"unknown version", base64.URLEncoding.EncodeToString(append([]byte{0x7f}, make([]byte, 60)...))},
		{"truncated", base64.URLEncoding.EncodeToString([]byte{BlobVersion1, 1, 2, 3})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt("correcthorse", tt.blob)
			assert.ErrorIs(t, err, common.ErrMalformedBlob)
		})
	}
}

func TestBlob_EncodeDecode(t *testing.T) {
	blob, err := Encrypt("correcthorse", []byte("payload"))
	require.NoError(t, err)

	parsed, err := DecodeBlob(blob)
	require.NoError(t, err)

	assert.Equal(t, byte(BlobVersion1), parsed.Version)
	assert.Len(t, parsed.Salt, SaltSize)
	assert.Len(t, parsed.Nonce, NonceSize)
	assert.GreaterOrEqual(t, len(parsed.Ciphertext), gcmTagSize)
	assert.Equal(t, blob, parsed.Encode())
}

func TestEncryptWithKey_RoundTrip(t *testing.T) {
	key := common.GenerateRandByteArray(KeySize)

	payload, err := EncryptWithKey(key, []byte("launch codes"))
	require.NoError(t, err)

	got, err := DecryptWithKey(key, payload)
	require.NoError(t, err)
	assert.Equal(t, []byte("launch codes"), got)
}

func TestDecryptWithKey_WrongKey(t *testing.T) {
	key := common.GenerateRandByteArray(KeySize)
	other := common.GenerateRandByteArray(KeySize)

	payload, err := EncryptWithKey(key, []byte("launch codes"))
	require.NoError(t, err)

	_, err = DecryptWithKey(other, payload)
	assert.ErrorIs(t, err, common.ErrAuthenticationFailed)
}

func TestDecryptWithKey_Truncated(t *testing.T) {
	key := common.GenerateRandByteArray(KeySize)

	_, err := DecryptWithKey(key, []byte{1, 2, 3})
	assert.ErrorIs(t, err, common.ErrMalformedBlob)
}
