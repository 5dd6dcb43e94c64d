package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/dmitrijs2005/securepass/internal/common"
)

// Encrypt derives a key from the master password under a fresh random salt
// and seals plaintext with AES-256-GCM under a fresh random nonce. The salt
// and nonce travel inside the returned envelope, so the blob is
// self-contained: nothing but the master password is needed to open it.
//
// Every call produces a different blob, even for identical inputs.
func Encrypt(masterPassword string, plaintext []byte) (string, error) {
	salt := common.GenerateRandByteArray(SaltSize)

	key, err := DeriveKey(masterPassword, salt)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := common.GenerateRandByteArray(NonceSize)
	ciphertext := aesgcm.Seal(nil, nonce, plaintext, nil)

	blob := &Blob{Version: BlobVersion1, Salt: salt, Nonce: nonce, Ciphertext: ciphertext}
	return blob.Encode(), nil
}

// Decrypt parses the envelope, re-derives the key from the master password
// and the embedded salt, and opens the ciphertext.
//
// Failure modes:
//   - ErrMalformedBlob: the envelope could not be parsed.
//   - ErrAuthenticationFailed: the GCM tag did not verify. Wrong master
//     password, corruption and tampering are deliberately indistinguishable.
func Decrypt(masterPassword string, encoded string) ([]byte, error) {
	blob, err := DecodeBlob(encoded)
	if err != nil {
		return nil, err
	}

	key, err := DeriveKey(masterPassword, blob.Salt)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesgcm.Open(nil, blob.Nonce, blob.Ciphertext, nil)
	if err != nil {
		// Single unified signal: no detail about why the tag failed.
		return nil, common.ErrAuthenticationFailed
	}

	return plaintext, nil
}

// EncryptWithKey seals plaintext with a caller-supplied 256-bit key and a
// fresh nonce, returning nonce||ciphertext+tag. Used by the one-time secret
// service, where an ephemeral key replaces password derivation.
func EncryptWithKey(key, plaintext []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(NonceSize)
	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// DecryptWithKey opens a nonce||ciphertext+tag payload produced by
// EncryptWithKey. Returns ErrAuthenticationFailed if the tag does not verify
// and ErrMalformedBlob if the payload is too short to contain a nonce.
func DecryptWithKey(key, payload []byte) ([]byte, error) {
	if len(payload) < NonceSize+gcmTagSize {
		return nil, fmt.Errorf("%w: truncated payload", common.ErrMalformedBlob)
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesgcm.Open(nil, payload[:NonceSize], payload[NonceSize:], nil)
	if err != nil {
		return nil, common.ErrAuthenticationFailed
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
