// Package cryptox implements the client-side vault cryptography: Argon2id
// key derivation from the master password and the AES-GCM envelope used for
// the encrypted_password field of vault entries.
//
// The master password and derived keys only ever live in memory for the
// duration of a single call; helpers wipe key material before returning.
package cryptox

import (
	"fmt"

	"github.com/dmitrijs2005/securepass/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	// Argon2id parameters per RFC 9106.
	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4

	// KeySize is the derived key length: 32 bytes for AES-256.
	KeySize = 32

	// SaltSize is the per-entry key-derivation salt length.
	SaltSize = 16

	// NonceSize is the AES-GCM nonce length (96 bits, the GCM standard).
	NonceSize = 12
)

// DeriveKey derives a 256-bit encryption key from the master password and a
// per-entry salt using Argon2id. Deterministic: the same (password, salt)
// pair always yields the same key, which is how decryption reconstructs the
// key without it ever being stored.
//
// The password may contain any characters but must be non-empty; the salt
// must be exactly SaltSize bytes. The caller owns the returned key and
// should wipe it (common.WipeByteArray) when done.
func DeriveKey(masterPassword string, salt []byte) ([]byte, error) {
	if masterPassword == "" {
		return nil, fmt.Errorf("%w: empty master password", common.ErrInvalidInput)
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", common.ErrInvalidInput, SaltSize, len(salt))
	}
	return argon2.IDKey([]byte(masterPassword), salt, argonTime, argonMemory, argonThreads, KeySize), nil
}
