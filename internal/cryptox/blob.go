package cryptox

import (
	"encoding/base64"
	"fmt"

	"github.com/dmitrijs2005/securepass/internal/common"
)

// BlobVersion1 identifies the current envelope layout:
//
//	version(1) || salt(16) || nonce(12) || ciphertext+tag(>=16)
//
// The version byte exists so the cipher or KDF can be migrated later without
// breaking blobs already at rest.
const BlobVersion1 = 0x01

// gcmTagSize is the AES-GCM authentication tag length appended by Seal.
const gcmTagSize = 16

// Blob is the parsed form of an encrypted envelope. Ciphertext includes the
// GCM authentication tag.
type Blob struct {
	Version    byte
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
}

// Encode serializes the blob to its URL-safe base64 wire form, suitable for
// JSON transport and opaque storage server-side.
func (b *Blob) Encode() string {
	raw := make([]byte, 0, 1+len(b.Salt)+len(b.Nonce)+len(b.Ciphertext))
	raw = append(raw, b.Version)
	raw = append(raw, b.Salt...)
	raw = append(raw, b.Nonce...)
	raw = append(raw, b.Ciphertext...)
	return base64.URLEncoding.EncodeToString(raw)
}

// DecodeBlob parses an encoded envelope. It fails with ErrMalformedBlob on
// bad base64, an unknown version byte, or a payload too short to contain a
// salt, nonce and authentication tag. It performs no cryptography: a blob
// that decodes fine may still fail authentication later.
func DecodeBlob(encoded string) (*Blob, error) {
	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedBlob, err)
	}

	if len(raw) < 1 {
		return nil, fmt.Errorf("%w: empty payload", common.ErrMalformedBlob)
	}
	if raw[0] != BlobVersion1 {
		return nil, fmt.Errorf("%w: unsupported version %d", common.ErrMalformedBlob, raw[0])
	}
	if len(raw) < 1+SaltSize+NonceSize+gcmTagSize {
		return nil, fmt.Errorf("%w: truncated payload", common.ErrMalformedBlob)
	}

	return &Blob{
		Version:    raw[0],
		Salt:       raw[1 : 1+SaltSize],
		Nonce:      raw[1+SaltSize : 1+SaltSize+NonceSize],
		Ciphertext: raw[1+SaltSize+NonceSize:],
	}, nil
}
