// Package common defines shared constants and sentinel errors used across
// client and server layers of SecurePass. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// ErrInvalidInput signals malformed parameters (a caller bug), e.g. a
	// key-derivation salt of the wrong length or an empty share payload.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthenticationFailed is returned when an encrypted blob fails to
	// decrypt. Wrong master password, corrupted ciphertext and deliberate
	// tampering all produce this same error on purpose: the caller (and an
	// attacker) must not be able to tell them apart.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrMalformedBlob signals an encrypted envelope that could not be
	// parsed at all (bad encoding, unknown version, truncated fields).
	ErrMalformedBlob = errors.New("malformed encrypted blob")

	// ErrNotFound is the unified result for one-time secrets that are
	// expired, already consumed, or never existed, and for any other
	// missing record.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTTL rejects share lifetimes outside the allowed range.
	ErrInvalidTTL = errors.New("invalid ttl")

	// ErrInvalidLength rejects generator lengths outside the allowed range.
	ErrInvalidLength = errors.New("invalid length")

	// Service-level errors.
	ErrAlreadyExists = errors.New("already exists")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInternal      = errors.New("internal error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
