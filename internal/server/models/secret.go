package models

import "time"

// SecretShare is a one-time message. EncryptedContent is sealed with an
// ephemeral key the server hands to the creator exactly once and never
// stores; Consumed marks a share that has been revealed and is awaiting
// physical purge in stores that tombstone instead of deleting in place.
type SecretShare struct {
	UUID             string
	EncryptedContent []byte
	Consumed         bool
	CreatedAt        time.Time
	ExpiresAt        time.Time
}

// Expired reports whether the share is past its expiry at the given instant.
func (s *SecretShare) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
