package models

import "time"

// VaultEntry is one stored credential. SiteName and SiteURL are plaintext
// metadata used for listing and search; EncryptedPassword is an opaque
// envelope produced client-side and never parsed, decrypted or logged by the
// server. AttachmentKey, when set, points at an encrypted object in the
// object store.
type VaultEntry struct {
	ID                string
	UserID            string
	SiteName          string
	SiteURL           string
	EncryptedPassword string
	AttachmentKey     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
