package models

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	TOTPSecret   string // empty until 2FA is enabled
	IsActive     bool
	CreatedAt    time.Time
}

// TwoFactorEnabled reports whether a TOTP secret has been confirmed for the
// account.
func (u *User) TwoFactorEnabled() bool {
	return u.TOTPSecret != ""
}
