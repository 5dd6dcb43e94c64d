package auth

import (
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "SecurePass"

// GenerateTOTPSecret creates a fresh TOTP secret for 2FA enrollment and
// returns the shared secret plus the otpauth:// provisioning URI that
// authenticator apps consume (usually rendered as a QR code client-side).
func GenerateTOTPSecret(email string) (secret string, uri string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: email,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// VerifyTOTP checks a 6-digit code against the shared secret, allowing the
// library's default clock skew window.
func VerifyTOTP(secret string, code string) bool {
	return totp.Validate(code, secret)
}
