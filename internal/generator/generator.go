// Package generator produces random passwords from a character-class policy.
package generator

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/securepass/internal/common"
)

const (
	// MinLength and MaxLength bound the allowed password length.
	MinLength = 8
	MaxLength = 128

	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"
	symbols   = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// Policy is the fixed, enumerable set of generation toggles. Lowercase
// letters are always part of the alphabet; the remaining classes are opt-in.
type Policy struct {
	Length    int
	Uppercase bool
	Digits    bool
	Symbols   bool
}

// DefaultPolicy matches the product default: 16 characters, all classes on.
func DefaultPolicy() Policy {
	return Policy{Length: 16, Uppercase: true, Digits: true, Symbols: true}
}

// Generate returns a random password of exactly p.Length characters drawn
// from crypto/rand. The output always contains at least one lowercase letter
// and at least one character from each enabled class; the guaranteed
// characters are placed at random positions via a Fisher-Yates shuffle so
// their location leaks nothing.
//
// Fails with ErrInvalidLength if p.Length is outside [MinLength, MaxLength].
func Generate(p Policy) (string, error) {
	if p.Length < MinLength || p.Length > MaxLength {
		return "", fmt.Errorf("%w: length must be between %d and %d", common.ErrInvalidLength, MinLength, MaxLength)
	}

	alphabet := lowercase
	required := []string{lowercase}

	if p.Uppercase {
		alphabet += uppercase
		required = append(required, uppercase)
	}
	if p.Digits {
		alphabet += digits
		required = append(required, digits)
	}
	if p.Symbols {
		alphabet += symbols
		required = append(required, symbols)
	}

	out := make([]byte, 0, p.Length)
	for _, class := range required {
		c, err := pick(class)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	for len(out) < p.Length {
		c, err := pick(alphabet)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	if err := shuffle(out); err != nil {
		return "", err
	}

	return string(out), nil
}

// pick returns one uniformly random character from set.
func pick(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[n.Int64()], nil
}

// shuffle performs an in-place Fisher-Yates shuffle using crypto/rand.
func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		j := n.Int64()
		b[i], b[j] = b[j], b[i]
	}
	return nil
}
