// Package health evaluates candidate passwords: local strength estimation
// and a breach-corpus lookup. Both operate on plaintext supplied explicitly
// by the user for checking, never on stored vault data, which this server
// only ever sees encrypted.
package health

import (
	"github.com/nbutton23/zxcvbn-go"
)

// Strength is the result of a local estimate. Score is 0 (trivial) through
// 4 (very strong), CrackTime is a human-readable guess at offline cracking
// time, Feedback carries improvement suggestions for weak passwords.
type Strength struct {
	Score     int      `json:"score"`
	Entropy   float64  `json:"entropy"`
	CrackTime string   `json:"crack_time"`
	Feedback  []string `json:"feedback,omitempty"`
}

// EstimateStrength runs the zxcvbn estimator over the candidate password.
// The extra inputs (email, site name) are penalized when they appear inside
// the password.
func EstimateStrength(password string, userInputs []string) Strength {
	m := zxcvbn.PasswordStrength(password, userInputs)

	s := Strength{
		Score:     m.Score,
		Entropy:   m.Entropy,
		CrackTime: m.CrackTimeDisplay,
	}

	if m.Score <= 2 {
		seen := make(map[string]bool)
		for _, seq := range m.MatchSequence {
			var hint string
			switch seq.Pattern {
			case "dictionary":
				hint = "avoid common words, names and known passwords"
			case "spatial":
				hint = "avoid keyboard patterns like qwerty or asdf"
			case "repeat":
				hint = "avoid repeated characters"
			case "sequence":
				hint = "avoid sequences like abc or 123"
			case "date":
				hint = "avoid dates and years"
			}
			if hint != "" && !seen[hint] {
				seen[hint] = true
				s.Feedback = append(s.Feedback, hint)
			}
		}
		if len(s.Feedback) == 0 {
			s.Feedback = append(s.Feedback, "use a longer password with more character variety")
		}
	}

	return s
}
