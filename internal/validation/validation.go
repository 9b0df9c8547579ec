// Package validation holds the format checks shared by signup, login and
// the password-reset flow. Everything here is a pure function over strings.
package validation

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

const (
	maxEmailLen  = 254
	maxLocalLen  = 64
	maxDomainLen = 255
)

var (
	emailRe    = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	usernameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{2,19}$`)
	otpRe      = regexp.MustCompile(`^[0-9]{6}$`)
)

// Throwaway inboxes we refuse to register.
var disposableDomains = map[string]struct{}{
	"mailinator.com":    {},
	"tempmail.com":      {},
	"10minutemail.com":  {},
	"guerrillamail.com": {},
	"throwaway.email":   {},
	"yopmail.com":       {},
}

// NormalizeEmail trims and lowercases an address. Run it before every
// email comparison or lookup so uniqueness stays case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail reports whether email (already normalized) is a usable
// address: local@domain shape, RFC length limits, not a disposable domain.
func IsValidEmail(email string) bool {
	if email == "" || len(email) > maxEmailLen {
		return false
	}
	if !emailRe.MatchString(email) {
		return false
	}
	at := strings.LastIndex(email, "@")
	local, domain := email[:at], email[at+1:]
	if len(local) > maxLocalLen || len(domain) > maxDomainLen {
		return false
	}
	if _, banned := disposableDomains[domain]; banned {
		return false
	}
	return true
}

// IsValidUsername: 3-20 characters, starts with a letter, the rest
// letters, digits or underscore.
func IsValidUsername(username string) bool {
	return usernameRe.MatchString(username)
}

// IsValidPassword: at least 8 characters with an uppercase letter, a
// lowercase letter and a digit.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return upper && lower && digit
}

// IsValidOTP: exactly six decimal digits.
func IsValidOTP(otp string) bool {
	return otpRe.MatchString(otp)
}

var sanitizer = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// Sanitize trims the input and escapes the characters that matter for
// HTML injection. The replacement entities contain no characters from the
// escape set, so a single pass is enough.
func Sanitize(s string) string {
	return sanitizer.Replace(strings.TrimSpace(s))
}

// GenerateOTP returns a uniformly random six-digit code in
// [100000, 999999].
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing means the platform source is broken.
		panic(err)
	}
	return strconv.FormatInt(n.Int64()+100000, 10)
}
