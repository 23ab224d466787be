// Package fieldval contains the pure field validators used by the console's
// registration and record-editing forms. Every validator takes the raw input
// string and returns nil or an error whose message is suitable for showing
// directly next to the field. Validators never touch UI or network state;
// callers decide whether a failure blocks submission or only annotates the
// field.
package fieldval

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"
)

const (
	// PhoneLength is the exact number of digits a phone number must have.
	PhoneLength = 10

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 7

	// MinBirthYear is the earliest accepted date-of-birth year.
	MinBirthYear = 1900

	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	nonDigits = regexp.MustCompile(`[^0-9]`)
)

// blockedEmails is an illustrative placeholder for addresses the backend
// would reject as duplicates. The server remains the source of truth for
// uniqueness; this only short-circuits the two known test addresses.
var blockedEmails = map[string]struct{}{
	"test@example.com": {},
	"user@gmail.com":   {},
}

var (
	ErrPhoneFormat     = errors.New("phone number must be exactly 10 digits")
	ErrEmailFormat     = errors.New("please enter a valid email address")
	ErrEmailRegistered = errors.New("this email is already registered")
	ErrPasswordWeak    = errors.New("password must be at least 7 characters with an uppercase letter, a lowercase letter, and a symbol")
	ErrDateInvalid     = errors.New("please enter a valid date of birth")
	ErrDateTooEarly    = errors.New("year must be 1900 or later")
	ErrDateInFuture    = errors.New("date of birth cannot be in the future")
)

// NormalizePhone strips every non-digit character and caps the result at
// PhoneLength digits. This mirrors the live typing filter: callers run it on
// every keystroke-equivalent edit before validating.
func NormalizePhone(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) > PhoneLength {
		digits = digits[:PhoneLength]
	}
	return digits
}

// Phone reports whether raw is exactly ten ASCII digits.
func Phone(raw string) error {
	if !phonePattern.MatchString(raw) {
		return ErrPhoneFormat
	}
	return nil
}

// Email checks the local@domain.tld shape and the placeholder blocklist.
func Email(raw string) error {
	if !emailPattern.MatchString(raw) {
		return ErrEmailFormat
	}
	if _, blocked := blockedEmails[strings.ToLower(raw)]; blocked {
		return ErrEmailRegistered
	}
	return nil
}

// Password enforces minimum strength: at least MinPasswordLength characters
// including one lowercase letter, one uppercase letter, and one character
// that is neither a letter nor a digit.
func Password(raw string) error {
	if len(raw) < MinPasswordLength {
		return ErrPasswordWeak
	}

	var lower, upper, symbol bool
	for _, r := range raw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			symbol = true
		}
	}

	if !lower || !upper || !symbol {
		return ErrPasswordWeak
	}
	return nil
}

// DateOfBirth validates a calendar date against the current day.
func DateOfBirth(raw string) error {
	return DateOfBirthAt(raw, time.Now())
}

// DateOfBirthAt is DateOfBirth with an explicit reference time. The date
// must parse, fall in year MinBirthYear or later, and not be after the
// reference day. A date equal to the reference day is accepted.
func DateOfBirthAt(raw string, now time.Time) error {
	dob, err := time.Parse(DateLayout, raw)
	if err != nil {
		return ErrDateInvalid
	}

	if dob.Year() < MinBirthYear {
		return ErrDateTooEarly
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if dob.After(today) {
		return ErrDateInFuture
	}
	return nil
}
