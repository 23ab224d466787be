package fieldval_test

import (
	"testing"
	"time"

	"github.com/harborcrest/userdesk/pkg/fieldval"
	"github.com/stretchr/testify/require"
)

func TestPhone(t *testing.T) {
	t.Parallel()

	valid := []string{"0123456789", "9999999999"}
	for _, p := range valid {
		require.NoError(t, fieldval.Phone(p), "phone %q", p)
	}

	invalid := []string{
		"",
		"123456789",   // nine digits
		"12345678901", // eleven digits
		"123456789a",  // letter
		"12345 6789",  // space
		"+1234567890", // plus prefix
		"12345678.9",  // punctuation
		"١٢٣٤٥٦٧٨٩٠",  // non-ASCII digits
	}
	for _, p := range invalid {
		require.ErrorIs(t, fieldval.Phone(p), fieldval.ErrPhoneFormat, "phone %q", p)
	}
}

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0412345678", fieldval.NormalizePhone("(04) 1234-5678"))
	require.Equal(t, "1234567890", fieldval.NormalizePhone("1234567890123"))
	require.Equal(t, "", fieldval.NormalizePhone("abc"))
}

func TestEmail(t *testing.T) {
	t.Parallel()

	require.NoError(t, fieldval.Email("alice@example.org"))
	require.NoError(t, fieldval.Email("a.b+tag@sub.domain.co"))

	require.ErrorIs(t, fieldval.Email("no-at-sign"), fieldval.ErrEmailFormat)
	require.ErrorIs(t, fieldval.Email("a b@example.com"), fieldval.ErrEmailFormat)
	require.ErrorIs(t, fieldval.Email("alice@nodot"), fieldval.ErrEmailFormat)

	// Placeholder blocklist, case-insensitive.
	require.ErrorIs(t, fieldval.Email("test@example.com"), fieldval.ErrEmailRegistered)
	require.ErrorIs(t, fieldval.Email("User@Gmail.com"), fieldval.ErrEmailRegistered)
}

func TestPassword(t *testing.T) {
	t.Parallel()

	require.NoError(t, fieldval.Password("Abcdef!"))
	require.NoError(t, fieldval.Password("sup3r-Secret"))

	require.ErrorIs(t, fieldval.Password("Ab!def"), fieldval.ErrPasswordWeak)   // too short
	require.ErrorIs(t, fieldval.Password("abcdefg!"), fieldval.ErrPasswordWeak) // no upper
	require.ErrorIs(t, fieldval.Password("ABCDEFG!"), fieldval.ErrPasswordWeak) // no lower
	require.ErrorIs(t, fieldval.Password("Abcdefgh"), fieldval.ErrPasswordWeak) // no symbol
	require.ErrorIs(t, fieldval.Password("Abcdefg1"), fieldval.ErrPasswordWeak) // digit is not a symbol
}

func TestDateOfBirthAt(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 15, 13, 45, 0, 0, time.UTC)

	require.NoError(t, fieldval.DateOfBirthAt("1900-01-01", now))
	require.NoError(t, fieldval.DateOfBirthAt("1985-06-30", now))
	require.NoError(t, fieldval.DateOfBirthAt("2026-03-15", now)) // today

	require.ErrorIs(t, fieldval.DateOfBirthAt("1899-12-31", now), fieldval.ErrDateTooEarly)
	require.ErrorIs(t, fieldval.DateOfBirthAt("2026-03-16", now), fieldval.ErrDateInFuture) // tomorrow
	require.ErrorIs(t, fieldval.DateOfBirthAt("not-a-date", now), fieldval.ErrDateInvalid)
	require.ErrorIs(t, fieldval.DateOfBirthAt("2026-02-30", now), fieldval.ErrDateInvalid)
	require.ErrorIs(t, fieldval.DateOfBirthAt("", now), fieldval.ErrDateInvalid)
}
