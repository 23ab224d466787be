package domain

import "time"

// Gender is the fixed gender choice set from the registration form.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders lists the accepted values in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// ValidGender reports whether s is one of the accepted gender values.
func ValidGender(s string) bool {
	for _, g := range Genders {
		if string(g) == s {
			return true
		}
	}
	return false
}

// Countries is the fixed country choice set offered by the registration and
// edit forms. Order matches the form.
var Countries = []string{
	"India",
	"United States",
	"United Kingdom",
	"Canada",
	"Australia",
	"Germany",
	"France",
	"Italy",
	"Spain",
	"Brazil",
	"China",
	"Japan",
	"Russia",
	"South Africa",
	"Singapore",
	"New Zealand",
	"Netherlands",
	"Mexico",
	"UAE",
	"Others",
}

// ValidCountry reports whether s is one of the accepted country values.
func ValidCountry(s string) bool {
	for _, c := range Countries {
		if c == s {
			return true
		}
	}
	return false
}

// UserRecord is the console's view of a registered user. ID and RegisteredOn
// are server-assigned; Email is immutable after creation.
type UserRecord struct {
	ID           string
	FullName     string
	Email        string
	Phone        string
	DOB          string // calendar date, 2006-01-02
	Role         string // role display name reference
	Gender       string
	Country      string
	Address      string
	Bio          string
	RegisteredOn time.Time
}

// RecordID implements list.Record.
func (u UserRecord) RecordID() string { return u.ID }

// UserDraft holds the editable field subset of a UserRecord while it is
// being edited. Server-only fields (ID, Email, RegisteredOn) are excluded;
// the record they belong to is addressed separately.
type UserDraft struct {
	FullName string
	Phone    string
	DOB      string
	Role     string
	Gender   string
	Country  string
	Address  string
	Bio      string
}

// DraftFromUser seeds an edit draft from a canonical record.
func DraftFromUser(u UserRecord) UserDraft {
	return UserDraft{
		FullName: u.FullName,
		Phone:    u.Phone,
		DOB:      u.DOB,
		Role:     u.Role,
		Gender:   u.Gender,
		Country:  u.Country,
		Address:  u.Address,
		Bio:      u.Bio,
	}
}

// UserFieldLabels maps draft field keys to the labels used in operator-facing
// messages, in required-first display order.
var UserFieldLabels = map[string]string{
	"fullName": "Full Name",
	"phone":    "Phone",
	"dob":      "Date of Birth",
	"role":     "Role",
	"gender":   "Gender",
	"country":  "Country",
	"address":  "Address",
	"bio":      "Bio",
}

// RequiredUserFields is the required-field set for user edits, in the order
// missing fields are reported.
var RequiredUserFields = []string{"fullName", "phone", "dob", "role", "gender", "country"}

// Field returns the draft value for a field key, and whether the key is known.
func (d UserDraft) Field(key string) (string, bool) {
	switch key {
	case "fullName":
		return d.FullName, true
	case "phone":
		return d.Phone, true
	case "dob":
		return d.DOB, true
	case "role":
		return d.Role, true
	case "gender":
		return d.Gender, true
	case "country":
		return d.Country, true
	case "address":
		return d.Address, true
	case "bio":
		return d.Bio, true
	}
	return "", false
}

// SetField writes a draft field by key, and reports whether the key is known.
func (d *UserDraft) SetField(key, value string) bool {
	switch key {
	case "fullName":
		d.FullName = value
	case "phone":
		d.Phone = value
	case "dob":
		d.DOB = value
	case "role":
		d.Role = value
	case "gender":
		d.Gender = value
	case "country":
		d.Country = value
	case "address":
		d.Address = value
	case "bio":
		d.Bio = value
	default:
		return false
	}
	return true
}
