package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/harborcrest/userdesk/pkg/permset"
)

// RoleStatusActive and RoleStatusInactive are the server-side role states.
// Deleting a role marks it inactive rather than removing the document; the
// list endpoint only returns active roles.
const (
	RoleStatusActive   = "active"
	RoleStatusInactive = "inactive"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// DeriveDisplayName computes a role's display name from its free-text name:
// trimmed, lowercased, whitespace runs replaced with underscores. The display
// name is a pure function of the role name and never edited independently.
func DeriveDisplayName(roleName string) string {
	return strings.ToLower(whitespaceRuns.ReplaceAllString(strings.TrimSpace(roleName), "_"))
}

// RoleRecord is the console's view of a role.
type RoleRecord struct {
	ID          string
	RoleName    string
	DisplayName string // derived from RoleName
	Permissions []*permset.Map
	Status      string
	CreatedBy   string
	UpdatedBy   string
	CreatedOn   time.Time
	UpdatedOn   time.Time
}

// RecordID implements list.Record.
func (r RoleRecord) RecordID() string { return r.ID }

// RoleDraft holds the editable fields of a role while it is being edited.
// DisplayName tracks RoleName and is not written directly.
type RoleDraft struct {
	RoleName    string
	DisplayName string
	Permissions []*permset.Map
}

// DraftFromRole seeds an edit draft, deep-copying the permission maps so
// edits never touch the canonical record.
func DraftFromRole(r RoleRecord) RoleDraft {
	perms := make([]*permset.Map, len(r.Permissions))
	for i, p := range r.Permissions {
		perms[i] = p.Clone()
	}
	return RoleDraft{
		RoleName:    r.RoleName,
		DisplayName: r.DisplayName,
		Permissions: perms,
	}
}

// SetRoleName updates the role name and recomputes the display name.
func (d *RoleDraft) SetRoleName(name string) {
	d.RoleName = name
	d.DisplayName = DeriveDisplayName(name)
}
