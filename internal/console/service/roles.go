package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/harborcrest/userdesk/internal/console/domain"
	"github.com/harborcrest/userdesk/internal/console/editor"
	"github.com/harborcrest/userdesk/internal/console/list"
	"github.com/harborcrest/userdesk/pkg/adminsdk"
	"github.com/harborcrest/userdesk/pkg/permset"
	"github.com/harborcrest/userdesk/pkg/slogx"
)

// RoleService owns the active-role list and the role edit drafts: name
// changes (display name tracks automatically) and permission key/value edits.
type RoleService struct {
	SDK    *adminsdk.Client
	Roles  *list.Synced[domain.RoleRecord]
	Editor *editor.Editor[domain.RoleDraft]

	// Operator is the full name stamped into created_by / updated_by.
	// Set from the active session.
	Operator string

	actions *latch
}

// NewRoleService wires the role list and draft editor.
func NewRoleService(sdk *adminsdk.Client, singleRowEdit bool) *RoleService {
	return &RoleService{
		SDK:   sdk,
		Roles: &list.Synced[domain.RoleRecord]{},
		Editor: editor.New[domain.RoleDraft](editor.Config{
			SingleRowEdit: singleRowEdit,
		}, setRoleDraftField),
		actions: newLatch(),
	}
}

// setRoleDraftField binds the one string-editable role field. Permission
// edits go through the structured draft operations instead.
func setRoleDraftField(d *domain.RoleDraft, key, value string) bool {
	if key != "roleName" {
		return false
	}
	d.SetRoleName(value)
	return true
}

func mapRole(r adminsdk.Role) domain.RoleRecord {
	// The backend stores the permissions array unvalidated, so a document
	// can carry null or empty entries. Drop them here so nothing downstream
	// has to care.
	return domain.RoleRecord{
		ID:          r.ID,
		RoleName:    r.RoleName,
		DisplayName: r.DisplayName,
		Permissions: compactPerms(r.Permissions),
		Status:      r.Status,
		CreatedBy:   r.CreatedBy,
		UpdatedBy:   r.UpdatedBy,
		CreatedOn:   adminsdk.ParseTimestamp(r.CreatedOn),
		UpdatedOn:   adminsdk.ParseTimestamp(r.UpdatedOn),
	}
}

// Refresh replaces the local role list with the server's active roles.
func (s *RoleService) Refresh(ctx context.Context) error {
	return s.Roles.Refresh(ctx, func(ctx context.Context) ([]domain.RoleRecord, error) {
		roles, err := s.SDK.ListRoles(ctx)
		if err != nil {
			return nil, err
		}
		records := make([]domain.RoleRecord, len(roles))
		for i, r := range roles {
			records[i] = mapRole(r)
		}
		return records, nil
	})
}

// BeginEdit opens a draft for a listed role, deep-copying its permissions.
func (s *RoleService) BeginEdit(id string) error {
	record, ok := s.Roles.Get(id)
	if !ok {
		return ErrNotInList
	}
	s.Editor.Begin(id, domain.DraftFromRole(record))
	return nil
}

// SetRoleName renames the draft role; the display name tracks it.
func (s *RoleService) SetRoleName(id, name string) error {
	return s.Editor.SetField(id, "roleName", name)
}

// AddPermission appends a new permission key with a boolean literal to the
// draft's first permission map.
func (s *RoleService) AddPermission(id, key, literal string) error {
	return s.Editor.UpdateDraft(id, func(d *domain.RoleDraft) error {
		value, err := permset.ParseBool(literal)
		if err != nil {
			return err
		}
		if len(d.Permissions) == 0 {
			d.Permissions = append(d.Permissions, permset.New())
		}
		return d.Permissions[0].Add(key, value)
	})
}

// RenamePermission renames a permission key in place, keeping its value and
// position.
func (s *RoleService) RenamePermission(id, oldKey, newKey string) error {
	return s.Editor.UpdateDraft(id, func(d *domain.RoleDraft) error {
		for _, p := range d.Permissions {
			if _, ok := p.Get(oldKey); ok {
				return p.Rename(oldKey, newKey)
			}
		}
		return permset.ErrUnknownKey
	})
}

// SetPermissionValue coerces literal ("true"/"false", any case) onto an
// existing permission key.
func (s *RoleService) SetPermissionValue(id, key, literal string) error {
	return s.Editor.UpdateDraft(id, func(d *domain.RoleDraft) error {
		for _, p := range d.Permissions {
			if _, ok := p.Get(key); ok {
				return p.Set(key, literal)
			}
		}
		return permset.ErrUnknownKey
	})
}

// RemovePermission drops a permission key from the draft.
func (s *RoleService) RemovePermission(id, key string) error {
	return s.Editor.UpdateDraft(id, func(d *domain.RoleDraft) error {
		for _, p := range d.Permissions {
			if _, ok := p.Get(key); ok {
				return p.Remove(key)
			}
		}
		return permset.ErrUnknownKey
	})
}

// CancelEdit discards the draft.
func (s *RoleService) CancelEdit(id string) bool {
	return s.Editor.Cancel(id)
}

// compactPerms drops empty permission maps so the payload never carries a
// meaningless {}.
func compactPerms(perms []*permset.Map) []*permset.Map {
	out := make([]*permset.Map, 0, len(perms))
	for _, p := range perms {
		if p != nil && p.Len() > 0 {
			out = append(out, p)
		}
	}
	return out
}

// validateRole checks the name and permission set shared by create and
// update.
func validateRole(roleName string, perms []*permset.Map) *ValidationError {
	fields := make(map[string]string)
	if strings.TrimSpace(roleName) == "" {
		fields["roleName"] = "Role Name is required"
	}
	total := 0
	for _, p := range perms {
		total += p.Len()
		for _, key := range p.Keys() {
			if strings.TrimSpace(key) == "" {
				fields["permissions"] = "Permission keys must not be empty"
			}
		}
	}
	if total == 0 {
		fields["permissions"] = "At least one permission is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Create validates and creates a role. The display name is derived locally
// from the name; the server applies the same derivation and rejects
// duplicates on it.
func (s *RoleService) Create(ctx context.Context, roleName string, perms *permset.Map) error {
	if !s.actions.acquire("role.create") {
		return ErrBusy
	}
	defer s.actions.release("role.create")

	log := slogx.FromContext(ctx)

	permissions := compactPerms([]*permset.Map{perms})
	if verr := validateRole(roleName, permissions); verr != nil {
		return verr
	}

	err := s.SDK.CreateRole(ctx, adminsdk.RoleCreate{
		RoleName:    strings.TrimSpace(roleName),
		DisplayName: domain.DeriveDisplayName(roleName),
		Permissions: permissions,
		CreatedBy:   s.Operator,
		UpdatedBy:   s.Operator,
	})
	if err != nil {
		log.Warn("role create rejected",
			slog.String("role_name", roleName),
			slog.Any("error", err),
		)
		return err
	}

	if refreshErr := s.Refresh(ctx); refreshErr != nil {
		log.Error("role list refresh after create failed", slog.Any("error", refreshErr))
	}
	log.Info("role created", slog.String("role_name", roleName))
	return nil
}

// SubmitEdit validates the draft and sends the update. Success refreshes the
// list and leaves edit mode; rejection keeps the draft so nothing is lost.
func (s *RoleService) SubmitEdit(ctx context.Context, id string) error {
	if !s.actions.acquire("role.submit:" + id) {
		return ErrBusy
	}
	defer s.actions.release("role.submit:" + id)

	log := slogx.FromContext(ctx)

	draft, ok := s.Editor.Draft(id)
	if !ok {
		return editor.ErrNotEditing
	}

	permissions := compactPerms(draft.Permissions)
	if verr := validateRole(draft.RoleName, permissions); verr != nil {
		return verr
	}

	err := s.SDK.UpdateRole(ctx, id, adminsdk.RoleUpdate{
		RoleName:    strings.TrimSpace(draft.RoleName),
		DisplayName: draft.DisplayName,
		Permissions: permissions,
		UpdatedBy:   s.Operator,
	})
	if err != nil {
		// Unlike user updates, the role route has no "no changes" rejection;
		// every error is a real one. Keep the draft so nothing typed is lost.
		log.Warn("role update rejected",
			slog.String("role_id", id),
			slog.Any("error", err),
		)
		return err
	}

	if refreshErr := s.Refresh(ctx); refreshErr != nil {
		log.Error("role list refresh after update failed",
			slog.String("role_id", id),
			slog.Any("error", refreshErr),
		)
	}
	s.Editor.Cancel(id)
	log.Info("role updated", slog.String("role_id", id))
	return nil
}

// Delete soft-deletes a role after the confirm callback approves it. The
// server marks it inactive; locally it leaves the list once confirmed.
func (s *RoleService) Delete(ctx context.Context, id string, confirm func(domain.RoleRecord) bool) error {
	if !s.actions.acquire("role.delete:" + id) {
		return ErrBusy
	}
	defer s.actions.release("role.delete:" + id)

	log := slogx.FromContext(ctx)

	record, ok := s.Roles.Get(id)
	if !ok {
		return ErrNotInList
	}

	if !confirm(record) {
		return ErrNotConfirmed
	}

	if err := s.SDK.DeleteRole(ctx, id); err != nil {
		log.Warn("role delete rejected",
			slog.String("role_id", id),
			slog.Any("error", err),
		)
		return err
	}

	s.Roles.RemoveLocal(id)
	s.Editor.Cancel(id)
	log.Info("role deactivated",
		slog.String("role_id", id),
		slog.String("role_name", record.RoleName),
	)
	return nil
}
