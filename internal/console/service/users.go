package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/harborcrest/userdesk/internal/console/domain"
	"github.com/harborcrest/userdesk/internal/console/editor"
	"github.com/harborcrest/userdesk/internal/console/list"
	"github.com/harborcrest/userdesk/pkg/adminsdk"
	"github.com/harborcrest/userdesk/pkg/fieldval"
	"github.com/harborcrest/userdesk/pkg/slogx"
)

// UserService owns the user list, the user edit drafts, and the pipelines
// that promote drafts into API calls.
type UserService struct {
	SDK    *adminsdk.Client
	Users  *list.Synced[domain.UserRecord]
	Editor *editor.Editor[domain.UserDraft]

	actions *latch
}

// NewUserService wires the user list and draft editor. singleRowEdit keeps at
// most one user in edit mode at a time.
func NewUserService(sdk *adminsdk.Client, singleRowEdit bool) *UserService {
	return &UserService{
		SDK:   sdk,
		Users: &list.Synced[domain.UserRecord]{},
		Editor: editor.New[domain.UserDraft](editor.Config{
			SingleRowEdit: singleRowEdit,
			Validators: map[string]editor.Validator{
				"phone": fieldval.Phone,
				"dob":   fieldval.DateOfBirth,
			},
			Normalizers: map[string]editor.Normalizer{
				"phone": fieldval.NormalizePhone,
			},
		}, (*domain.UserDraft).SetField),
		actions: newLatch(),
	}
}

func mapUser(u adminsdk.User) domain.UserRecord {
	return domain.UserRecord{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		Phone:        u.Phone,
		DOB:          u.DOB,
		Role:         u.Role,
		Gender:       u.Gender,
		Country:      u.Country,
		Address:      u.Address,
		Bio:          u.Bio,
		RegisteredOn: adminsdk.ParseTimestamp(u.RegisteredOn),
	}
}

// Refresh replaces the local user list with the server's view. On failure the
// current list stays as-is.
func (s *UserService) Refresh(ctx context.Context) error {
	return s.Users.Refresh(ctx, func(ctx context.Context) ([]domain.UserRecord, error) {
		users, err := s.SDK.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		records := make([]domain.UserRecord, len(users))
		for i, u := range users {
			records[i] = mapUser(u)
		}
		return records, nil
	})
}

// Show fetches one user fresh from the server, bypassing the local list.
func (s *UserService) Show(ctx context.Context, id string) (domain.UserRecord, error) {
	user, err := s.SDK.GetUserByID(ctx, id)
	if err != nil {
		return domain.UserRecord{}, err
	}
	return mapUser(*user), nil
}

// BeginEdit opens a draft for a listed user.
func (s *UserService) BeginEdit(id string) error {
	record, ok := s.Users.Get(id)
	if !ok {
		return ErrNotInList
	}
	s.Editor.Begin(id, domain.DraftFromUser(record))
	return nil
}

// SetField writes one draft field, running its inline validator.
func (s *UserService) SetField(id, key, value string) error {
	return s.Editor.SetField(id, key, value)
}

// CancelEdit discards the draft; the listed record is untouched.
func (s *UserService) CancelEdit(id string) bool {
	return s.Editor.Cancel(id)
}

// SubmitEdit validates the draft and, only if every check passes, sends the
// update. Validation failures never produce a request.
func (s *UserService) SubmitEdit(ctx context.Context, id string) error {
	if !s.actions.acquire("user.submit:" + id) {
		return ErrBusy
	}
	defer s.actions.release("user.submit:" + id)

	log := slogx.FromContext(ctx)

	draft, ok := s.Editor.Draft(id)
	if !ok {
		return editor.ErrNotEditing
	}

	// 1. Required fields, all reported at once.
	fields := make(map[string]string)
	for _, key := range domain.RequiredUserFields {
		value, _ := draft.Field(key)
		if strings.TrimSpace(value) == "" {
			fields[key] = domain.UserFieldLabels[key] + " is required"
		}
	}

	// 2. Format checks on the fields that are present.
	if _, missing := fields["dob"]; !missing {
		if err := fieldval.DateOfBirth(draft.DOB); err != nil {
			fields["dob"] = err.Error()
		}
	}
	if _, missing := fields["phone"]; !missing {
		if err := fieldval.Phone(draft.Phone); err != nil {
			fields["phone"] = err.Error()
		}
	}
	if _, missing := fields["gender"]; !missing && !domain.ValidGender(draft.Gender) {
		fields["gender"] = "Gender must be one of the listed values"
	}
	if _, missing := fields["country"]; !missing && !domain.ValidCountry(draft.Country) {
		fields["country"] = "Country must be one of the listed values"
	}

	if len(fields) > 0 {
		log.Warn("user edit rejected locally",
			slog.String("user_id", id),
			slog.Int("field_errors", len(fields)),
		)
		return &ValidationError{Fields: fields}
	}

	// 3. Send the full editable field set; optional fields go as empty
	// strings so clearing them sticks.
	err := s.SDK.UpdateUser(ctx, adminsdk.UserUpdate{
		ID:       id,
		FullName: draft.FullName,
		Phone:    draft.Phone,
		DOB:      draft.DOB,
		Role:     draft.Role,
		Address:  draft.Address,
		Bio:      draft.Bio,
		Gender:   draft.Gender,
		Country:  draft.Country,
	})
	switch {
	case err == nil:
		// 4. Confirmed change: resync from the server, then leave edit mode.
		if refreshErr := s.Refresh(ctx); refreshErr != nil {
			log.Error("user list refresh after update failed",
				slog.String("user_id", id),
				slog.Any("error", refreshErr),
			)
		}
		s.Editor.Cancel(id)
		log.Info("user updated", slog.String("user_id", id))
		return nil

	case adminsdk.IsBenignNoOp(err):
		// Nothing actually changed server-side; drop the draft quietly.
		s.Editor.Cancel(id)
		log.Debug("user update was a no-op", slog.String("user_id", id))
		return nil

	default:
		// Rejection: stay in edit mode so nothing typed is lost.
		log.Warn("user update rejected",
			slog.String("user_id", id),
			slog.Any("error", err),
		)
		return err
	}
}

// Delete removes a user after the confirm callback approves it. The local
// list entry goes away only once the server has confirmed the delete.
func (s *UserService) Delete(ctx context.Context, id string, confirm func(domain.UserRecord) bool) error {
	if !s.actions.acquire("user.delete:" + id) {
		return ErrBusy
	}
	defer s.actions.release("user.delete:" + id)

	log := slogx.FromContext(ctx)

	record, ok := s.Users.Get(id)
	if !ok {
		return ErrNotInList
	}

	if !confirm(record) {
		return ErrNotConfirmed
	}

	if err := s.SDK.DeleteUser(ctx, id); err != nil {
		log.Warn("user delete rejected",
			slog.String("user_id", id),
			slog.Any("error", err),
		)
		return err
	}

	s.Users.RemoveLocal(id)
	s.Editor.Cancel(id)
	log.Info("user deleted", slog.String("user_id", id), slog.String("full_name", record.FullName))
	return nil
}

// Register validates a registration form and submits it. Returns the
// server's confirmation message.
func (s *UserService) Register(ctx context.Context, reg adminsdk.Registration) (string, error) {
	if !s.actions.acquire("user.register") {
		return "", ErrBusy
	}
	defer s.actions.release("user.register")

	log := slogx.FromContext(ctx)

	reg.Phone = fieldval.NormalizePhone(reg.Phone)

	// 1. Required fields.
	fields := make(map[string]string)
	required := []struct{ key, label, value string }{
		{"fullName", "Full Name", reg.FullName},
		{"email", "Email", reg.Email},
		{"phone", "Phone", reg.Phone},
		{"dob", "Date of Birth", reg.DOB},
		{"password", "Password", reg.Password},
		{"confirmPassword", "Confirm Password", reg.ConfirmPassword},
		{"gender", "Gender", reg.Gender},
		{"country", "Country", reg.Country},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			fields[f.key] = f.label + " is required"
		}
	}

	// 2. Format and strength checks.
	if _, missing := fields["email"]; !missing {
		if err := fieldval.Email(reg.Email); err != nil {
			fields["email"] = err.Error()
		}
	}
	if _, missing := fields["phone"]; !missing {
		if err := fieldval.Phone(reg.Phone); err != nil {
			fields["phone"] = err.Error()
		}
	}
	if _, missing := fields["dob"]; !missing {
		if err := fieldval.DateOfBirth(reg.DOB); err != nil {
			fields["dob"] = err.Error()
		}
	}
	if _, missing := fields["password"]; !missing {
		if err := fieldval.Password(reg.Password); err != nil {
			fields["password"] = err.Error()
		}
	}
	if _, ok := fields["confirmPassword"]; !ok && reg.Password != reg.ConfirmPassword {
		fields["confirmPassword"] = "Passwords do not match"
	}
	if _, missing := fields["gender"]; !missing && !domain.ValidGender(reg.Gender) {
		fields["gender"] = "Gender must be one of the listed values"
	}
	if _, missing := fields["country"]; !missing && !domain.ValidCountry(reg.Country) {
		fields["country"] = "Country must be one of the listed values"
	}
	if !reg.Agree {
		fields["agree"] = "You must accept the terms to register"
	}

	if len(fields) > 0 {
		log.Warn("registration rejected locally", slog.Int("field_errors", len(fields)))
		return "", &ValidationError{Fields: fields}
	}

	// 3. The endpoint takes a batch; the console registers one at a time.
	message, err := s.SDK.Register(ctx, []adminsdk.Registration{reg})
	if err != nil {
		log.Warn("registration rejected",
			slog.String("email", reg.Email),
			slog.Any("error", err),
		)
		return "", err
	}

	log.Info("user registered", slog.String("email", reg.Email))
	return message, nil
}
