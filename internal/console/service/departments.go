package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/harborcrest/userdesk/internal/console/domain"
	"github.com/harborcrest/userdesk/pkg/adminsdk"
	"github.com/harborcrest/userdesk/pkg/slogx"
)

// DepartmentService creates departments. The backend only exposes creation,
// so there is no list or edit surface.
type DepartmentService struct {
	SDK *adminsdk.Client

	// Operator is the full name stamped into created_by / updated_by.
	Operator string

	actions *latch
}

func NewDepartmentService(sdk *adminsdk.Client) *DepartmentService {
	return &DepartmentService{SDK: sdk, actions: newLatch()}
}

// Create validates and creates a department. The display name uses the same
// derivation as role names.
func (s *DepartmentService) Create(ctx context.Context, name string) error {
	if !s.actions.acquire("department.create") {
		return ErrBusy
	}
	defer s.actions.release("department.create")

	if strings.TrimSpace(name) == "" {
		return &ValidationError{Fields: map[string]string{
			"departmentName": "Department Name is required",
		}}
	}

	log := slogx.FromContext(ctx)

	err := s.SDK.CreateDepartment(ctx, adminsdk.DepartmentCreate{
		DepartmentName: strings.TrimSpace(name),
		DisplayName:    domain.DeriveDisplayName(name),
		CreatedBy:      s.Operator,
		UpdatedBy:      s.Operator,
	})
	if err != nil {
		log.Warn("department create rejected",
			slog.String("department_name", name),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("department created", slog.String("department_name", name))
	return nil
}
