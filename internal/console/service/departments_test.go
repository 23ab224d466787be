package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harborcrest/userdesk/internal/console/service"
	"github.com/harborcrest/userdesk/pkg/adminsdk"
)

func TestCreateDepartment(t *testing.T) {
	t.Parallel()

	var sent adminsdk.DepartmentCreate
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/create/department", r.URL.Path)
		calls++
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "Department created successfully"})
	}))
	defer srv.Close()

	svc := service.NewDepartmentService(adminsdk.NewClient(srv.URL))
	svc.Operator = "Asha Verma"

	// Empty name never reaches the backend.
	err := svc.Create(context.Background(), "   ")
	_, ok := service.AsValidationError(err)
	require.True(t, ok)
	require.Zero(t, calls)

	require.NoError(t, svc.Create(context.Background(), " Quality  Assurance "))
	require.Equal(t, 1, calls)
	require.Equal(t, "Quality  Assurance", sent.DepartmentName)
	require.Equal(t, "quality_assurance", sent.DisplayName)
	require.Equal(t, "Asha Verma", sent.CreatedBy)
}
