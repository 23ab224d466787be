package adminsdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harborcrest/userdesk/pkg/adminsdk"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/users/login", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body.Password != "S3cret!pw" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"message": "Invalid credentials",
			})
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"_id":      "u1",
				"fullName": "Ada Lovelace",
				"email":    body.Email,
			},
		})
	}))
	defer srv.Close()

	client := adminsdk.NewClient(srv.URL)

	t.Run("success", func(t *testing.T) {
		user, err := client.Login(context.Background(), "ada@example.org", "S3cret!pw")
		require.NoError(t, err)
		require.Equal(t, "Ada Lovelace", user.FullName)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		_, err := client.Login(context.Background(), "ada@example.org", "wrong")
		var apiErr *adminsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.Status)
		require.Equal(t, "Invalid credentials", apiErr.Message)
	})
}

func TestRegister(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/create", r.URL.Path)

		var regs []adminsdk.Registration
		require.NoError(t, json.NewDecoder(r.Body).Decode(&regs))
		require.Len(t, regs, 1, "registration body must be an array")

		if regs[0].Email == "taken@example.org" {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte("Email 'taken@example.org' is already registered"))
			return
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("Registration successful"))
	}))
	defer srv.Close()

	client := adminsdk.NewClient(srv.URL)
	reg := adminsdk.Registration{FullName: "Ada", Email: "ada@example.org"}

	t.Run("success", func(t *testing.T) {
		msg, err := client.Register(context.Background(), []adminsdk.Registration{reg})
		require.NoError(t, err)
		require.Equal(t, "Registration successful", msg)
	})

	t.Run("duplicate is verbatim", func(t *testing.T) {
		dup := reg
		dup.Email = "taken@example.org"
		_, err := client.Register(context.Background(), []adminsdk.Registration{dup})

		var apiErr *adminsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.True(t, apiErr.IsConflict())
		require.Equal(t, "Email 'taken@example.org' is already registered", apiErr.Message)
	})
}

func TestListUsersPreservesServerOrder(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/get/all", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]any{
				{"_id": "u2", "fullName": "Grace"},
				{"_id": "u1", "fullName": "Ada"},
			},
		})
	}))
	defer srv.Close()

	users, err := adminsdk.NewClient(srv.URL).ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "u2", users[0].ID)
	require.Equal(t, "u1", users[1].ID)
}

func TestGetUserByID(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/get/by-id", r.URL.Path)
		if r.URL.Query().Get("userId") != "u1" {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"message": "User not found"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"_id": "u1", "fullName": "Ada Lovelace"})
	}))
	defer srv.Close()

	client := adminsdk.NewClient(srv.URL)

	user, err := client.GetUserByID(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", user.FullName)

	_, err = client.GetUserByID(context.Background(), "ghost")
	var apiErr *adminsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Equal(t, "User not found", apiErr.Message)
}

func TestUpdateUser(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/users/update", r.URL.Path)

		var update adminsdk.UserUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&update))

		switch update.ID {
		case "same":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("No user found or no changes made"))
		case "missing":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("User ID (_id) is required"))
		default:
			_, _ = w.Write([]byte("User updated successfully"))
		}
	}))
	defer srv.Close()

	client := adminsdk.NewClient(srv.URL)

	t.Run("success", func(t *testing.T) {
		err := client.UpdateUser(context.Background(), adminsdk.UserUpdate{ID: "u1"})
		require.NoError(t, err)
	})

	t.Run("no changes is a benign no-op", func(t *testing.T) {
		err := client.UpdateUser(context.Background(), adminsdk.UserUpdate{ID: "same"})
		require.Error(t, err)
		require.True(t, adminsdk.IsBenignNoOp(err))
	})

	t.Run("other rejection is verbatim", func(t *testing.T) {
		err := client.UpdateUser(context.Background(), adminsdk.UserUpdate{ID: "missing"})
		require.False(t, adminsdk.IsBenignNoOp(err))

		var apiErr *adminsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "User ID (_id) is required", apiErr.Message)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/users/delete", r.URL.Path)

		var body struct {
			ID string `json:"_id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body.ID != "u1" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("User not found"))
			return
		}
		_, _ = w.Write([]byte("User deleted successfully"))
	}))
	defer srv.Close()

	client := adminsdk.NewClient(srv.URL)

	require.NoError(t, client.DeleteUser(context.Background(), "u1"))

	err := client.DeleteUser(context.Background(), "nope")
	var apiErr *adminsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestRoles(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/get/roles":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"roles": []map[string]any{
					{
						"_id":          "r1",
						"role_name":    "Editor",
						"display_name": "editor",
						"permissions":  []map[string]bool{{"read": true}},
						"status":       "active",
					},
				},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/create/role":
			var create adminsdk.RoleCreate
			require.NoError(t, json.NewDecoder(r.Body).Decode(&create))
			if create.DisplayName == "editor" {
				w.WriteHeader(http.StatusConflict)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"message": "Role 'editor' already exists",
				})
				return
			}
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Role created successfully"})
		case r.Method == http.MethodPut && r.URL.Path == "/api/update/role/r1":
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Role updated successfully"})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/delete/role/r1":
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Role marked as inactive"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := adminsdk.NewClient(srv.URL)
	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		roles, err := client.ListRoles(ctx)
		require.NoError(t, err)
		require.Len(t, roles, 1)
		require.Equal(t, "Editor", roles[0].RoleName)
		require.Len(t, roles[0].Permissions, 1)

		v, ok := roles[0].Permissions[0].Get("read")
		require.True(t, ok)
		require.True(t, v)
	})

	t.Run("create duplicate", func(t *testing.T) {
		err := client.CreateRole(ctx, adminsdk.RoleCreate{DisplayName: "editor"})
		var apiErr *adminsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.True(t, apiErr.IsConflict())
		require.Equal(t, "Role 'editor' already exists", apiErr.Message)
	})

	t.Run("update", func(t *testing.T) {
		require.NoError(t, client.UpdateRole(ctx, "r1", adminsdk.RoleUpdate{RoleName: "Editor"}))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, client.DeleteRole(ctx, "r1"))
	})
}

func TestCreateDepartment(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/create/department", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Department created successfully"})
	}))
	defer srv.Close()

	err := adminsdk.NewClient(srv.URL).CreateDepartment(context.Background(), adminsdk.DepartmentCreate{
		DepartmentName: "Support",
		DisplayName:    "support",
	})
	require.NoError(t, err)
}

func TestTransportFailureIsConnectionError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // deliberately unreachable

	_, err := adminsdk.NewClient(srv.URL).ListUsers(context.Background())
	require.ErrorIs(t, err, adminsdk.ErrConnection)
}
