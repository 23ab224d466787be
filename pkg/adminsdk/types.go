package adminsdk

import (
	"time"

	"github.com/harborcrest/userdesk/pkg/permset"
)

// TimestampLayout is how the backend formats server-assigned timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// ParseTimestamp parses a server timestamp, returning the zero time for an
// empty or malformed value. Old documents ship without some timestamps.
func ParseTimestamp(s string) time.Time {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ============================================================================
// User Types
// ============================================================================

// User is the backend's user document.
type User struct {
	ID           string `json:"_id"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	DOB          string `json:"dob"`
	Role         string `json:"role"`
	Address      string `json:"address"`
	Bio          string `json:"bio"`
	Gender       string `json:"gender"`
	Country      string `json:"country"`
	RegisteredOn string `json:"registered_on"`
}

// ListUsersResponse is the GET /api/users/get/all payload.
type ListUsersResponse struct {
	Users []User `json:"users"`
}

// Registration is one element of the POST /api/users/create request body.
// The endpoint expects an array of these.
type Registration struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	DOB             string `json:"dob"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role,omitempty"`
	Address         string `json:"address"`
	Bio             string `json:"bio"`
	Gender          string `json:"gender"`
	Country         string `json:"country"`
	Agree           bool   `json:"agree"`
}

// UserUpdate is the PUT /api/users/update request body: the record id plus
// the full editable field set. Optional fields are sent as empty strings
// rather than omitted, so clearing a field sticks.
type UserUpdate struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	DOB      string `json:"dob"`
	Role     string `json:"role"`
	Address  string `json:"address"`
	Bio      string `json:"bio"`
	Gender   string `json:"gender"`
	Country  string `json:"country"`
}

// loginRequest is the POST /api/users/login body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the login envelope; Data is only present on success.
type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *User  `json:"data"`
}

// deleteUserRequest is the DELETE /api/users/delete body.
type deleteUserRequest struct {
	ID string `json:"_id"`
}

// ============================================================================
// Role Types
// ============================================================================

// Role is the backend's role document. Permissions is an ordered sequence of
// permission maps; in practice a single map per role.
type Role struct {
	ID          string         `json:"_id"`
	RoleName    string         `json:"role_name"`
	DisplayName string         `json:"display_name"`
	Permissions []*permset.Map `json:"permissions"`
	Status      string         `json:"status"`
	CreatedBy   string         `json:"created_by"`
	UpdatedBy   string         `json:"updated_by"`
	CreatedOn   string         `json:"created_on"`
	UpdatedOn   string         `json:"updated_on"`
}

// ListRolesResponse is the GET /api/get/roles payload (active roles only).
type ListRolesResponse struct {
	Roles []Role `json:"roles"`
}

// RoleCreate is the POST /api/create/role request body. The backend requires
// a non-empty permissions array and recomputes display_name server-side with
// the same derivation the console applies.
type RoleCreate struct {
	RoleName    string         `json:"role_name"`
	DisplayName string         `json:"display_name"`
	Permissions []*permset.Map `json:"permissions"`
	CreatedBy   string         `json:"created_by"`
	UpdatedBy   string         `json:"updated_by"`
}

// RoleUpdate is the PUT /api/update/role/:id request body.
type RoleUpdate struct {
	RoleName    string         `json:"role_name"`
	DisplayName string         `json:"display_name"`
	Permissions []*permset.Map `json:"permissions"`
	UpdatedBy   string         `json:"updated_by"`
}

// MessageResponse is the {"message": ...} envelope role and department
// endpoints answer with.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Department Types
// ============================================================================

// DepartmentCreate is the POST /api/create/department request body.
type DepartmentCreate struct {
	DepartmentName string `json:"department_name"`
	DisplayName    string `json:"display_name"`
	CreatedBy      string `json:"created_by"`
	UpdatedBy      string `json:"updated_by"`
}
