package adminsdk

import (
	"context"
	"net/http"
)

// CreateDepartment creates a department. A duplicate display name comes back
// as a 409 *APIError. The backend exposes no list or update for departments.
func (c *Client) CreateDepartment(ctx context.Context, create DepartmentCreate) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/create/department", create)
	if err != nil {
		return err
	}

	var msg MessageResponse
	return decodeJSON(resp, &msg, http.StatusCreated)
}
