package adminsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListRoles fetches all active roles in server order.
func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/get/roles", nil)
	if err != nil {
		return nil, err
	}

	var listResp ListRolesResponse
	if err := decodeJSON(resp, &listResp, http.StatusOK); err != nil {
		return nil, err
	}

	return listResp.Roles, nil
}

// CreateRole creates a role. A duplicate display name comes back as a 409
// *APIError carrying the server's message.
func (c *Client) CreateRole(ctx context.Context, create RoleCreate) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/create/role", create)
	if err != nil {
		return err
	}

	var msg MessageResponse
	return decodeJSON(resp, &msg, http.StatusCreated)
}

// UpdateRole updates a role's name, display name, permissions and the
// updated_by stamp.
func (c *Client) UpdateRole(ctx context.Context, id string, update RoleUpdate) error {
	resp, err := c.doJSON(ctx, http.MethodPut, "/api/update/role/"+url.PathEscape(id), update)
	if err != nil {
		return err
	}

	var msg MessageResponse
	return decodeJSON(resp, &msg, http.StatusOK)
}

// DeleteRole deletes a role. Server-side this is a soft delete (the role is
// marked inactive and disappears from ListRoles).
func (c *Client) DeleteRole(ctx context.Context, id string) error {
	resp, err := c.doJSON(ctx, http.MethodDelete, "/api/delete/role/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}

	var msg MessageResponse
	return decodeJSON(resp, &msg, http.StatusOK)
}
