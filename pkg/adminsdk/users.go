package adminsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Register submits one or more registrations. The endpoint takes an array
// body even for a single user. Returns the server's confirmation text.
// Duplicate email or phone comes back as a 409 *APIError with the server's
// plain-text message.
func (c *Client) Register(ctx context.Context, regs []Registration) (string, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/users/create", regs)
	if err != nil {
		return "", err
	}

	return readText(resp, http.StatusCreated, http.StatusOK)
}

// Login verifies credentials and returns the matching user document.
// Invalid credentials come back as a 401 *APIError with the server message.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/users/login", loginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var loginResp loginResponse
	if err := decodeJSON(resp, &loginResp, http.StatusOK); err != nil {
		return nil, err
	}

	if !loginResp.Success || loginResp.Data == nil {
		return nil, &APIError{Status: http.StatusUnauthorized, Message: loginResp.Message}
	}

	return loginResp.Data, nil
}

// ListUsers fetches the full user collection in server order.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/users/get/all", nil)
	if err != nil {
		return nil, err
	}

	var listResp ListUsersResponse
	if err := decodeJSON(resp, &listResp, http.StatusOK); err != nil {
		return nil, err
	}

	return listResp.Users, nil
}

// GetUserByID fetches a single user via the query-parameter lookup.
func (c *Client) GetUserByID(ctx context.Context, id string) (*User, error) {
	path := "/api/users/get/by-id?userId=" + url.QueryEscape(id)
	resp, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateUser sends the full editable field set for one user. A server
// rejection whose body signals "no changes made" is reported as
// ErrNoEffectiveChange; callers should treat it as success.
func (c *Client) UpdateUser(ctx context.Context, update UserUpdate) error {
	resp, err := c.doJSON(ctx, http.MethodPut, "/api/users/update", update)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if noEffectiveChange(bodyBytes) {
		return fmt.Errorf("%w: %s", ErrNoEffectiveChange, bodyBytes)
	}

	return parseErrorResponse(resp.StatusCode, bodyBytes)
}

// DeleteUser removes a user. The caller is responsible for confirmation and
// for dropping the local copy only after this returns nil.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	resp, err := c.doJSON(ctx, http.MethodDelete, "/api/users/delete", deleteUserRequest{ID: id})
	if err != nil {
		return err
	}

	_, err = readText(resp, http.StatusOK)
	return err
}
