/*
Package adminsdk provides a client for the user registration REST API that
backs the userdesk console.

# Overview

The API is a plain CRUD surface over users, roles and departments. All
operations hang off a single Client; there is no token handshake. The login
endpoint simply verifies credentials and returns the user document, and the
caller is responsible for remembering who is signed in.

	client := adminsdk.NewClient("http://localhost:5000")

	// Verify credentials
	user, err := client.Login(ctx, "ada@example.org", "S3cret!pw")

	// Fetch the canonical collections
	users, err := client.ListUsers(ctx)
	roles, err := client.ListRoles(ctx)

	// Mutations
	err = client.UpdateUser(ctx, update)
	err = client.DeleteUser(ctx, userID)

# Errors

Failed requests return a *APIError carrying the HTTP status and the server's
message verbatim when one is present. Transport-level failures wrap
ErrConnection so callers can show a generic connectivity message instead of
Go's transport errors.

UpdateUser treats the server's "no changes made" rejection as the benign
no-op it is and reports it as ErrNoEffectiveChange; callers should treat
that as success.

# Endpoint paths

Paths are fixed by the backend and preserved verbatim:

	POST   /api/users/create
	POST   /api/users/login
	GET    /api/users/get/all
	GET    /api/users/get/by-id
	PUT    /api/users/update
	DELETE /api/users/delete
	GET    /api/get/roles
	POST   /api/create/role
	PUT    /api/update/role/:id
	DELETE /api/delete/role/:id
	POST   /api/create/department
*/
package adminsdk
