// Package command implements the interactive console: a line-oriented
// command loop over the session, user, role and department services.
package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/harborcrest/userdesk/internal/console/domain"
	"github.com/harborcrest/userdesk/internal/console/service"
	"github.com/harborcrest/userdesk/pkg/adminsdk"
	"github.com/harborcrest/userdesk/pkg/slogx"
)

// ErrQuit signals a clean exit out of the loop.
var ErrQuit = errors.New("quit")

// Runner owns the command loop. In and Out are injectable for tests.
type Runner struct {
	Sessions    *service.SessionService
	Users       *service.UserService
	Roles       *service.RoleService
	Departments *service.DepartmentService

	In  io.Reader
	Out io.Writer

	Logger *slog.Logger

	scanner *bufio.Scanner
}

// Run reads commands until EOF or quit. It restores a persisted session first
// so a restart within the TTL goes straight back to work.
func (r *Runner) Run(ctx context.Context) error {
	r.scanner = bufio.NewScanner(r.In)
	if r.Logger != nil {
		ctx = slogx.WithContext(ctx, r.Logger)
	}

	switch session, err := r.Sessions.Current(ctx); {
	case err == nil:
		fmt.Fprintf(r.Out, "Welcome back, %s.\n", session.FullName)
	case errors.Is(err, service.ErrSessionExpired):
		fmt.Fprintln(r.Out, "Your session has expired. Please login again.")
	case errors.Is(err, service.ErrNoSession):
		fmt.Fprintln(r.Out, "Please login to begin.")
	default:
		return err
	}

	for {
		fmt.Fprint(r.Out, "> ")
		line, ok := r.readLine()
		if !ok {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		if err := r.dispatch(ctx, line); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			r.report(err)
		}
	}
}

func (r *Runner) readLine() (string, bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	return r.scanner.Text(), true
}

// prompt prints a label and reads one line.
func (r *Runner) prompt(label string) string {
	fmt.Fprintf(r.Out, "%s: ", label)
	line, _ := r.readLine()
	return strings.TrimSpace(line)
}

// confirm asks a yes/no question, defaulting to no.
func (r *Runner) confirm(question string) bool {
	fmt.Fprintf(r.Out, "%s [y/N]: ", question)
	line, _ := r.readLine()
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// report prints an error the way the operator should see it: field-by-field
// for validation failures, the server's own message otherwise.
func (r *Runner) report(err error) {
	if verr, ok := service.AsValidationError(err); ok {
		for _, key := range sortedKeys(verr.Fields) {
			fmt.Fprintf(r.Out, "  %s: %s\n", key, verr.Fields[key])
		}
		return
	}
	fmt.Fprintf(r.Out, "Error: %v\n", err)
}

func (r *Runner) dispatch(ctx context.Context, line string) error {
	args := strings.Fields(line)
	cmd := args[0]
	args = args[1:]

	ctx = slogx.WithCommand(ctx, cmd)

	switch cmd {
	case "help":
		r.printHelp()
		return nil
	case "quit", "exit":
		return ErrQuit
	case "login":
		return r.cmdLogin(ctx)
	case "logout":
		return r.cmdLogout(ctx)
	}

	// Everything else needs an authenticated session.
	session, err := r.Sessions.Current(ctx)
	if err != nil {
		if errors.Is(err, service.ErrNoSession) || errors.Is(err, service.ErrSessionExpired) {
			fmt.Fprintln(r.Out, "Please login first.")
			return nil
		}
		return err
	}
	r.Roles.Operator = session.FullName
	r.Departments.Operator = session.FullName

	switch cmd {
	case "register":
		return r.cmdRegister(ctx)
	case "users":
		return r.cmdUsers(ctx)
	case "show":
		return r.cmdShow(ctx, args)
	case "edit":
		return r.cmdEdit(args)
	case "set":
		return r.cmdSet(args)
	case "save":
		return r.cmdSave(ctx)
	case "cancel":
		return r.cmdCancel()
	case "delete":
		return r.cmdDelete(ctx, args)
	case "roles":
		return r.cmdRoles(ctx)
	case "role":
		return r.cmdRole(ctx, args)
	case "dept":
		return r.cmdDept(ctx, args)
	}

	fmt.Fprintf(r.Out, "Unknown command %q. Try 'help'.\n", cmd)
	return nil
}

func (r *Runner) printHelp() {
	fmt.Fprint(r.Out, `Commands:
  login                         authenticate and start a session
  logout                        end the session
  register                      register a new user (interactive)
  users                         refresh and list users
  show <id>                     fetch and print one user
  edit <id>                     start editing a user
  set <field> <value...>        change a field on the open draft
  save                          validate and submit the open draft
  cancel                        discard the open draft
  delete <id>                   delete a user (asks for confirmation)
  roles                         refresh and list active roles
  role create                   create a role (interactive)
  role edit <id>                start editing a role
  role name <value...>          rename the role being edited
  role perm add <key> <bool>    add a permission to the draft
  role perm rename <old> <new>  rename a permission key
  role perm set <key> <bool>    set a permission value
  role perm rm <key>            remove a permission
  role save                     submit the role draft
  role cancel                   discard the role draft
  role delete <id>              deactivate a role (asks for confirmation)
  dept create <name...>         create a department
  help                          this text
  quit                          exit
`)
}

// ---------------------------------------------------------------------------
// Session commands
// ---------------------------------------------------------------------------

func (r *Runner) cmdLogin(ctx context.Context) error {
	email := r.prompt("Email")
	password := r.prompt("Password")

	session, err := r.Sessions.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.Out, "Logged in as %s.\n", session.FullName)
	return nil
}

func (r *Runner) cmdLogout(ctx context.Context) error {
	if err := r.Sessions.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(r.Out, "Logged out.")
	return nil
}

// ---------------------------------------------------------------------------
// User commands
// ---------------------------------------------------------------------------

func (r *Runner) cmdUsers(ctx context.Context) error {
	if err := r.Users.Refresh(ctx); err != nil {
		return err
	}
	r.printUsers()
	return nil
}

func (r *Runner) printUsers() {
	users := r.Users.Users.All()
	if len(users) == 0 {
		fmt.Fprintln(r.Out, "No users.")
		return
	}
	for _, u := range users {
		marker := " "
		if r.Users.Editor.Editing(u.ID) {
			marker = "*"
		}
		fmt.Fprintf(r.Out, "%s %-26s %-24s %-28s %-12s %s\n",
			marker, u.ID, u.FullName, u.Email, u.Phone, u.Role)
	}
}

func (r *Runner) cmdShow(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(r.Out, "Usage: show <id>")
		return nil
	}

	u, err := r.Users.Show(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(r.Out, "ID:          %s\n", u.ID)
	fmt.Fprintf(r.Out, "Full Name:   %s\n", u.FullName)
	fmt.Fprintf(r.Out, "Email:       %s\n", u.Email)
	fmt.Fprintf(r.Out, "Phone:       %s\n", u.Phone)
	fmt.Fprintf(r.Out, "DOB:         %s\n", u.DOB)
	fmt.Fprintf(r.Out, "Role:        %s\n", u.Role)
	fmt.Fprintf(r.Out, "Gender:      %s\n", u.Gender)
	fmt.Fprintf(r.Out, "Country:     %s\n", u.Country)
	fmt.Fprintf(r.Out, "Address:     %s\n", u.Address)
	fmt.Fprintf(r.Out, "Bio:         %s\n", u.Bio)
	if !u.RegisteredOn.IsZero() {
		fmt.Fprintf(r.Out, "Registered:  %s\n", u.RegisteredOn.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (r *Runner) cmdEdit(args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(r.Out, "Usage: edit <id>")
		return nil
	}
	if err := r.Users.BeginEdit(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(r.Out, "Editing %s. Fields: fullName phone dob role gender country address bio\n", args[0])
	return nil
}

// currentUserEdit resolves the single open user draft.
func (r *Runner) currentUserEdit() (string, bool) {
	id, ok := r.Users.Editor.EditingID()
	if !ok {
		fmt.Fprintln(r.Out, "No user is being edited. Use 'edit <id>' first.")
	}
	return id, ok
}

func (r *Runner) cmdSet(args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(r.Out, "Usage: set <field> <value...>")
		return nil
	}
	id, ok := r.currentUserEdit()
	if !ok {
		return nil
	}

	field := args[0]
	value := strings.Join(args[1:], " ")
	if err := r.Users.SetField(id, field, value); err != nil {
		return err
	}

	if errs := r.Users.Editor.Errors(id); len(errs) > 0 {
		if msg, found := errs[field]; found {
			fmt.Fprintf(r.Out, "  %s: %s\n", field, msg)
		}
	}
	return nil
}

func (r *Runner) cmdSave(ctx context.Context) error {
	id, ok := r.currentUserEdit()
	if !ok {
		return nil
	}
	if err := r.Users.SubmitEdit(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(r.Out, "Saved.")
	return nil
}

func (r *Runner) cmdCancel() error {
	id, ok := r.currentUserEdit()
	if !ok {
		return nil
	}
	r.Users.CancelEdit(id)
	fmt.Fprintln(r.Out, "Cancelled.")
	return nil
}

func (r *Runner) cmdDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(r.Out, "Usage: delete <id>")
		return nil
	}

	err := r.Users.Delete(ctx, args[0], func(u domain.UserRecord) bool {
		return r.confirm(fmt.Sprintf("Delete %s (%s)?", u.FullName, u.Email))
	})
	if errors.Is(err, service.ErrNotConfirmed) {
		fmt.Fprintln(r.Out, "Aborted.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(r.Out, "Deleted.")
	return nil
}

func (r *Runner) cmdRegister(ctx context.Context) error {
	reg := adminsdk.Registration{
		FullName:        r.prompt("Full Name"),
		Email:           r.prompt("Email"),
		Phone:           r.prompt("Phone"),
		DOB:             r.prompt("Date of Birth (YYYY-MM-DD)"),
		Password:        r.prompt("Password"),
		ConfirmPassword: r.prompt("Confirm Password"),
		Role:            r.prompt("Role (optional)"),
		Gender:          r.prompt("Gender (Male/Female/Other)"),
		Country:         r.prompt("Country"),
		Address:         r.prompt("Address (optional)"),
		Bio:             r.prompt("Bio (optional)"),
	}
	reg.Agree = r.confirm("Accept the terms?")

	msg, err := r.Users.Register(ctx, reg)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.Out, msg)
	return nil
}

// ---------------------------------------------------------------------------
// Role commands
// ---------------------------------------------------------------------------

func (r *Runner) cmdRoles(ctx context.Context) error {
	if err := r.Roles.Refresh(ctx); err != nil {
		return err
	}

	roles := r.Roles.Roles.All()
	if len(roles) == 0 {
		fmt.Fprintln(r.Out, "No active roles.")
		return nil
	}
	for _, role := range roles {
		marker := " "
		if r.Roles.Editor.Editing(role.ID) {
			marker = "*"
		}
		fmt.Fprintf(r.Out, "%s %-26s %-24s %s\n", marker, role.ID, role.RoleName, formatPermissions(role.Permissions))
	}
	return nil
}

func (r *Runner) cmdRole(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(r.Out, "Usage: role <create|edit|name|perm|save|cancel|delete> ...")
		return nil
	}

	sub := args[0]
	args = args[1:]

	switch sub {
	case "create":
		return r.cmdRoleCreate(ctx)
	case "edit":
		if len(args) != 1 {
			fmt.Fprintln(r.Out, "Usage: role edit <id>")
			return nil
		}
		if err := r.Roles.BeginEdit(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(r.Out, "Editing role %s.\n", args[0])
		return nil
	case "name":
		id, ok := r.currentRoleEdit()
		if !ok {
			return nil
		}
		return r.Roles.SetRoleName(id, strings.Join(args, " "))
	case "perm":
		return r.cmdRolePerm(args)
	case "save":
		id, ok := r.currentRoleEdit()
		if !ok {
			return nil
		}
		if err := r.Roles.SubmitEdit(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(r.Out, "Saved.")
		return nil
	case "cancel":
		id, ok := r.currentRoleEdit()
		if !ok {
			return nil
		}
		r.Roles.CancelEdit(id)
		fmt.Fprintln(r.Out, "Cancelled.")
		return nil
	case "delete":
		if len(args) != 1 {
			fmt.Fprintln(r.Out, "Usage: role delete <id>")
			return nil
		}
		err := r.Roles.Delete(ctx, args[0], func(role domain.RoleRecord) bool {
			return r.confirm(fmt.Sprintf("Deactivate role %s?", role.RoleName))
		})
		if errors.Is(err, service.ErrNotConfirmed) {
			fmt.Fprintln(r.Out, "Aborted.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(r.Out, "Role deactivated.")
		return nil
	}

	fmt.Fprintf(r.Out, "Unknown role subcommand %q.\n", sub)
	return nil
}

func (r *Runner) currentRoleEdit() (string, bool) {
	id, ok := r.Roles.Editor.EditingID()
	if !ok {
		fmt.Fprintln(r.Out, "No role is being edited. Use 'role edit <id>' first.")
	}
	return id, ok
}

func (r *Runner) cmdRolePerm(args []string) error {
	id, ok := r.currentRoleEdit()
	if !ok {
		return nil
	}
	if len(args) == 0 {
		fmt.Fprintln(r.Out, "Usage: role perm <add|rename|set|rm> ...")
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) != 3 {
			fmt.Fprintln(r.Out, "Usage: role perm add <key> <true|false>")
			return nil
		}
		return r.Roles.AddPermission(id, args[1], args[2])
	case "rename":
		if len(args) != 3 {
			fmt.Fprintln(r.Out, "Usage: role perm rename <old> <new>")
			return nil
		}
		return r.Roles.RenamePermission(id, args[1], args[2])
	case "set":
		if len(args) != 3 {
			fmt.Fprintln(r.Out, "Usage: role perm set <key> <true|false>")
			return nil
		}
		return r.Roles.SetPermissionValue(id, args[1], args[2])
	case "rm":
		if len(args) != 2 {
			fmt.Fprintln(r.Out, "Usage: role perm rm <key>")
			return nil
		}
		return r.Roles.RemovePermission(id, args[1])
	}

	fmt.Fprintf(r.Out, "Unknown perm subcommand %q.\n", args[0])
	return nil
}

func (r *Runner) cmdRoleCreate(ctx context.Context) error {
	name := r.prompt("Role Name")

	perms := newPermPrompt(r)
	if err := r.Roles.Create(ctx, name, perms); err != nil {
		return err
	}
	fmt.Fprintln(r.Out, "Role created.")
	return nil
}

// ---------------------------------------------------------------------------
// Department commands
// ---------------------------------------------------------------------------

func (r *Runner) cmdDept(ctx context.Context, args []string) error {
	if len(args) < 2 || args[0] != "create" {
		fmt.Fprintln(r.Out, "Usage: dept create <name...>")
		return nil
	}

	if err := r.Departments.Create(ctx, strings.Join(args[1:], " ")); err != nil {
		return err
	}
	fmt.Fprintln(r.Out, "Department created.")
	return nil
}
