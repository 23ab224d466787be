package sqlite

import (
	"context"
	"database/sql"

	"github.com/harborcrest/userdesk/internal/console/domain"
)

type sessionsRepo struct {
	db *sql.DB
}

// The sessions table holds at most one row; the fixed id makes the save an
// upsert rather than an insert-then-prune.
const sessionRowID = 1

func (r *sessionsRepo) SaveSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, full_name, logged_in_at)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			full_name    = excluded.full_name,
			logged_in_at = excluded.logged_in_at
	`, sessionRowID, s.FullName, s.LoggedInAt.UTC())
	return err
}

func (r *sessionsRepo) GetSession(ctx context.Context) (domain.Session, error) {
	var s domain.Session
	err := r.db.QueryRowContext(ctx, `
		SELECT full_name, logged_in_at
		FROM sessions
		WHERE id = ?
	`, sessionRowID).Scan(&s.FullName, &s.LoggedInAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return s, nil
}

func (r *sessionsRepo) ClearSession(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionRowID)
	return err
}
