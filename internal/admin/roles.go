package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

var (
	ErrNotAdmin     = errors.New("user is not an admin")
	ErrAlreadyAdmin = errors.New("user is already an admin")
)

type Role struct {
	UserID     string    `json:"user_id"`
	PromotedBy string    `json:"promoted_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Roles manages admin delegation. Promotions form a tree (promoted_by points
// at the promoter); demoting an admin also demotes everyone below them in
// that tree.
type Roles struct {
	db *sql.DB
}

func NewRoles(db *sql.DB) *Roles {
	return &Roles{db: db}
}

func (r *Roles) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM admin_roles WHERE user_id = $1)
	`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check admin role: %w", err)
	}
	return exists, nil
}

// Promote grants userID the admin role, recording promoterID as the parent
// in the promotion tree. An empty promoterID creates a root admin.
func (r *Roles) Promote(ctx context.Context, userID, promoterID string) error {
	var promotedBy interface{}
	if promoterID != "" {
		promotedBy = promoterID
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_roles (user_id, promoted_by) VALUES ($1, $2)
	`, userID, promotedBy)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrAlreadyAdmin
		}
		return fmt.Errorf("failed to promote: %w", err)
	}
	return nil
}

// Demote removes userID's admin role and, transitively, every admin whose
// promotion chain leads back to them.
func (r *Roles) Demote(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		WITH RECURSIVE demoted AS (
			SELECT user_id FROM admin_roles WHERE user_id = $1
			UNION ALL
			SELECT a.user_id
			FROM admin_roles a
			JOIN demoted d ON a.promoted_by = d.user_id
		)
		DELETE FROM admin_roles WHERE user_id IN (SELECT user_id FROM demoted)
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to demote: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotAdmin
	}
	return nil
}

func (r *Roles) List(ctx context.Context) ([]Role, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, COALESCE(promoted_by, ''), created_at
		FROM admin_roles
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query admin roles: %w", err)
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.UserID, &role.PromotedBy, &role.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan admin role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return roles, nil
}
