package subscribers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrAlreadySubscribed = errors.New("email already subscribed")
	ErrInvalidEmail      = errors.New("invalid email address")
)

type Subscriber struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Subscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscribers (id, email) VALUES ($1, $2)
	`, uuid.New().String(), email)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrAlreadySubscribed
		}
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	return nil
}

func (r *Repository) Unsubscribe(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM subscribers WHERE email = $1
	`, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]Subscriber, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, created_at FROM subscribers ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscribers: %w", err)
	}
	defer rows.Close()

	var subs []Subscriber
	for rows.Next() {
		var s Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return subs, nil
}
