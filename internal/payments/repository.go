package payments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrMethodNotFound = errors.New("payment method not found")

// Method is one way a customer can pay: a mobile-money account, a bank
// account, and so on. Customers see active methods on the payment
// instructions page, ordered by DisplayOrder; admins manage the full list.
type Method struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	AccountNumber string    `json:"account_number,omitempty"`
	AccountName   string    `json:"account_name,omitempty"`
	PhoneNumber   string    `json:"phone_number,omitempty"`
	Instructions  string    `json:"instructions,omitempty"`
	IsActive      bool      `json:"is_active"`
	DisplayOrder  int       `json:"display_order"`
	CreatedAt     time.Time `json:"created_at"`
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns the methods shown to customers, in display order.
func (r *Repository) ListActive(ctx context.Context) ([]Method, error) {
	return r.list(ctx, `
		SELECT id, name, type, account_number, account_name, phone_number, instructions, is_active, display_order, created_at
		FROM payment_methods
		WHERE is_active
		ORDER BY display_order, created_at
	`)
}

// List returns every method, active or not, for the admin surface.
func (r *Repository) List(ctx context.Context) ([]Method, error) {
	return r.list(ctx, `
		SELECT id, name, type, account_number, account_name, phone_number, instructions, is_active, display_order, created_at
		FROM payment_methods
		ORDER BY display_order, created_at
	`)
}

func (r *Repository) Create(ctx context.Context, m *Method) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payment_methods (id, name, type, account_number, account_name, phone_number, instructions, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, m.ID, m.Name, m.Type, m.AccountNumber, m.AccountName, m.PhoneNumber, m.Instructions, m.IsActive, m.DisplayOrder)
	if err != nil {
		return fmt.Errorf("failed to create payment method: %w", err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, m *Method) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payment_methods
		SET name = $1, type = $2, account_number = $3, account_name = $4, phone_number = $5,
		    instructions = $6, is_active = $7, display_order = $8
		WHERE id = $9
	`, m.Name, m.Type, m.AccountNumber, m.AccountName, m.PhoneNumber, m.Instructions, m.IsActive, m.DisplayOrder, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update payment method: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMethodNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM payment_methods WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMethodNotFound
	}
	return nil
}

func (r *Repository) list(ctx context.Context, query string) ([]Method, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment methods: %w", err)
	}
	defer rows.Close()

	var methods []Method
	for rows.Next() {
		var m Method
		err := rows.Scan(&m.ID, &m.Name, &m.Type, &m.AccountNumber, &m.AccountName, &m.PhoneNumber,
			&m.Instructions, &m.IsActive, &m.DisplayOrder, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return methods, nil
}
