package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orofoodhouse/oro-orders/internal/domain/payment"
)

var _ payment.Repository = (*PaymentMethodRepository)(nil)

// PaymentMethodRepository implements payment.Repository backed by
// PostgreSQL.
type PaymentMethodRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentMethodRepository returns a PaymentMethodRepository that uses
// the given pool.
func NewPaymentMethodRepository(pool *pgxpool.Pool) *PaymentMethodRepository {
	return &PaymentMethodRepository{pool: pool}
}

// List returns the configured payment methods in display order.
func (r *PaymentMethodRepository) List(ctx context.Context) ([]payment.Method, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, account_number, account_name, qr_code_url, position
		 FROM payment_methods ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("listing payment methods: %w", err)
	}
	defer rows.Close()

	var out []payment.Method
	for rows.Next() {
		var m payment.Method
		if err := rows.Scan(&m.ID, &m.Name, &m.AccountNumber, &m.AccountName, &m.QRCodeURL, &m.Position); err != nil {
			return nil, fmt.Errorf("scanning payment method: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading payment methods: %w", err)
	}
	return out, nil
}

// GetByID returns a single payment method. It returns payment.ErrNotFound
// when no matching method exists.
func (r *PaymentMethodRepository) GetByID(ctx context.Context, id string) (*payment.Method, error) {
	var m payment.Method
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, account_number, account_name, qr_code_url, position
		 FROM payment_methods WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.AccountNumber, &m.AccountName, &m.QRCodeURL, &m.Position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payment.ErrNotFound
		}
		return nil, fmt.Errorf("getting payment method %q: %w", id, err)
	}
	return &m, nil
}
