package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/bayusbkt/patungan-bay/internal/domain"
	"github.com/bayusbkt/patungan-bay/internal/domain/model"
	"github.com/bayusbkt/patungan-bay/internal/domain/ports/repository"
)

// Ensure interface compliance
var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

type SubscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepo(pool *pgxpool.Pool) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool}
}

// mapWriteErr converts the partial unique index violation on booking_trx_id
// into the domain error.
func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrDuplicateBookingTrx
	}
	return err
}

func (r *SubscriptionRepo) Save(ctx context.Context, tx repository.Tx, s *model.ProductSubscription) error {
	const q = `
INSERT INTO product_subscriptions (
  id, product_id, price, total_tax_amount, total_amount, duration_months,
  customer_name, customer_phone, customer_email,
  booking_trx_id, customer_bank_name, customer_bank_account, customer_bank_number, proof,
  is_paid, created_at, updated_at, deleted_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18);
`
	if _, err := execSQL(ctx, r.pool, tx, q,
		s.ID, s.ProductID, s.Price, s.TotalTaxAmount, s.TotalAmount, s.DurationMonths,
		s.Customer.Name, s.Customer.Phone, s.Customer.Email,
		s.BookingTrxID, s.CustomerBankName, s.CustomerBankAccount, s.CustomerBankNumber, s.Proof,
		s.IsPaid, s.CreatedAt, s.UpdatedAt, s.DeletedAt,
	); err != nil {
		return fmt.Errorf("save subscription: %w", mapWriteErr(err))
	}
	return nil
}

func (r *SubscriptionRepo) Update(ctx context.Context, tx repository.Tx, s *model.ProductSubscription) error {
	const q = `
UPDATE product_subscriptions SET
  customer_name=$2, customer_phone=$3, customer_email=$4,
  customer_bank_name=$5, customer_bank_account=$6, customer_bank_number=$7, proof=$8,
  is_paid=$9, updated_at=$10
WHERE id=$1 AND deleted_at IS NULL;
`
	ct, err := execSQL(ctx, r.pool, tx, q,
		s.ID, s.Customer.Name, s.Customer.Phone, s.Customer.Email,
		s.CustomerBankName, s.CustomerBankAccount, s.CustomerBankNumber, s.Proof,
		s.IsPaid, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", mapWriteErr(err))
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const subCols = `id, product_id, price, total_tax_amount, total_amount, duration_months,
       customer_name, customer_phone, customer_email,
       booking_trx_id, customer_bank_name, customer_bank_account, customer_bank_number, proof,
       is_paid, created_at, updated_at, deleted_at`

func scanSubscription(row pgx.Row) (*model.ProductSubscription, error) {
	var s model.ProductSubscription
	err := row.Scan(&s.ID, &s.ProductID, &s.Price, &s.TotalTaxAmount, &s.TotalAmount, &s.DurationMonths,
		&s.Customer.Name, &s.Customer.Phone, &s.Customer.Email,
		&s.BookingTrxID, &s.CustomerBankName, &s.CustomerBankAccount, &s.CustomerBankNumber, &s.Proof,
		&s.IsPaid, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrReadDatabaseRow, err)
	}
	return &s, nil
}

func (r *SubscriptionRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.ProductSubscription, error) {
	row, err := queryRow(ctx, r.pool, tx,
		`SELECT `+subCols+` FROM product_subscriptions WHERE id=$1 AND deleted_at IS NULL;`, id)
	if err != nil {
		return nil, err
	}
	return scanSubscription(row)
}

func (r *SubscriptionRepo) FindByBookingTrxID(ctx context.Context, tx repository.Tx, trxID string) (*model.ProductSubscription, error) {
	row, err := queryRow(ctx, r.pool, tx,
		`SELECT `+subCols+` FROM product_subscriptions WHERE booking_trx_id=$1 AND deleted_at IS NULL;`, trxID)
	if err != nil {
		return nil, err
	}
	return scanSubscription(row)
}

func (r *SubscriptionRepo) list(ctx context.Context, tx repository.Tx, q string, args ...interface{}) ([]*model.ProductSubscription, error) {
	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()
	var out []*model.ProductSubscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SubscriptionRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.ProductSubscription, error) {
	return r.list(ctx, tx,
		`SELECT `+subCols+` FROM product_subscriptions WHERE deleted_at IS NULL ORDER BY created_at DESC;`)
}

func (r *SubscriptionRepo) ListByProduct(ctx context.Context, tx repository.Tx, productID string) ([]*model.ProductSubscription, error) {
	return r.list(ctx, tx,
		`SELECT `+subCols+` FROM product_subscriptions WHERE product_id=$1 AND deleted_at IS NULL ORDER BY created_at DESC;`,
		productID)
}

func (r *SubscriptionRepo) CountUnpaid(ctx context.Context, tx repository.Tx) (int, error) {
	row, err := queryRow(ctx, r.pool, tx,
		`SELECT COUNT(*) FROM product_subscriptions WHERE is_paid=false AND deleted_at IS NULL;`)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count unpaid: %w", err)
	}
	return n, nil
}

func (r *SubscriptionRepo) SoftDelete(ctx context.Context, tx repository.Tx, id string) error {
	ct, err := execSQL(ctx, r.pool, tx,
		`UPDATE product_subscriptions SET deleted_at=now(), updated_at=now() WHERE id=$1 AND deleted_at IS NULL;`, id)
	if err != nil {
		return fmt.Errorf("soft delete subscription: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restore brings a deleted booking back. The partial unique index re-checks
// booking_trx_id against live rows, so restoring into a conflict surfaces
// ErrDuplicateBookingTrx.
func (r *SubscriptionRepo) Restore(ctx context.Context, tx repository.Tx, id string) error {
	ct, err := execSQL(ctx, r.pool, tx,
		`UPDATE product_subscriptions SET deleted_at=NULL, updated_at=now() WHERE id=$1;`, id)
	if err != nil {
		return fmt.Errorf("restore subscription: %w", mapWriteErr(err))
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SubscriptionRepo) Stats(ctx context.Context, tx repository.Tx) (*repository.SubscriptionStats, error) {
	const q = `
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE is_paid),
       COALESCE(SUM(total_amount) FILTER (WHERE is_paid), 0)
  FROM product_subscriptions
 WHERE deleted_at IS NULL;
`
	row, err := queryRow(ctx, r.pool, tx, q)
	if err != nil {
		return nil, err
	}
	var st repository.SubscriptionStats
	if err := row.Scan(&st.Total, &st.Approved, &st.Revenue); err != nil {
		return nil, fmt.Errorf("subscription stats: %w", err)
	}
	return &st, nil
}
