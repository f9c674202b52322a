package postgres

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/bayusbkt/patungan-bay/internal/domain"
	"github.com/bayusbkt/patungan-bay/internal/domain/model"
	"github.com/bayusbkt/patungan-bay/internal/domain/ports/repository"
)

// Ensure interface compliance
var _ repository.GroupRepository = (*GroupRepo)(nil)

type GroupRepo struct {
	pool *pgxpool.Pool
}

func NewGroupRepo(pool *pgxpool.Pool) *GroupRepo {
	return &GroupRepo{pool: pool}
}

func hashToInt64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64() & ((1 << 63) - 1))
}

// LockProduct takes an advisory xact lock keyed by product id. It must run
// inside a transaction; the lock drops at commit/rollback.
func (r *GroupRepo) LockProduct(ctx context.Context, tx repository.Tx, productID string) error {
	if _, ok := tx.(pgx.Tx); !ok {
		return domain.ErrInvalidExecContext
	}
	if _, err := execSQL(ctx, r.pool, tx, `SELECT pg_advisory_xact_lock($1);`, hashToInt64(productID)); err != nil {
		return fmt.Errorf("lock product: %w", err)
	}
	return nil
}

func (r *GroupRepo) Save(ctx context.Context, tx repository.Tx, g *model.SubscriptionGroup) error {
	const q = `
INSERT INTO subscription_groups (
  id, product_id, subscription_id, max_capacity, participant_count,
  created_at, updated_at, deleted_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8);
`
	if _, err := execSQL(ctx, r.pool, tx, q,
		g.ID, g.ProductID, g.SubscriptionID, g.MaxCapacity, g.ParticipantCount,
		g.CreatedAt, g.UpdatedAt, g.DeletedAt,
	); err != nil {
		return fmt.Errorf("save group: %w", err)
	}
	return nil
}

const groupCols = `id, product_id, subscription_id, max_capacity, participant_count,
       created_at, updated_at, deleted_at`

func scanGroup(row pgx.Row) (*model.SubscriptionGroup, error) {
	var g model.SubscriptionGroup
	err := row.Scan(&g.ID, &g.ProductID, &g.SubscriptionID, &g.MaxCapacity, &g.ParticipantCount,
		&g.CreatedAt, &g.UpdatedAt, &g.DeletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrReadDatabaseRow, err)
	}
	return &g, nil
}

func (r *GroupRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.SubscriptionGroup, error) {
	row, err := queryRow(ctx, r.pool, tx,
		`SELECT `+groupCols+` FROM subscription_groups WHERE id=$1 AND deleted_at IS NULL;`, id)
	if err != nil {
		return nil, err
	}
	return scanGroup(row)
}

func (r *GroupRepo) FindBySubscription(ctx context.Context, tx repository.Tx, subscriptionID string) (*model.SubscriptionGroup, error) {
	const q = `
SELECT g.id, g.product_id, g.subscription_id, g.max_capacity, g.participant_count,
       g.created_at, g.updated_at, g.deleted_at
  FROM subscription_groups g
  JOIN group_participants p ON p.group_id = g.id
 WHERE p.subscription_id=$1 AND g.deleted_at IS NULL
 LIMIT 1;
`
	row, err := queryRow(ctx, r.pool, tx, q, subscriptionID)
	if err != nil {
		return nil, err
	}
	return scanGroup(row)
}

func (r *GroupRepo) FindOpenByProduct(ctx context.Context, tx repository.Tx, productID string) ([]*model.SubscriptionGroup, error) {
	q := `
SELECT ` + groupCols + `
  FROM subscription_groups
 WHERE product_id=$1 AND deleted_at IS NULL AND participant_count < max_capacity
 ORDER BY created_at`
	// inside a transaction the candidate rows are locked so the
	// read-then-increment cannot race
	if _, ok := tx.(pgx.Tx); ok {
		q += ` FOR UPDATE`
	}
	return r.list(ctx, tx, q+";", productID)
}

// IncrementParticipant bumps the count with the capacity guard in the WHERE
// clause; a full group hits zero rows.
func (r *GroupRepo) IncrementParticipant(ctx context.Context, tx repository.Tx, groupID string) error {
	const q = `
UPDATE subscription_groups
   SET participant_count = participant_count + 1, updated_at = now()
 WHERE id=$1 AND deleted_at IS NULL AND participant_count < max_capacity;
`
	ct, err := execSQL(ctx, r.pool, tx, q, groupID)
	if err != nil {
		return fmt.Errorf("increment participant: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// distinguish a missing group from a full one
		if _, err := r.FindByID(ctx, tx, groupID); err != nil {
			return err
		}
		return domain.ErrCapacityExceeded
	}
	return nil
}

func (r *GroupRepo) list(ctx context.Context, tx repository.Tx, q string, args ...interface{}) ([]*model.SubscriptionGroup, error) {
	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()
	var out []*model.SubscriptionGroup
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *GroupRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.SubscriptionGroup, error) {
	return r.list(ctx, tx,
		`SELECT `+groupCols+` FROM subscription_groups WHERE deleted_at IS NULL ORDER BY created_at;`)
}

func (r *GroupRepo) ListByProduct(ctx context.Context, tx repository.Tx, productID string) ([]*model.SubscriptionGroup, error) {
	return r.list(ctx, tx,
		`SELECT `+groupCols+` FROM subscription_groups WHERE product_id=$1 AND deleted_at IS NULL ORDER BY created_at;`,
		productID)
}

func (r *GroupRepo) SoftDelete(ctx context.Context, tx repository.Tx, id string) error {
	ct, err := execSQL(ctx, r.pool, tx,
		`UPDATE subscription_groups SET deleted_at=now(), updated_at=now() WHERE id=$1 AND deleted_at IS NULL;`, id)
	if err != nil {
		return fmt.Errorf("soft delete group: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GroupRepo) AddMessage(ctx context.Context, tx repository.Tx, m *model.GroupMessage) error {
	const q = `
INSERT INTO group_messages (id, group_id, message, created_at, deleted_at)
VALUES ($1,$2,$3,$4,$5);
`
	if _, err := execSQL(ctx, r.pool, tx, q, m.ID, m.GroupID, m.Message, m.CreatedAt, m.DeletedAt); err != nil {
		return fmt.Errorf("add message: %w", err)
	}
	return nil
}

func (r *GroupRepo) ListMessages(ctx context.Context, tx repository.Tx, groupID string) ([]*model.GroupMessage, error) {
	rows, err := queryRows(ctx, r.pool, tx, `
SELECT id, group_id, message, created_at, deleted_at
  FROM group_messages
 WHERE group_id=$1 AND deleted_at IS NULL
 ORDER BY created_at;`, groupID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()
	var out []*model.GroupMessage
	for rows.Next() {
		var m model.GroupMessage
		if err := rows.Scan(&m.ID, &m.GroupID, &m.Message, &m.CreatedAt, &m.DeletedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrReadDatabaseRow, err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *GroupRepo) AddParticipant(ctx context.Context, tx repository.Tx, p *model.GroupParticipant) error {
	const q = `
INSERT INTO group_participants (id, group_id, subscription_id, name, created_at)
VALUES ($1,$2,$3,$4,$5);
`
	if _, err := execSQL(ctx, r.pool, tx, q, p.ID, p.GroupID, p.SubscriptionID, p.Name, p.CreatedAt); err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	return nil
}

func (r *GroupRepo) ListParticipants(ctx context.Context, tx repository.Tx, groupID string) ([]*model.GroupParticipant, error) {
	rows, err := queryRows(ctx, r.pool, tx, `
SELECT id, group_id, subscription_id, name, created_at
  FROM group_participants
 WHERE group_id=$1
 ORDER BY created_at;`, groupID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()
	var out []*model.GroupParticipant
	for rows.Next() {
		var p model.GroupParticipant
		if err := rows.Scan(&p.ID, &p.GroupID, &p.SubscriptionID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrReadDatabaseRow, err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *GroupRepo) CountByFullness(ctx context.Context, tx repository.Tx) (int, int, error) {
	const q = `
SELECT COUNT(*) FILTER (WHERE participant_count < max_capacity),
       COUNT(*) FILTER (WHERE participant_count >= max_capacity)
  FROM subscription_groups
 WHERE deleted_at IS NULL;
`
	row, err := queryRow(ctx, r.pool, tx, q)
	if err != nil {
		return 0, 0, err
	}
	var open, full int
	if err := row.Scan(&open, &full); err != nil {
		return 0, 0, fmt.Errorf("count groups: %w", err)
	}
	return open, full, nil
}
