package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/bayusbkt/patungan-bay/internal/domain"
	"github.com/bayusbkt/patungan-bay/internal/domain/model"
	"github.com/bayusbkt/patungan-bay/internal/domain/ports/repository"
)

// Ensure interface compliance
var _ repository.ProductRepository = (*ProductRepo)(nil)

type ProductRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

func (r *ProductRepo) Save(ctx context.Context, tx repository.Tx, p *model.Product) error {
	const q = `
INSERT INTO products (
  id, name, tagline, about, price, capacity, duration_months, is_popular,
  thumbnail, photo, created_at, updated_at, deleted_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13);
`
	if _, err := execSQL(ctx, r.pool, tx, q,
		p.ID, p.Name, p.Tagline, p.About, p.Price, p.Capacity, p.DurationMonths, p.IsPopular,
		p.Thumbnail, p.Photo, p.CreatedAt, p.UpdatedAt, p.DeletedAt,
	); err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	return r.replaceKeypoints(ctx, tx, p)
}

func (r *ProductRepo) Update(ctx context.Context, tx repository.Tx, p *model.Product) error {
	const q = `
UPDATE products SET
  name=$2, tagline=$3, about=$4, price=$5, capacity=$6, duration_months=$7,
  is_popular=$8, thumbnail=$9, photo=$10, updated_at=$11
WHERE id=$1 AND deleted_at IS NULL;
`
	ct, err := execSQL(ctx, r.pool, tx, q,
		p.ID, p.Name, p.Tagline, p.About, p.Price, p.Capacity, p.DurationMonths,
		p.IsPopular, p.Thumbnail, p.Photo, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return r.replaceKeypoints(ctx, tx, p)
}

// replaceKeypoints rewrites the ordered child rows wholesale; keypoint sets
// are tiny.
func (r *ProductRepo) replaceKeypoints(ctx context.Context, tx repository.Tx, p *model.Product) error {
	if _, err := execSQL(ctx, r.pool, tx, `DELETE FROM product_keypoints WHERE product_id=$1;`, p.ID); err != nil {
		return fmt.Errorf("clear keypoints: %w", err)
	}
	const ins = `INSERT INTO product_keypoints (product_id, position, keypoint) VALUES ($1,$2,$3);`
	for i, kp := range p.Keypoints {
		if _, err := execSQL(ctx, r.pool, tx, ins, p.ID, i, kp); err != nil {
			return fmt.Errorf("insert keypoint: %w", err)
		}
	}
	return nil
}

func (r *ProductRepo) loadKeypoints(ctx context.Context, tx repository.Tx, productID string) ([]string, error) {
	rows, err := queryRows(ctx, r.pool, tx,
		`SELECT keypoint FROM product_keypoints WHERE product_id=$1 ORDER BY position;`, productID)
	if err != nil {
		return nil, fmt.Errorf("load keypoints: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var kp string
		if err := rows.Scan(&kp); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrReadDatabaseRow, err)
		}
		out = append(out, kp)
	}
	return out, rows.Err()
}

const productCols = `id, name, tagline, about, price, capacity, duration_months, is_popular,
       thumbnail, photo, created_at, updated_at, deleted_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Tagline, &p.About, &p.Price, &p.Capacity, &p.DurationMonths,
		&p.IsPopular, &p.Thumbnail, &p.Photo, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrReadDatabaseRow, err)
	}
	return &p, nil
}

func (r *ProductRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Product, error) {
	row, err := queryRow(ctx, r.pool, tx,
		`SELECT `+productCols+` FROM products WHERE id=$1 AND deleted_at IS NULL;`, id)
	if err != nil {
		return nil, err
	}
	p, err := scanProduct(row)
	if err != nil {
		return nil, err
	}
	if p.Keypoints, err = r.loadKeypoints(ctx, tx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Product, error) {
	rows, err := queryRows(ctx, r.pool, tx,
		`SELECT `+productCols+` FROM products WHERE deleted_at IS NULL ORDER BY created_at;`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var out []*model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range out {
		if p.Keypoints, err = r.loadKeypoints(ctx, tx, p.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *ProductRepo) SoftDelete(ctx context.Context, tx repository.Tx, id string) error {
	ct, err := execSQL(ctx, r.pool, tx,
		`UPDATE products SET deleted_at=now(), updated_at=now() WHERE id=$1 AND deleted_at IS NULL;`, id)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) Restore(ctx context.Context, tx repository.Tx, id string) error {
	ct, err := execSQL(ctx, r.pool, tx,
		`UPDATE products SET deleted_at=NULL, updated_at=now() WHERE id=$1;`, id)
	if err != nil {
		return fmt.Errorf("restore product: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
