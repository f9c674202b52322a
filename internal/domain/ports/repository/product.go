package repository

import (
	"context"

	"github.com/bayusbkt/patungan-bay/internal/domain/model"
)

// ProductRepository is the port for catalog persistence. Keypoints travel
// with the product as ordered child rows.
//
// Read methods skip soft-deleted rows; FindByID returns domain.ErrNotFound
// for a deleted product unless the call goes through Restore.
type ProductRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Product) error
	Update(ctx context.Context, tx Tx, p *model.Product) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Product, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.Product, error)
	SoftDelete(ctx context.Context, tx Tx, id string) error
	Restore(ctx context.Context, tx Tx, id string) error
}
