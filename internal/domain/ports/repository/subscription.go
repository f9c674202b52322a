package repository

import (
	"context"

	"github.com/bayusbkt/patungan-bay/internal/domain/model"
)

// SubscriptionStats is the aggregate consumed by the stats collaborator.
type SubscriptionStats struct {
	Total    int
	Approved int
	Revenue  int64 // sum of total_amount over approved bookings
}

// SubscriptionRepository is the port for the booking ledger.
type SubscriptionRepository interface {
	Save(ctx context.Context, tx Tx, s *model.ProductSubscription) error
	Update(ctx context.Context, tx Tx, s *model.ProductSubscription) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.ProductSubscription, error)
	// FindByBookingTrxID searches non-deleted bookings only; the trx id
	// uniqueness scope is live rows.
	FindByBookingTrxID(ctx context.Context, tx Tx, trxID string) (*model.ProductSubscription, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.ProductSubscription, error)
	ListByProduct(ctx context.Context, tx Tx, productID string) ([]*model.ProductSubscription, error)
	CountUnpaid(ctx context.Context, tx Tx) (int, error)
	SoftDelete(ctx context.Context, tx Tx, id string) error
	Restore(ctx context.Context, tx Tx, id string) error

	// Stats is read-only aggregation over non-deleted bookings.
	Stats(ctx context.Context, tx Tx) (*SubscriptionStats, error)
}
