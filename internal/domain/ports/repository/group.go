package repository

import (
	"context"

	"github.com/bayusbkt/patungan-bay/internal/domain/model"
)

// GroupRepository is the port for subscription groups and their child
// records.
type GroupRepository interface {
	Save(ctx context.Context, tx Tx, g *model.SubscriptionGroup) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.SubscriptionGroup, error)

	// FindBySubscription returns the non-deleted group holding a participant
	// for the booking, or domain.ErrNotFound. Keeps allocation idempotent per
	// booking.
	FindBySubscription(ctx context.Context, tx Tx, subscriptionID string) (*model.SubscriptionGroup, error)

	// LockProduct serializes allocators working on the same product. Only
	// meaningful inside a transaction (advisory xact lock on Postgres); the
	// lock is released when the transaction ends.
	LockProduct(ctx context.Context, tx Tx, productID string) error

	// FindOpenByProduct returns non-deleted groups of the product with spare
	// capacity, ordered oldest-first. Inside a transaction the rows are
	// locked (SELECT ... FOR UPDATE) so the allocator's read-then-increment
	// cannot race.
	FindOpenByProduct(ctx context.Context, tx Tx, productID string) ([]*model.SubscriptionGroup, error)

	// IncrementParticipant bumps participant_count by one, guarded by
	// max_capacity; returns domain.ErrCapacityExceeded when the guard fires.
	IncrementParticipant(ctx context.Context, tx Tx, groupID string) error

	ListAll(ctx context.Context, tx Tx) ([]*model.SubscriptionGroup, error)
	ListByProduct(ctx context.Context, tx Tx, productID string) ([]*model.SubscriptionGroup, error)
	SoftDelete(ctx context.Context, tx Tx, id string) error

	AddMessage(ctx context.Context, tx Tx, m *model.GroupMessage) error
	ListMessages(ctx context.Context, tx Tx, groupID string) ([]*model.GroupMessage, error)

	AddParticipant(ctx context.Context, tx Tx, p *model.GroupParticipant) error
	ListParticipants(ctx context.Context, tx Tx, groupID string) ([]*model.GroupParticipant, error)

	// CountByFullness reports open vs full group counts for the metrics
	// gauge refresher.
	CountByFullness(ctx context.Context, tx Tx) (open int, full int, err error)
}
