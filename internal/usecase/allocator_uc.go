// File: internal/usecase/allocator_uc.go
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"github.com/bayusbkt/patungan-bay/internal/domain"
	"github.com/bayusbkt/patungan-bay/internal/domain/model"
	"github.com/bayusbkt/patungan-bay/internal/domain/ports/repository"
	"github.com/bayusbkt/patungan-bay/internal/infra/metrics"
)

// Compile-time check
var _ AllocatorUseCase = (*allocatorUC)(nil)

// AllocationResult reports where a paid booking landed.
type AllocationResult struct {
	Group       *model.SubscriptionGroup
	OpenedGroup bool // true when no open group had room and a new one was created
}

// AllocatorUseCase places approved bookings into subscription groups.
//
// Placement is first-fit oldest-first: the booking joins the oldest
// non-deleted group of its product that still has a free slot; when none has,
// a new group opens with the product's current capacity. The whole decision
// runs inside one transaction serialized per product, so two concurrent
// allocations can never both claim the last slot.
type AllocatorUseCase interface {
	Allocate(ctx context.Context, subscriptionID string, startCount int) (*AllocationResult, error)
}

type allocatorUC struct {
	groups   repository.GroupRepository
	subs     repository.SubscriptionRepository
	products repository.ProductRepository
	txm      repository.TransactionManager

	log *zerolog.Logger
}

func NewAllocatorUseCase(
	groups repository.GroupRepository,
	subs repository.SubscriptionRepository,
	products repository.ProductRepository,
	txm repository.TransactionManager,
	logger *zerolog.Logger,
) *allocatorUC {
	return &allocatorUC{groups: groups, subs: subs, products: products, txm: txm, log: logger}
}

func (a *allocatorUC) Allocate(ctx context.Context, subscriptionID string, startCount int) (*AllocationResult, error) {
	if subscriptionID == "" {
		return nil, domain.ErrInvalidArgument
	}

	began := time.Now()
	var result *AllocationResult
	err := a.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		sub, err := a.subs.FindByID(ctx, tx, subscriptionID)
		if err != nil {
			return err
		}
		if !sub.IsPaid {
			return domain.ErrInvalidState
		}
		product, err := a.products.FindByID(ctx, tx, sub.ProductID)
		if err != nil {
			return err
		}
		// startCount is caller input; a seed above the product's capacity is a
		// bad request, not a capacity invariant violation.
		if startCount > product.Capacity {
			return domain.ErrInvalidArgument
		}

		if err := a.groups.LockProduct(ctx, tx, product.ID); err != nil {
			return err
		}

		// A booking already sitting in a group stays where it is. Approval is
		// idempotent, so allocation has to be too.
		if existing, err := a.groups.FindBySubscription(ctx, tx, sub.ID); err == nil {
			result = &AllocationResult{Group: existing}
			return nil
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		open, err := a.groups.FindOpenByProduct(ctx, tx, product.ID)
		if err != nil {
			return err
		}
		for _, g := range open {
			if g.IsFull() {
				continue
			}
			if err := a.groups.IncrementParticipant(ctx, tx, g.ID); err != nil {
				return err
			}
			if err := a.addParticipant(ctx, tx, g.ID, sub); err != nil {
				return err
			}
			g.ParticipantCount++
			g.UpdatedAt = time.Now()
			result = &AllocationResult{Group: g}
			return nil
		}

		g, err := model.NewSubscriptionGroup(product.ID, sub.ID, product.Capacity, startCount)
		if err != nil {
			return err
		}
		if err := a.groups.Save(ctx, tx, g); err != nil {
			return err
		}
		if err := a.addParticipant(ctx, tx, g.ID, sub); err != nil {
			return err
		}
		result = &AllocationResult{Group: g, OpenedGroup: true}
		return nil
	})
	if err != nil {
		a.log.Error().Err(err).Str("subscription_id", subscriptionID).Msg("allocator: allocation failed")
		return nil, err
	}

	metrics.ObserveAllocation(float64(time.Since(began).Milliseconds()))
	if result.OpenedGroup {
		metrics.IncGroupOpened()
	}
	a.log.Info().
		Str("subscription_id", subscriptionID).
		Str("group_id", result.Group.ID).
		Bool("opened_group", result.OpenedGroup).
		Int("participant_count", result.Group.ParticipantCount).
		Msg("allocator: booking placed")
	return result, nil
}

func (a *allocatorUC) addParticipant(ctx context.Context, tx repository.Tx, groupID string, sub *model.ProductSubscription) error {
	p, err := model.NewGroupParticipant(groupID, sub.ID, sub.Customer.Name)
	if err != nil {
		return err
	}
	return a.groups.AddParticipant(ctx, tx, p)
}
