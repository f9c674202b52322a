// File: internal/usecase/subscription_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/bayusbkt/patungan-bay/internal/domain"
	"github.com/bayusbkt/patungan-bay/internal/domain/model"
	"github.com/bayusbkt/patungan-bay/internal/domain/ports/adapter"
	"github.com/bayusbkt/patungan-bay/internal/domain/ports/repository"
	"github.com/bayusbkt/patungan-bay/internal/infra/metrics"
)

// Compile-time check
var _ SubscriptionUseCase = (*subscriptionUC)(nil)

// PaymentDetails is the customer-side bank transfer evidence attached to a
// draft booking before approval.
type PaymentDetails struct {
	BankName    string
	BankAccount string
	BankNumber  string
	Proof       string
}

type SubscriptionUseCase interface {
	// CreateDraft opens an unpaid booking against a product, snapshotting the
	// per-person price, tax and total at call time.
	CreateDraft(ctx context.Context, productID string, customer model.Customer) (*model.ProductSubscription, error)

	// AttachPayment records the transfer details; it never flips is_paid.
	AttachPayment(ctx context.Context, id string, details PaymentDetails) (*model.ProductSubscription, error)

	// Approve marks the booking paid. Approving an already-paid booking is a
	// no-op success.
	Approve(ctx context.Context, id string) (*model.ProductSubscription, error)

	Get(ctx context.Context, id string) (*model.ProductSubscription, error)
	GetByBookingTrxID(ctx context.Context, trxID string) (*model.ProductSubscription, error)
	List(ctx context.Context) ([]*model.ProductSubscription, error)
	ListByProduct(ctx context.Context, productID string) ([]*model.ProductSubscription, error)
	CountUnpaid(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}

type subscriptionUC struct {
	subs      repository.SubscriptionRepository
	products  repository.ProductRepository
	pricing   PricingUseCase
	notifier  adapter.ApprovalNotifier
	trxPrefix string

	log *zerolog.Logger
}

func NewSubscriptionUseCase(
	subs repository.SubscriptionRepository,
	products repository.ProductRepository,
	pricing PricingUseCase,
	notifier adapter.ApprovalNotifier,
	trxPrefix string,
	logger *zerolog.Logger,
) *subscriptionUC {
	return &subscriptionUC{
		subs:      subs,
		products:  products,
		pricing:   pricing,
		notifier:  notifier,
		trxPrefix: trxPrefix,
		log:       logger,
	}
}

// newBookingTrxID mints a lexically sortable booking reference, e.g.
// PTGN-01J8ZC3A9JK2M4N6P8Q0RS2TV4.
func (u *subscriptionUC) newBookingTrxID() string {
	id := ulid.Make().String()
	if u.trxPrefix == "" {
		return id
	}
	return fmt.Sprintf("%s-%s", strings.TrimSuffix(u.trxPrefix, "-"), id)
}

func (u *subscriptionUC) CreateDraft(ctx context.Context, productID string, customer model.Customer) (*model.ProductSubscription, error) {
	product, err := u.products.FindByID(ctx, repository.NoTX, productID)
	if err != nil {
		return nil, err
	}
	quote, err := u.pricing.QuoteProduct(ctx, product)
	if err != nil {
		// zero-capacity product: no per-person price to snapshot
		return nil, err
	}

	sub, err := model.NewProductSubscription(
		product.ID, customer, u.newBookingTrxID(),
		quote.PricePerPerson, quote.TaxAmount, quote.TotalAmount,
		product.DurationMonths,
	)
	if err != nil {
		return nil, err
	}
	if err := u.subs.Save(ctx, repository.NoTX, sub); err != nil {
		u.log.Error().Err(err).Str("product_id", productID).Msg("ledger: save draft failed")
		return nil, err
	}
	metrics.IncBookingCreated()
	u.log.Info().
		Str("subscription_id", sub.ID).
		Str("booking_trx_id", sub.BookingTrxID).
		Int64("total_amount", sub.TotalAmount).
		Msg("ledger: draft booking created")
	return sub, nil
}

func (u *subscriptionUC) AttachPayment(ctx context.Context, id string, details PaymentDetails) (*model.ProductSubscription, error) {
	if details.BankName == "" || details.BankAccount == "" || details.BankNumber == "" || details.Proof == "" {
		return nil, domain.ErrInvalidArgument
	}
	sub, err := u.subs.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return nil, err
	}
	if sub.IsPaid {
		return nil, domain.ErrInvalidState
	}
	sub.CustomerBankName = details.BankName
	sub.CustomerBankAccount = details.BankAccount
	sub.CustomerBankNumber = details.BankNumber
	sub.Proof = details.Proof
	sub.UpdatedAt = time.Now()
	if err := u.subs.Update(ctx, repository.NoTX, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (u *subscriptionUC) Approve(ctx context.Context, id string) (*model.ProductSubscription, error) {
	sub, err := u.subs.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return nil, err
	}
	if err := sub.Approve(); err != nil {
		if errors.Is(err, domain.ErrAlreadyPaid) {
			// re-approval changes nothing
			return sub, nil
		}
		return nil, err
	}
	if err := u.subs.Update(ctx, repository.NoTX, sub); err != nil {
		return nil, err
	}
	metrics.IncBookingApproved()
	u.log.Info().
		Str("subscription_id", sub.ID).
		Str("booking_trx_id", sub.BookingTrxID).
		Msg("ledger: booking approved")

	if u.notifier != nil {
		if err := u.notifier.NotifyApproved(ctx, sub); err != nil {
			// approval stands even when the side channel is down
			u.log.Warn().Err(err).
				Str("notifier", u.notifier.Name()).
				Str("subscription_id", sub.ID).
				Msg("ledger: approval notification failed")
		}
	}
	return sub, nil
}

func (u *subscriptionUC) Get(ctx context.Context, id string) (*model.ProductSubscription, error) {
	return u.subs.FindByID(ctx, repository.NoTX, id)
}

func (u *subscriptionUC) GetByBookingTrxID(ctx context.Context, trxID string) (*model.ProductSubscription, error) {
	if trxID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return u.subs.FindByBookingTrxID(ctx, repository.NoTX, trxID)
}

func (u *subscriptionUC) List(ctx context.Context) ([]*model.ProductSubscription, error) {
	return u.subs.ListAll(ctx, repository.NoTX)
}

func (u *subscriptionUC) ListByProduct(ctx context.Context, productID string) ([]*model.ProductSubscription, error) {
	return u.subs.ListByProduct(ctx, repository.NoTX, productID)
}

func (u *subscriptionUC) CountUnpaid(ctx context.Context) (int, error) {
	return u.subs.CountUnpaid(ctx, repository.NoTX)
}

func (u *subscriptionUC) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidArgument
	}
	return u.subs.SoftDelete(ctx, repository.NoTX, id)
}

func (u *subscriptionUC) Restore(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidArgument
	}
	return u.subs.Restore(ctx, repository.NoTX, id)
}
