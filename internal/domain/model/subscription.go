package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bayusbkt/patungan-bay/internal/domain"
)

// Customer holds the buyer contact captured with a booking. All fields are
// required.
type Customer struct {
	Name  string
	Phone string
	Email string
}

func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" ||
		strings.TrimSpace(c.Phone) == "" ||
		strings.TrimSpace(c.Email) == "" {
		return domain.ErrInvalidArgument
	}
	return nil
}

// ProductSubscription is one customer's purchase intent against a product.
//
// Price, TotalTaxAmount and TotalAmount are snapshots taken at creation time
// from the product's then-current per-person price; repricing the product
// never mutates them.
type ProductSubscription struct {
	ID             string
	ProductID      string
	Price          int64 // per-person price snapshot, IDR
	TotalTaxAmount int64
	TotalAmount    int64
	DurationMonths int

	Customer Customer

	BookingTrxID        string
	CustomerBankName    string
	CustomerBankAccount string
	CustomerBankNumber  string
	Proof               string // opaque asset handle for payment proof

	IsPaid    bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func (s *ProductSubscription) IsZero() bool    { return s == nil || s.ID == "" }
func (s *ProductSubscription) IsDeleted() bool { return s != nil && s.DeletedAt != nil }

// HasPaymentDetails reports whether every bank field and the proof handle are
// attached. Approval is only legal once this holds.
func (s *ProductSubscription) HasPaymentDetails() bool {
	return s.CustomerBankName != "" &&
		s.CustomerBankAccount != "" &&
		s.CustomerBankNumber != "" &&
		s.Proof != ""
}

// Approve flips the booking to paid. The transition is one-way; approving a
// paid booking is rejected with ErrAlreadyPaid so the caller can decide to
// treat it as a no-op. Missing payment details are a validation failure, not
// a state conflict.
func (s *ProductSubscription) Approve() error {
	if s.IsPaid {
		return domain.ErrAlreadyPaid
	}
	if !s.HasPaymentDetails() {
		return domain.ErrInvalidArgument
	}
	s.IsPaid = true
	s.UpdatedAt = time.Now()
	return nil
}

// NewProductSubscription builds an unpaid draft booking. Pricing fields are
// the caller's responsibility (computed by the pricing engine) so that the
// preview path and the commit path cannot diverge.
func NewProductSubscription(productID string, customer Customer, bookingTrxID string, price, tax, total int64, durationMonths int) (*ProductSubscription, error) {
	if productID == "" || bookingTrxID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if price < 0 || tax < 0 || total < 0 || durationMonths <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &ProductSubscription{
		ID:             uuid.NewString(),
		ProductID:      productID,
		Price:          price,
		TotalTaxAmount: tax,
		TotalAmount:    total,
		DurationMonths: durationMonths,
		Customer:       customer,
		BookingTrxID:   bookingTrxID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
