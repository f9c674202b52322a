// File: internal/usecase/pricing_uc.go
package usecase

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/bayusbkt/patungan-bay/internal/domain"
	"github.com/bayusbkt/patungan-bay/internal/domain/model"
)

// Quote is the priced breakdown for one slot of a product. Amounts are whole
// IDR; TaxAmount is rounded half-up from the fractional intermediate.
type Quote struct {
	PricePerPerson int64 `json:"price_per_person"`
	TaxAmount      int64 `json:"tax_amount"`
	TotalAmount    int64 `json:"total_amount"`
}

// PricingUseCase computes per-person prices and tax totals. It is pure: the
// same input always yields the same quote, and both the product-detail
// preview and booking creation go through it so they cannot diverge.
type PricingUseCase interface {
	// PerPerson derives the unit price; ok is false when capacity is zero.
	PerPerson(product *model.Product) (int64, bool)

	// Quote applies the configured tax rate to a per-person price.
	Quote(pricePerPerson int64) Quote

	// QuoteProduct combines both steps; ErrInvalidArgument when the product
	// has no defined per-person price.
	QuoteProduct(ctx context.Context, product *model.Product) (Quote, error)
}

var _ PricingUseCase = (*pricingUC)(nil)

type pricingUC struct {
	taxRate float64
	log     *zerolog.Logger
}

// NewPricingUseCase constructs the engine with an injected tax rate
// (billing.tax_rate in config; 0.11 for Indonesian PPN).
func NewPricingUseCase(taxRate float64, logger *zerolog.Logger) PricingUseCase {
	return &pricingUC{taxRate: taxRate, log: logger}
}

func (p *pricingUC) PerPerson(product *model.Product) (int64, bool) {
	if product == nil {
		return 0, false
	}
	return product.PricePerPerson()
}

func (p *pricingUC) Quote(pricePerPerson int64) Quote {
	tax := int64(math.Round(float64(pricePerPerson) * p.taxRate))
	return Quote{
		PricePerPerson: pricePerPerson,
		TaxAmount:      tax,
		TotalAmount:    pricePerPerson + tax,
	}
}

func (p *pricingUC) QuoteProduct(ctx context.Context, product *model.Product) (Quote, error) {
	pp, ok := p.PerPerson(product)
	if !ok {
		return Quote{}, domain.ErrInvalidArgument
	}
	return p.Quote(pp), nil
}
