// File: internal/usecase/catalog_uc.go
package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bayusbkt/patungan-bay/internal/domain"
	"github.com/bayusbkt/patungan-bay/internal/domain/model"
	"github.com/bayusbkt/patungan-bay/internal/domain/ports/repository"
)

// Compile-time check
var _ CatalogUseCase = (*catalogUC)(nil)

// CreateProductInput carries the writable fields of a product.
type CreateProductInput struct {
	Name           string
	Tagline        string
	About          string
	Price          int64
	Capacity       int
	DurationMonths int
	IsPopular      bool
	Keypoints      []string
	Thumbnail      string
	Photo          string
}

// ProductDetail is a product joined with its computed pricing preview.
// PricingDefined is false when capacity is zero and no quote exists.
type ProductDetail struct {
	Product        *model.Product
	PricingDefined bool
	Quote          Quote
}

type CatalogUseCase interface {
	Create(ctx context.Context, in CreateProductInput) (*model.Product, error)
	Update(ctx context.Context, id string, in CreateProductInput) (*model.Product, error)
	Detail(ctx context.Context, id string) (*ProductDetail, error)
	List(ctx context.Context) ([]*model.Product, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}

type catalogUC struct {
	products repository.ProductRepository
	pricing  PricingUseCase

	log *zerolog.Logger
}

func NewCatalogUseCase(products repository.ProductRepository, pricing PricingUseCase, logger *zerolog.Logger) *catalogUC {
	return &catalogUC{products: products, pricing: pricing, log: logger}
}

func (c *catalogUC) Create(ctx context.Context, in CreateProductInput) (*model.Product, error) {
	p, err := model.NewProduct(in.Name, in.Tagline, in.About, in.Price, in.Capacity, in.DurationMonths, in.Keypoints)
	if err != nil {
		return nil, err
	}
	p.IsPopular = in.IsPopular
	p.Thumbnail = in.Thumbnail
	p.Photo = in.Photo
	if err := c.products.Save(ctx, repository.NoTX, p); err != nil {
		c.log.Error().Err(err).Str("name", in.Name).Msg("catalog: save product failed")
		return nil, err
	}
	c.log.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("catalog: product created")
	return p, nil
}

// Update rewrites the product's writable fields. Existing bookings keep their
// price snapshots; only future quotes see the change.
func (c *catalogUC) Update(ctx context.Context, id string, in CreateProductInput) (*model.Product, error) {
	p, err := c.products.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return nil, err
	}
	upd, err := model.NewProduct(in.Name, in.Tagline, in.About, in.Price, in.Capacity, in.DurationMonths, in.Keypoints)
	if err != nil {
		return nil, err
	}
	p.Name = upd.Name
	p.Tagline = upd.Tagline
	p.About = upd.About
	p.Price = upd.Price
	p.Capacity = upd.Capacity
	p.DurationMonths = upd.DurationMonths
	p.IsPopular = in.IsPopular
	p.Keypoints = upd.Keypoints
	if in.Thumbnail != "" {
		p.Thumbnail = in.Thumbnail
	}
	if in.Photo != "" {
		p.Photo = in.Photo
	}
	p.UpdatedAt = time.Now()
	if err := c.products.Update(ctx, repository.NoTX, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *catalogUC) Detail(ctx context.Context, id string) (*ProductDetail, error) {
	p, err := c.products.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return nil, err
	}
	d := &ProductDetail{Product: p}
	if pp, ok := c.pricing.PerPerson(p); ok {
		d.PricingDefined = true
		d.Quote = c.pricing.Quote(pp)
	}
	return d, nil
}

func (c *catalogUC) List(ctx context.Context) ([]*model.Product, error) {
	return c.products.ListAll(ctx, repository.NoTX)
}

func (c *catalogUC) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidArgument
	}
	if err := c.products.SoftDelete(ctx, repository.NoTX, id); err != nil {
		return err
	}
	c.log.Info().Str("product_id", id).Msg("catalog: product soft-deleted")
	return nil
}

func (c *catalogUC) Restore(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidArgument
	}
	return c.products.Restore(ctx, repository.NoTX, id)
}
