package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bayusbkt/patungan-bay/internal/domain"
)

// Product is a capacity-limited offering sold per slot. Price is the total
// price for the whole capacity, in whole IDR.
type Product struct {
	ID             string
	Name           string
	Tagline        string
	About          string
	Price          int64
	Capacity       int
	DurationMonths int
	IsPopular      bool
	Keypoints      []string // ordered, each non-empty
	Thumbnail      string   // opaque asset handle
	Photo          string   // opaque asset handle
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

func (p *Product) IsZero() bool    { return p == nil || p.ID == "" }
func (p *Product) IsDeleted() bool { return p != nil && p.DeletedAt != nil }

// PricePerPerson derives the unit sale price. ok is false when capacity is 0:
// the per-person price is undefined, never a division panic.
func (p *Product) PricePerPerson() (int64, bool) {
	if p.Capacity <= 0 {
		return 0, false
	}
	return p.Price / int64(p.Capacity), true
}

// NewProduct validates and constructs a product.
func NewProduct(name, tagline, about string, price int64, capacity, durationMonths int, keypoints []string) (*Product, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(tagline) == "" {
		return nil, domain.ErrInvalidArgument
	}
	if price <= 0 || capacity <= 0 || durationMonths <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	for _, kp := range keypoints {
		if strings.TrimSpace(kp) == "" {
			return nil, domain.ErrInvalidArgument
		}
	}
	now := time.Now()
	return &Product{
		ID:             uuid.NewString(),
		Name:           name,
		Tagline:        tagline,
		About:          about,
		Price:          price,
		Capacity:       capacity,
		DurationMonths: durationMonths,
		Keypoints:      keypoints,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
