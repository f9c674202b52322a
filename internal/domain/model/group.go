package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bayusbkt/patungan-bay/internal/domain"
)

// SubscriptionGroup pools paid bookings for one product up to the product's
// capacity. MaxCapacity is copied from the product at group-open time so a
// later product edit cannot shrink a live group under its members.
type SubscriptionGroup struct {
	ID               string
	ProductID        string
	SubscriptionID   string // originating booking
	MaxCapacity      int
	ParticipantCount int
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

func (g *SubscriptionGroup) IsZero() bool    { return g == nil || g.ID == "" }
func (g *SubscriptionGroup) IsDeleted() bool { return g != nil && g.DeletedAt != nil }

// IsFull is derived from ParticipantCount on every read; it is never stored.
func (g *SubscriptionGroup) IsFull() bool {
	return g.ParticipantCount >= g.MaxCapacity
}

func (g *SubscriptionGroup) RemainingSlots() int {
	if n := g.MaxCapacity - g.ParticipantCount; n > 0 {
		return n
	}
	return 0
}

// NewSubscriptionGroup opens a group for a product, seeded with startCount
// participants (the originating booking counts as one).
func NewSubscriptionGroup(productID, subscriptionID string, maxCapacity, startCount int) (*SubscriptionGroup, error) {
	if productID == "" || subscriptionID == "" || maxCapacity <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	if startCount <= 0 {
		startCount = 1
	}
	if startCount > maxCapacity {
		return nil, domain.ErrCapacityExceeded
	}
	now := time.Now()
	return &SubscriptionGroup{
		ID:               uuid.NewString(),
		ProductID:        productID,
		SubscriptionID:   subscriptionID,
		MaxCapacity:      maxCapacity,
		ParticipantCount: startCount,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// GroupMessage is a free-text note on a group's thread.
type GroupMessage struct {
	ID        string
	GroupID   string
	Message   string
	CreatedAt time.Time
	DeletedAt *time.Time
}

func NewGroupMessage(groupID, message string) (*GroupMessage, error) {
	if groupID == "" || strings.TrimSpace(message) == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &GroupMessage{
		ID:        uuid.NewString(),
		GroupID:   groupID,
		Message:   message,
		CreatedAt: time.Now(),
	}, nil
}

// GroupParticipant is one roster entry. It keeps a reference to the booking
// it came from plus a copy of the customer name, so the roster stays readable
// even after the booking is soft-deleted.
type GroupParticipant struct {
	ID             string
	GroupID        string
	SubscriptionID string
	Name           string
	CreatedAt      time.Time
}

func NewGroupParticipant(groupID, subscriptionID, name string) (*GroupParticipant, error) {
	if groupID == "" || subscriptionID == "" || strings.TrimSpace(name) == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &GroupParticipant{
		ID:             uuid.NewString(),
		GroupID:        groupID,
		SubscriptionID: subscriptionID,
		Name:           name,
		CreatedAt:      time.Now(),
	}, nil
}
