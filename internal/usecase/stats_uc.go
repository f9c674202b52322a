// File: internal/usecase/stats_uc.go
package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bayusbkt/patungan-bay/internal/domain/ports/repository"
)

// Compile-time check
var _ StatsUseCase = (*statsUC)(nil)

// DashboardStats mirrors the admin overview widget: booking counts plus
// revenue summed over approved bookings.
type DashboardStats struct {
	TotalBookings    int   `json:"total_bookings"`
	ApprovedBookings int   `json:"approved_bookings"`
	Revenue          int64 `json:"revenue"`
	UnpaidBookings   int   `json:"unpaid_bookings"`
	OpenGroups       int   `json:"open_groups"`
	FullGroups       int   `json:"full_groups"`
}

type StatsUseCase interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type statsUC struct {
	subs   repository.SubscriptionRepository
	groups repository.GroupRepository

	log *zerolog.Logger
}

func NewStatsUseCase(subs repository.SubscriptionRepository, groups repository.GroupRepository, logger *zerolog.Logger) *statsUC {
	return &statsUC{subs: subs, groups: groups, log: logger}
}

func (s *statsUC) Dashboard(ctx context.Context) (*DashboardStats, error) {
	agg, err := s.subs.Stats(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	unpaid, err := s.subs.CountUnpaid(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	open, full, err := s.groups.CountByFullness(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		TotalBookings:    agg.Total,
		ApprovedBookings: agg.Approved,
		Revenue:          agg.Revenue,
		UnpaidBookings:   unpaid,
		OpenGroups:       open,
		FullGroups:       full,
	}, nil
}
