package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bayusbkt/patungan-bay/internal/domain/ports/repository"
	"github.com/bayusbkt/patungan-bay/internal/infra/metrics"
)

// GaugeWorker periodically refreshes the prometheus gauges from the database.
// Read-only; it never mutates business state.
type GaugeWorker struct {
	interval time.Duration
	subs     repository.SubscriptionRepository
	groups   repository.GroupRepository
	log      *zerolog.Logger
}

func NewGaugeWorker(interval time.Duration, subs repository.SubscriptionRepository, groups repository.GroupRepository, logger *zerolog.Logger) *GaugeWorker {
	compLog := logger.With().Str("component", "GaugeWorker").Logger()
	if interval <= 0 {
		interval = time.Minute
	}
	return &GaugeWorker{
		interval: interval,
		subs:     subs,
		groups:   groups,
		log:      &compLog,
	}
}

func (w *GaugeWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting gauge worker")
	// Run once on startup, then on every tick
	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping gauge worker")
			return ctx.Err()
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *GaugeWorker) refresh(ctx context.Context) {
	if unpaid, err := w.subs.CountUnpaid(ctx, repository.NoTX); err != nil {
		w.log.Error().Err(err).Msg("gauge refresh: count unpaid failed")
	} else {
		metrics.SetBookingsUnpaid(unpaid)
	}

	if open, full, err := w.groups.CountByFullness(ctx, repository.NoTX); err != nil {
		w.log.Error().Err(err).Msg("gauge refresh: count groups failed")
	} else {
		metrics.SetGroupsByFullness(open, full)
	}
}
