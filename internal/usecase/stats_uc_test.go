//go:build !integration

// File: internal/usecase/stats_uc_test.go
package usecase

import (
	"context"
	"testing"
)

func TestStats_Dashboard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fx := newAllocFixture(t)
	uc := NewStatsUseCase(fx.subs, fx.groups, testLogger())

	// empty ledger
	st, err := uc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if st.TotalBookings != 0 || st.ApprovedBookings != 0 || st.Revenue != 0 {
		t.Fatalf("empty dashboard: %+v", st)
	}

	// two approved and allocated, one left as draft
	for i := 0; i < 2; i++ {
		sub := fx.approvedBooking(t)
		if _, err := fx.uc.Allocate(ctx, sub.ID, 1); err != nil {
			t.Fatalf("Allocate: %v", err)
		}
	}
	if _, err := fx.ledger.CreateDraft(ctx, fx.product.ID, testCustomer()); err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}

	st, err = uc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if st.TotalBookings != 3 {
		t.Fatalf("total = %d", st.TotalBookings)
	}
	if st.ApprovedBookings != 2 {
		t.Fatalf("approved = %d", st.ApprovedBookings)
	}
	// revenue counts approved totals only: 2 * 222,000
	if st.Revenue != 444_000 {
		t.Fatalf("revenue = %d", st.Revenue)
	}
	if st.UnpaidBookings != 1 {
		t.Fatalf("unpaid = %d", st.UnpaidBookings)
	}
	if st.OpenGroups != 1 || st.FullGroups != 0 {
		t.Fatalf("groups: open=%d full=%d", st.OpenGroups, st.FullGroups)
	}
}
