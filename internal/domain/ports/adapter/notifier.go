package adapter

import (
	"context"

	"github.com/bayusbkt/patungan-bay/internal/domain/model"
)

// ApprovalNotifier is the seam to the external notification collaborator.
// Delivery (email, dashboard push, …) is out of scope for the core; failures
// are logged by the caller and never fail the approval itself.
type ApprovalNotifier interface {
	Name() string
	NotifyApproved(ctx context.Context, sub *model.ProductSubscription) error
}
