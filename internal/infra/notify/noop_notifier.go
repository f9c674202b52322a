package notify

import (
	"context"
	"sync"

	"github.com/bayusbkt/patungan-bay/internal/domain/model"
	"github.com/bayusbkt/patungan-bay/internal/domain/ports/adapter"
)

var _ adapter.ApprovalNotifier = (*NoopNotifier)(nil)

// NoopNotifier swallows notifications; used when no webhook is configured and
// in tests.
type NoopNotifier struct {
	mu       sync.Mutex
	approved []string
}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (n *NoopNotifier) Name() string { return "noop" }

func (n *NoopNotifier) NotifyApproved(ctx context.Context, sub *model.ProductSubscription) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.approved = append(n.approved, sub.ID)
	return nil
}

// Approved returns the booking ids seen so far.
func (n *NoopNotifier) Approved() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.approved))
	copy(out, n.approved)
	return out
}
