// File: internal/infra/notify/webhook_notifier.go
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bayusbkt/patungan-bay/internal/domain/model"
	"github.com/bayusbkt/patungan-bay/internal/domain/ports/adapter"
)

var _ adapter.ApprovalNotifier = (*WebhookNotifier)(nil)

// WebhookNotifier implements adapter.ApprovalNotifier by POSTing a JSON
// payload to a configured endpoint when a booking is approved.
type WebhookNotifier struct {
	endpoint string
	client   *http.Client
}

func NewWebhookNotifier(endpoint string, timeout time.Duration) (*WebhookNotifier, error) {
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid webhook url: %w", err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &WebhookNotifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

func (n *WebhookNotifier) Name() string { return "webhook" }

func (n *WebhookNotifier) NotifyApproved(ctx context.Context, sub *model.ProductSubscription) error {
	payload := map[string]any{
		"event":           "booking.approved",
		"subscription_id": sub.ID,
		"booking_trx_id":  sub.BookingTrxID,
		"product_id":      sub.ProductID,
		"customer_name":   sub.Customer.Name,
		"customer_email":  sub.Customer.Email,
		"total_amount":    sub.TotalAmount,
		"approved_at":     sub.UpdatedAt,
	}
	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}
