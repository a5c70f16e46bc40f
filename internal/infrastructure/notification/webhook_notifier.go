// Package notification delivers domain events to the chat-bot front end.
package notification

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/escrowdesk/backend/internal/domain/escrow"
	"github.com/escrowdesk/backend/internal/domain/listing"
	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/escrowdesk/backend/internal/infrastructure/config"
)

// signatureHeader carries the hex-encoded HMAC-SHA256 of the request body
const signatureHeader = "X-Escrowdesk-Signature"

// WebhookNotifier posts domain events to the bot front end so it can message
// the people involved. It is an EventHandler; the outbox processor drives
// delivery and retries, so a failed POST just returns an error.
type WebhookNotifier struct {
	url        string
	secret     string
	httpClient *http.Client
	logger     *zap.Logger
}

// webhookEnvelope is the wire shape of a delivered event
type webhookEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// NewWebhookNotifier creates a new webhook notifier
func NewWebhookNotifier(cfg *config.WebhookConfig, logger *zap.Logger) *WebhookNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WebhookNotifier{
		url:    cfg.URL,
		secret: cfg.Secret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// EventTypes returns the events the bot front end is notified about
func (n *WebhookNotifier) EventTypes() []string {
	return []string{
		listing.EventTypeAccountReserved,
		listing.EventTypeReservationExpired,
		escrow.EventTypeOrderCreated,
		escrow.EventTypeOrderCompleted,
		escrow.EventTypeOrderCancelled,
		escrow.EventTypeWithdrawalRequested,
	}
}

// Handle delivers a single event to the webhook endpoint
func (n *WebhookNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("webhook: failed to marshal event: %w", err)
	}

	body, err := json.Marshal(webhookEnvelope{
		EventID:       event.EventID().String(),
		EventType:     event.EventType(),
		AggregateID:   event.AggregateID().String(),
		AggregateType: event.AggregateType(),
		OccurredAt:    event.OccurredAt(),
		Payload:       payload,
	})
	if err != nil {
		return fmt.Errorf("webhook: failed to marshal envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(signatureHeader, Sign(n.secret, body))

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: delivery failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook: endpoint returned HTTP %d", resp.StatusCode)
	}

	n.logger.Debug("event delivered to bot front end",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
	)

	return nil
}

// Sign computes the hex-encoded HMAC-SHA256 of a webhook body
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Ensure WebhookNotifier implements EventHandler
var _ shared.EventHandler = (*WebhookNotifier)(nil)
