package notification

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/escrowdesk/backend/internal/domain/listing"
	"github.com/escrowdesk/backend/internal/infrastructure/config"
)

func newNotifier(t *testing.T, url string) *WebhookNotifier {
	t.Helper()
	return NewWebhookNotifier(&config.WebhookConfig{
		Enabled: true,
		URL:     url,
		Secret:  "test-webhook-secret",
		Timeout: 2 * time.Second,
	}, zap.NewNop())
}

func newReservedEvent(t *testing.T) *listing.AccountReservedEvent {
	t.Helper()
	account, err := listing.NewAccount(uuid.New(), listing.PlatformChannel, "Tech News Channel", 50000)
	require.NoError(t, err)
	reservation := listing.NewReservation(account.ID, uuid.New(), time.Now().Add(10*time.Minute))
	return listing.NewAccountReservedEvent(account, reservation)
}

func TestWebhookNotifier_DeliversSignedEnvelope(t *testing.T) {
	event := newReservedEvent(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, Sign("test-webhook-secret", body), r.Header.Get(signatureHeader))

		var envelope webhookEnvelope
		require.NoError(t, json.Unmarshal(body, &envelope))
		assert.Equal(t, listing.EventTypeAccountReserved, envelope.EventType)
		assert.Equal(t, event.EventID().String(), envelope.EventID)
		assert.Equal(t, event.AggregateID().String(), envelope.AggregateID)

		var payload listing.AccountReservedEvent
		require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
		assert.Equal(t, event.BuyerID, payload.BuyerID)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := newNotifier(t, server.URL)

	err := notifier.Handle(context.Background(), event)
	assert.NoError(t, err)
}

func TestWebhookNotifier_EndpointErrorSurfacesForRetry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier := newNotifier(t, server.URL)

	err := notifier.Handle(context.Background(), newReservedEvent(t))
	assert.Error(t, err)
}

func TestWebhookNotifier_UnreachableEndpoint(t *testing.T) {
	notifier := newNotifier(t, "http://127.0.0.1:1/webhook")

	err := notifier.Handle(context.Background(), newReservedEvent(t))
	assert.Error(t, err)
}

func TestSign_IsDeterministic(t *testing.T) {
	body := []byte(`{"event":"x"}`)

	assert.Equal(t, Sign("secret", body), Sign("secret", body))
	assert.NotEqual(t, Sign("secret", body), Sign("other", body))
}
