package event

import (
	"testing"

	"github.com/escrowdesk/backend/internal/domain/escrow"
	"github.com/escrowdesk/backend/internal/domain/listing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSellerID() uuid.UUID {
	return uuid.New()
}

func TestEventSerializer_RoundTrip(t *testing.T) {
	serializer := NewEventSerializerWithDefaults()

	account, err := listing.NewAccount(newTestSellerID(), listing.PlatformChannel, "Tech News Channel", 50000)
	require.NoError(t, err)
	original := listing.NewAccountListedEvent(account)

	payload, err := serializer.Serialize(original)
	require.NoError(t, err)

	restored, err := serializer.Deserialize(listing.EventTypeAccountListed, payload)
	require.NoError(t, err)

	listed, ok := restored.(*listing.AccountListedEvent)
	require.True(t, ok)
	assert.Equal(t, original.EventID(), listed.EventID())
	assert.Equal(t, original.SellerID, listed.SellerID)
	assert.Equal(t, int64(50000), listed.Price)
}

func TestEventSerializer_UnknownType(t *testing.T) {
	serializer := NewEventSerializer()

	_, err := serializer.Deserialize("listing.account_listed", []byte(`{}`))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event type")
}

func TestEventSerializer_DefaultsCoverAllDomainEvents(t *testing.T) {
	serializer := NewEventSerializerWithDefaults()

	for _, eventType := range []string{
		listing.EventTypeAccountListed,
		listing.EventTypeAccountReserved,
		listing.EventTypeReservationExpired,
		listing.EventTypeAccountDeleted,
		escrow.EventTypeOrderCreated,
		escrow.EventTypeOrderCompleted,
		escrow.EventTypeOrderCancelled,
		escrow.EventTypeWithdrawalRequested,
	} {
		assert.True(t, serializer.IsRegistered(eventType), eventType)
	}
}
