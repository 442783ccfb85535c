package schedule

import (
	"context"
	"errors"
	"testing"

	scheduleModel "patient-followup/models/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleInboundConfirmation(t *testing.T) {
	responses := newFakeResponseStore()
	responses.responses["+155512345674821"] = &scheduleModel.EventResponse{
		ID:                 "+155512345674821",
		PhoneNumber:        "+15551234567",
		ConfirmationStatus: scheduleModel.ConfirmationStatusAwaited,
	}

	c := NewCorrelator(responses, "")
	err := c.HandleInbound(context.Background(), InboundSMS{
		OriginationNumber: "+15551234567",
		MessageBody:       "ok 4821",
		InboundMessageID:  "msg-001",
	})
	require.NoError(t, err)

	require.Len(t, responses.updates, 1)
	update := responses.updates[0]
	assert.Equal(t, "+155512345674821", update.id)
	assert.Equal(t, "OK", update.confirmationStatus, "status token is uppercased")
	assert.Equal(t, "msg-001", update.inboundMessageID)
	assert.True(t, update.upsert)

	updated := responses.responses["+155512345674821"]
	assert.Equal(t, "OK", updated.ConfirmationStatus)
	require.NotNil(t, updated.InboundMessageID)
	assert.Equal(t, "msg-001", *updated.InboundMessageID)
}

func TestHandleInboundCancellation(t *testing.T) {
	responses := newFakeResponseStore()
	c := NewCorrelator(responses, ResponsePolicyUpsert)

	err := c.HandleInbound(context.Background(), InboundSMS{
		OriginationNumber: "+15551234567",
		MessageBody:       "Cancel 9900 thanks",
		InboundMessageID:  "msg-002",
	})
	require.NoError(t, err)

	// Upsert: no dispatcher record existed, a sparse one is created.
	response, ok := responses.responses["+155512345679900"]
	require.True(t, ok)
	assert.Equal(t, scheduleModel.ConfirmationStatusCancel, response.ConfirmationStatus)
}

func TestHandleInboundMalformedBodyDropped(t *testing.T) {
	responses := newFakeResponseStore()
	c := NewCorrelator(responses, ResponsePolicyUpsert)

	for _, body := range []string{"", "   ", "OK"} {
		err := c.HandleInbound(context.Background(), InboundSMS{
			OriginationNumber: "+15551234567",
			MessageBody:       body,
		})
		require.NoError(t, err)
	}
	assert.Empty(t, responses.updates)
}

func TestHandleInboundStrictPolicyDropsUnknownKey(t *testing.T) {
	responses := newFakeResponseStore()
	c := NewCorrelator(responses, ResponsePolicyStrict)

	err := c.HandleInbound(context.Background(), InboundSMS{
		OriginationNumber: "+15551234567",
		MessageBody:       "OK 1111",
	})
	require.NoError(t, err)

	require.Len(t, responses.updates, 1)
	assert.False(t, responses.updates[0].upsert)
	assert.Empty(t, responses.responses)
}

func TestHandleInboundStoreError(t *testing.T) {
	responses := newFakeResponseStore()
	responses.updateErr = errors.New("connection reset")
	c := NewCorrelator(responses, ResponsePolicyUpsert)

	err := c.HandleInbound(context.Background(), InboundSMS{
		OriginationNumber: "+15551234567",
		MessageBody:       "OK 1111",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "update event response")
}

func TestNewCorrelatorDefaultsToUpsert(t *testing.T) {
	c := NewCorrelator(newFakeResponseStore(), "")
	assert.Equal(t, ResponsePolicyUpsert, c.Policy)
}
