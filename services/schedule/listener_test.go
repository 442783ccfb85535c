package schedule

import (
	"context"
	"testing"
	"time"

	"patient-followup/models/protocol"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenerExpandsNotifications(t *testing.T) {
	store := newFakeStore()
	notification := testFixtures(store, 30, protocol.Event{
		ID:                     "event-1",
		ProtocolID:             "proto-1",
		Type:                   protocol.EventTypeSMS,
		Content:                "weekly reminder",
		RecurringFrequencyDays: 7,
		Recurring:              true,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewListener(NewExpander(store))
	go listener.Run(ctx)

	listener.Notify(notification)

	require.Eventually(t, func() bool {
		return store.batchCount() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Len(t, store.persistedItems(), 4)
}

func TestListenerKeepsRunningAfterExpansionFailure(t *testing.T) {
	store := newFakeStore()
	notification := testFixtures(store, 30, protocol.Event{
		ID:                     "event-1",
		ProtocolID:             "proto-1",
		Type:                   protocol.EventTypeSMS,
		Content:                "weekly reminder",
		RecurringFrequencyDays: 7,
		Recurring:              true,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewListener(NewExpander(store))
	go listener.Run(ctx)

	bad := notification
	bad.ProtocolID = "missing"
	listener.Notify(bad)
	listener.Notify(notification)

	require.Eventually(t, func() bool {
		return store.batchCount() == 1
	}, time.Second, 10*time.Millisecond)
}
