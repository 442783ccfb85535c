package schedule

import (
	"context"

	"patient-followup/logger"
)

// Listener is the in-process encounter-created feed: a buffered channel
// drained by one goroutine that runs the expansion engine. Notify never
// blocks the producer; when the buffer is full the notification is dropped
// with a log line, and the producer is expected to re-deliver.
type Listener struct {
	expander *Expander
	channel  chan EncounterCreated
}

// NewListener creates a new encounter listener
func NewListener(expander *Expander) *Listener {
	return &Listener{
		expander: expander,
		channel:  make(chan EncounterCreated, 100), // Buffered channel to hold notifications
	}
}

// Notify enqueues one encounter-created notification.
func (l *Listener) Notify(notification EncounterCreated) {
	select {
	case l.channel <- notification:
	default:
		logger.Warning("Encounter feed buffer full, dropping notification for encounter " + notification.EncounterID)
	}
}

// Run drains the feed until the context is cancelled. Expansion failures are
// logged per encounter and do not stop the loop.
func (l *Listener) Run(ctx context.Context) {
	logger.Info("Starting encounter listener...")
	for {
		select {
		case <-ctx.Done():
			logger.Info("Encounter listener stopped")
			return
		case notification := <-l.channel:
			if err := l.expander.Expand(ctx, notification); err != nil {
				logger.Error("Failed to expand encounter "+notification.EncounterID, err)
			}
		}
	}
}
