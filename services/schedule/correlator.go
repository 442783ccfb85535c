package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"patient-followup/logger"
)

// ResponsePolicy controls what the correlator does when a reply arrives for a
// confirmation record that does not exist.
type ResponsePolicy string

const (
	// ResponsePolicyUpsert creates the record with only the updated fields.
	// This is the default, preserving live behavior.
	ResponsePolicyUpsert ResponsePolicy = "upsert"
	// ResponsePolicyStrict drops the reply with a log line.
	ResponsePolicyStrict ResponsePolicy = "strict"
)

// Correlator consumes inbound SMS replies and updates the confirmation record
// they refer to. Parsing is intentionally naive: first token (uppercased) is
// the status, second token is the code, anything after that is ignored.
type Correlator struct {
	Responses ResponseStore
	Policy    ResponsePolicy
}

// NewCorrelator creates a new confirmation correlator
func NewCorrelator(responses ResponseStore, policy ResponsePolicy) *Correlator {
	if policy == "" {
		policy = ResponsePolicyUpsert
	}
	return &Correlator{Responses: responses, Policy: policy}
}

// HandleInbound correlates one inbound reply. Malformed bodies and (under the
// strict policy) unknown keys are operator-visible in logs only; neither is an
// error to the feed.
func (c *Correlator) HandleInbound(ctx context.Context, message InboundSMS) error {
	tokens := strings.Fields(message.MessageBody)
	if len(tokens) < 2 {
		logger.Warning("Dropping inbound SMS from " + message.OriginationNumber + " with malformed body: " + message.MessageBody)
		return nil
	}

	status := strings.ToUpper(tokens[0])
	code := tokens[1]
	id := message.OriginationNumber + code

	upsert := c.Policy != ResponsePolicyStrict
	err := c.Responses.UpdateResponseFields(ctx, id, status, message.InboundMessageID, upsert)
	if err != nil {
		if errors.Is(err, ErrResponseNotFound) {
			logger.Warning("No event response found for key " + id + ", dropping reply")
			return nil
		}
		return fmt.Errorf("update event response %s: %w", id, err)
	}

	logger.Printf("Event response %s updated to %s", id, status)
	return nil
}
