package schedule

// InboundSMSRequest is the webhook payload for one inbound reply. Field names
// follow the upstream SMS provider's notification format.
type InboundSMSRequest struct {
	OriginationNumber string `json:"originationNumber" validate:"required"`
	MessageBody       string `json:"messageBody"`
	InboundMessageID  string `json:"inboundMessageId"`
}
