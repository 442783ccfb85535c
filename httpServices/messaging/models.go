package httpServices

// SendMessageRequest is the messaging gateway payload for both channels.
type SendMessageRequest struct {
	Address           string `json:"address"`
	ChannelType       string `json:"channel_type"` // SMS or EMAIL
	Body              string `json:"body"`
	Subject           string `json:"subject,omitempty"`
	OriginationNumber string `json:"origination_number,omitempty"`
	FromAddress       string `json:"from_address,omitempty"`
	MessageType       string `json:"message_type,omitempty"`
}

// SendMessageResponse is the gateway's acknowledgement.
type SendMessageResponse struct {
	MessageID  string `json:"message_id"`
	Status     string `json:"status"`
	StatusText string `json:"status_text,omitempty"`
}
