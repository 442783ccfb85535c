package httpServices

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// MessagingClient talks to the outbound messaging gateway (SMS and email).
type MessagingClient struct {
	httpClient        *http.Client
	baseURL           string
	originationNumber string
	fromEmail         string
}

func NewMessagingClient(baseURL, originationNumber, fromEmail string) *MessagingClient {
	return &MessagingClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:           baseURL,
		originationNumber: originationNumber,
		fromEmail:         fromEmail,
	}
}

// SendSMS sends one transactional SMS to the given phone number.
func (c *MessagingClient) SendSMS(ctx context.Context, phoneNumber, body string) error {
	req := SendMessageRequest{
		Address:           phoneNumber,
		ChannelType:       "SMS",
		Body:              body,
		OriginationNumber: c.originationNumber,
		MessageType:       "TRANSACTIONAL",
	}
	return c.send(ctx, req)
}

// SendEmail sends one email; the from address is the client's configured one.
func (c *MessagingClient) SendEmail(ctx context.Context, emailID, subject, body string) error {
	req := SendMessageRequest{
		Address:     emailID,
		ChannelType: "EMAIL",
		Body:        body,
		Subject:     subject,
		FromAddress: c.fromEmail,
	}
	return c.send(ctx, req)
}

func (c *MessagingClient) send(ctx context.Context, req SendMessageRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/messages", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return errors.New("messaging gateway returned non-OK status: " + resp.Status)
	}

	var apiResp SendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return err
	}

	return nil
}
