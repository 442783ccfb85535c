package httpServices

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// ConnectClient talks to the contact-routing service that queues voice tasks
// for agents. Instance and contact-flow IDs are fixed per deployment.
type ConnectClient struct {
	httpClient    *http.Client
	baseURL       string
	instanceID    string
	contactFlowID string
}

func NewConnectClient(baseURL, instanceID, contactFlowID string) *ConnectClient {
	return &ConnectClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:       baseURL,
		instanceID:    instanceID,
		contactFlowID: contactFlowID,
	}
}

// CreateTask queues one voice task. No delivery confirmation is expected; the
// contact-routing side owns the call from here.
func (c *ConnectClient) CreateTask(ctx context.Context, name string, attributes map[string]string) error {
	req := StartTaskRequest{
		InstanceID:    c.instanceID,
		ContactFlowID: c.contactFlowID,
		Name:          name,
		Attributes:    attributes,
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/tasks", bytes.NewBuffer(payload))
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
		return errors.New("contact-routing API returned non-OK status: " + resp.Status)
	}

	var apiResp StartTaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return err
	}

	return nil
}
