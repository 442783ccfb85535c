package httpServices

// StartTaskRequest asks the contact-routing service to create one voice task.
type StartTaskRequest struct {
	InstanceID    string            `json:"instance_id"`
	ContactFlowID string            `json:"contact_flow_id"`
	Name          string            `json:"name"`
	Attributes    map[string]string `json:"attributes"`
}

// StartTaskResponse acknowledges a created task.
type StartTaskResponse struct {
	ContactID string `json:"contact_id"`
}
