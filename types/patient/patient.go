package patient

// CreatePatientRequest represents the request payload for registering a patient
type CreatePatientRequest struct {
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required,min=10,max=20"`
	EmailID     string `json:"email_id" validate:"omitempty,email"`
}
