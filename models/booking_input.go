package models

// BookingSubmission is the payload accepted by the booking submission
// endpoint. Responses are keyed by the form's generated field ids; contact
// and address arrive as nested sub-objects under their field ids.
type BookingSubmission struct {
	OrganizationID string                 `json:"organizationId" binding:"required"`
	ServiceID      string                 `json:"serviceId" binding:"required"`
	Date           string                 `json:"date" binding:"required"` // "2006-01-02"
	Time           string                 `json:"time" binding:"required"` // "h:mm am/pm"
	Responses      map[string]interface{} `json:"responses"`
	Source         string                 `json:"source,omitempty"`
	// IdempotencyKey guards the external job creation against client retries.
	// Optional; one is derived from the submission when absent.
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}
