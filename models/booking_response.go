package models

// SubmissionResult is returned by the booking engine on a successful submit.
// EmployeeAssigned is false only on the degraded path, when the external
// commit failed and the booking stayed pending for a later sync retry.
type SubmissionResult struct {
	Success            bool     `json:"success"`
	Booking            *Booking `json:"booking"`
	EmployeeAssigned   bool     `json:"employeeAssigned"`
	EmployeeExternalID string   `json:"employeeExternalId,omitempty"`
	ExternalJobID      string   `json:"externalJobId,omitempty"`
	ExternalCustomerID string   `json:"externalCustomerId,omitempty"`
	ExternalScheduleID string   `json:"externalScheduleId,omitempty"`
	ConfirmationCode   string   `json:"confirmationCode"`
}

// SelectionResult is the outcome of one employee selection run: the employee
// chosen by the rank-then-pick-first rule plus every candidate that was
// available for the slot.
type SelectionResult struct {
	SelectedEmployee   string   `json:"selectedEmployee"`
	AvailableEmployees []string `json:"availableEmployees"`
}
