package models

import "time"

// Employee mirrors an employee from the external field-service system into
// the organization's local roster. ExternalID is the field-service system's
// identifier and is what service nodes reference.
type Employee struct {
	ID             string    `bson:"id" json:"id"`
	OrganizationID string    `bson:"organization_id" json:"organizationId"`
	ExternalID     string    `bson:"external_id" json:"externalId"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email,omitempty" json:"email,omitempty"`
	Enabled        bool      `bson:"enabled" json:"enabled"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}

// Candidate is the ephemeral tuple produced while selecting an employee for a
// slot. It lives only within a single selection invocation and is never
// persisted.
type Candidate struct {
	EmployeeID  string `json:"employeeId"` // external id
	IsDefault   bool   `json:"isDefault"`
	IsAvailable bool   `json:"isAvailable"`
}
