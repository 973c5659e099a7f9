package models

import "time"

// BookingForm is an organization's published booking form: the service tree a
// customer picks from plus the question catalog used to resolve field labels.
type BookingForm struct {
	ID             string         `bson:"id" json:"id"`
	OrganizationID string         `bson:"organization_id" json:"organizationId"`
	Name           string         `bson:"name" json:"name"`
	Active         bool           `bson:"active" json:"active"`
	RootService    ServiceNode    `bson:"root_service" json:"rootService"`
	Questions      []FormQuestion `bson:"questions,omitempty" json:"questions,omitempty"`
	Timezone       string         `bson:"timezone" json:"timezone"`
	CreatedAt      time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time      `bson:"updated_at" json:"updatedAt"`
}

// FormQuestion describes one dynamically generated field on the form.
// FieldID is the generated id the client keys its responses by.
type FormQuestion struct {
	FieldID  string `bson:"field_id" json:"fieldId"`
	Label    string `bson:"label" json:"label"`
	Type     string `bson:"type" json:"type"` // "text", "contact", "address", ...
	Required bool   `bson:"required" json:"required"`
}
