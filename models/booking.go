package models

import "time"

// Booking lifecycle statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
	BookingStatusNoShow    = "no_show"
)

// Booking represents one customer appointment, owned by an organization.
// The service fields are denormalized at booking time so the record stays
// readable even if the service tree is later edited.
type Booking struct {
	ID                 string         `bson:"id" json:"id"`
	OrganizationID     string         `bson:"organization_id" json:"organizationId"`
	ServiceID          string         `bson:"service_id" json:"serviceId"`
	ServiceName        string         `bson:"service_name" json:"serviceName"`
	ServiceDescription string         `bson:"service_description,omitempty" json:"serviceDescription,omitempty"`
	ServiceDuration    int            `bson:"service_duration" json:"serviceDuration"` // minutes
	ServicePrice       float64        `bson:"service_price" json:"servicePrice"`
	Customer           Customer       `bson:"customer" json:"customer"`
	BookingStartAt     time.Time      `bson:"booking_start_at" json:"bookingStartAt"` // UTC
	BookingEndAt       time.Time      `bson:"booking_end_at" json:"bookingEndAt"`     // UTC
	Timezone           string         `bson:"timezone" json:"timezone"`               // IANA label, e.g. "Australia/Brisbane"
	FormResponses      []FormResponse `bson:"form_responses,omitempty" json:"formResponses,omitempty"`
	Status             string         `bson:"status" json:"status"`
	// EmployeeExternalID is denormalized from the assignment at confirm time
	// so overlap queries run against a single collection.
	EmployeeExternalID string         `bson:"employee_external_id,omitempty" json:"employeeExternalId,omitempty"`
	ConfirmationCode   string         `bson:"confirmation_code" json:"confirmationCode"`
	Source             string         `bson:"source,omitempty" json:"source,omitempty"` // e.g. "form", "api"
	CreatedAt          time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time      `bson:"updated_at" json:"updatedAt"`
}

// Customer holds the contact fields captured by the booking form.
type Customer struct {
	FirstName string  `bson:"first_name" json:"firstName"`
	LastName  string  `bson:"last_name" json:"lastName"`
	Email     string  `bson:"email" json:"email"`
	Phone     string  `bson:"phone,omitempty" json:"phone,omitempty"`
	Address   Address `bson:"address,omitempty" json:"address,omitempty"`
}

// Address is the structured address sub-object extracted from form responses.
type Address struct {
	Line1    string `bson:"line1,omitempty" json:"line1,omitempty"`
	Line2    string `bson:"line2,omitempty" json:"line2,omitempty"`
	City     string `bson:"city,omitempty" json:"city,omitempty"`
	State    string `bson:"state,omitempty" json:"state,omitempty"`
	Postcode string `bson:"postcode,omitempty" json:"postcode,omitempty"`
	Country  string `bson:"country,omitempty" json:"country,omitempty"`
}

// FormResponse is one answered question, denormalized with its label at
// submission time so rendering never needs the original form schema again.
type FormResponse struct {
	FieldID string `bson:"field_id" json:"fieldId"`
	Label   string `bson:"label" json:"label"`
	Value   string `bson:"value" json:"value"`
}
