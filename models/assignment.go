package models

import "time"

// Assignment sync statuses.
const (
	SyncStatusSynced  = "synced"
	SyncStatusPending = "pending"
	SyncStatusFailed  = "failed"
)

// Assignment links a committed booking to the employee chosen for it and
// records the identifiers the external field-service system returned. Exactly
// one assignment exists per confirmed booking.
type Assignment struct {
	ID                 string    `bson:"id" json:"id"`
	BookingID          string    `bson:"booking_id" json:"bookingId"`
	OrganizationID     string    `bson:"organization_id" json:"organizationId"`
	EmployeeExternalID string    `bson:"employee_external_id" json:"employeeExternalId"`
	ExternalJobID      string    `bson:"external_job_id,omitempty" json:"externalJobId,omitempty"`
	ExternalCustomerID string    `bson:"external_customer_id,omitempty" json:"externalCustomerId,omitempty"`
	ExternalScheduleID string    `bson:"external_schedule_id,omitempty" json:"externalScheduleId,omitempty"`
	ExternalSiteID     string    `bson:"external_site_id,omitempty" json:"externalSiteId,omitempty"`
	SyncStatus         string    `bson:"sync_status" json:"syncStatus"`
	SyncError          string    `bson:"sync_error,omitempty" json:"syncError,omitempty"`
	CreatedAt          time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updatedAt"`
}
