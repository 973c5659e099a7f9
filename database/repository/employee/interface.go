package employeeRepo

import (
	"context"

	"joeyjob/models"
)

// EmployeeRepository manages the local mirror of the external system's
// employee roster.
type EmployeeRepository interface {
	GetByExternalID(ctx context.Context, orgID, externalID string) (*models.Employee, error)
	// GetEnabledByExternalIDs returns the enabled employees among the given
	// external ids, preserving the order of the input slice.
	GetEnabledByExternalIDs(ctx context.Context, orgID string, externalIDs []string) ([]models.Employee, error)
	ListByOrganization(ctx context.Context, orgID string) ([]models.Employee, error)
	Upsert(ctx context.Context, employee *models.Employee) error
	SetEnabled(ctx context.Context, orgID, externalID string, enabled bool) error
}
