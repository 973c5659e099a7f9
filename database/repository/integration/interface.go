package integrationRepo

import (
	"context"
	"time"

	"joeyjob/models"
)

// IntegrationRepository reads per-organization field-service credentials.
// An organization with no credentials row is in the "not configured" state,
// which the commit workflow must treat as a configuration error (or degraded
// mode), never as a generic failure.
type IntegrationRepository interface {
	GetCredentials(ctx context.Context, orgID string) (*models.IntegrationCredentials, error)
	SaveCredentials(ctx context.Context, creds *models.IntegrationCredentials) error
	UpdateAccessToken(ctx context.Context, orgID, accessToken string, expiresAt time.Time) error
}
