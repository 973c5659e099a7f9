package models

import "time"

// IntegrationCredentials holds one organization's connection to the external
// field-service system. BuildID maps the org to the right Simpro build;
// without it the integration counts as not configured.
type IntegrationCredentials struct {
	OrganizationID string    `bson:"organization_id" json:"organizationId"`
	Provider       string    `bson:"provider" json:"provider"` // "simpro", "minuba"
	BaseURL        string    `bson:"base_url" json:"baseUrl"`
	BuildID        string    `bson:"build_id" json:"buildId"`
	CompanyID      string    `bson:"company_id" json:"companyId"`
	AccessToken    string    `bson:"access_token" json:"-"`
	TokenExpiresAt time.Time `bson:"token_expires_at" json:"tokenExpiresAt"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}

// Configured reports whether the credentials are complete enough to reach the
// external system.
func (c *IntegrationCredentials) Configured() bool {
	return c != nil && c.BaseURL != "" && c.BuildID != "" && c.AccessToken != ""
}
