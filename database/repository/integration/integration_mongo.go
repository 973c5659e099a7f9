package integrationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"joeyjob/database"
	"joeyjob/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotConfigured marks the "organization never connected a field-service
// system" state.
var ErrNotConfigured = errors.New("field-service integration not configured")

// MongoIntegrationRepo implements IntegrationRepository using MongoDB.
type MongoIntegrationRepo struct {
	coll *mongo.Collection
}

// NewMongoIntegrationRepo constructs a new instance of MongoIntegrationRepo.
func NewMongoIntegrationRepo() IntegrationRepository {
	return &MongoIntegrationRepo{coll: database.Collection("integration_credentials")}
}

// GetCredentials retrieves the credentials for an organization.
func (repo *MongoIntegrationRepo) GetCredentials(ctx context.Context, orgID string) (*models.IntegrationCredentials, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var creds models.IntegrationCredentials
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"organization_id": orgID}).Decode(&creds)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotConfigured
		}
		return nil, fmt.Errorf("error fetching credentials for org %s: %w", orgID, err)
	}
	return &creds, nil
}

// SaveCredentials upserts an organization's credentials.
func (repo *MongoIntegrationRepo) SaveCredentials(ctx context.Context, creds *models.IntegrationCredentials) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	filter := bson.M{"organization_id": creds.OrganizationID}
	update := bson.M{
		"$set": bson.M{
			"provider":         creds.Provider,
			"base_url":         creds.BaseURL,
			"build_id":         creds.BuildID,
			"company_id":       creds.CompanyID,
			"access_token":     creds.AccessToken,
			"token_expires_at": creds.TokenExpiresAt,
			"updated_at":       now,
		},
		"$setOnInsert": bson.M{
			"organization_id": creds.OrganizationID,
			"created_at":      now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update, opts); err != nil {
		return fmt.Errorf("error saving credentials for org %s: %w", creds.OrganizationID, err)
	}
	return nil
}

// UpdateAccessToken stores a refreshed token.
func (repo *MongoIntegrationRepo) UpdateAccessToken(ctx context.Context, orgID, accessToken string, expiresAt time.Time) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"organization_id": orgID}
	update := bson.M{"$set": bson.M{
		"access_token":     accessToken,
		"token_expires_at": expiresAt,
		"updated_at":       time.Now().UTC(),
	}}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error updating token for org %s: %w", orgID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotConfigured
	}
	return nil
}
