package employeeRepo

import (
	"context"
	"fmt"
	"time"

	"joeyjob/database"
	"joeyjob/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoEmployeeRepo implements EmployeeRepository using MongoDB.
type MongoEmployeeRepo struct {
	coll *mongo.Collection
}

// NewMongoEmployeeRepo constructs a new instance of MongoEmployeeRepo.
func NewMongoEmployeeRepo() EmployeeRepository {
	return &MongoEmployeeRepo{coll: database.Collection("employees")}
}

// GetByExternalID retrieves one employee by its external system id.
func (repo *MongoEmployeeRepo) GetByExternalID(ctx context.Context, orgID, externalID string) (*models.Employee, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"organization_id": orgID, "external_id": externalID}
	var employee models.Employee
	if err := repo.coll.FindOne(ctxWithTimeout, filter).Decode(&employee); err != nil {
		return nil, fmt.Errorf("employee %s not found: %w", externalID, err)
	}
	return &employee, nil
}

// GetEnabledByExternalIDs returns the enabled subset of the given external
// ids. The result keeps the order of the input slice so downstream ranking is
// deterministic regardless of Mongo's return order.
func (repo *MongoEmployeeRepo) GetEnabledByExternalIDs(ctx context.Context, orgID string, externalIDs []string) ([]models.Employee, error) {
	if len(externalIDs) == 0 {
		return nil, nil
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"organization_id": orgID,
		"external_id":     bson.M{"$in": externalIDs},
		"enabled":         true,
	}
	cursor, err := repo.coll.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error querying employees: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var found []models.Employee
	if err := cursor.All(ctxWithTimeout, &found); err != nil {
		return nil, fmt.Errorf("error decoding employees: %w", err)
	}

	byExternal := make(map[string]models.Employee, len(found))
	for _, e := range found {
		byExternal[e.ExternalID] = e
	}

	ordered := make([]models.Employee, 0, len(found))
	for _, id := range externalIDs {
		if e, ok := byExternal[id]; ok {
			ordered = append(ordered, e)
		}
	}
	return ordered, nil
}

// ListByOrganization returns the full roster for an organization.
func (repo *MongoEmployeeRepo) ListByOrganization(ctx context.Context, orgID string) ([]models.Employee, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctxWithTimeout, bson.M{"organization_id": orgID})
	if err != nil {
		return nil, fmt.Errorf("error listing employees for org %s: %w", orgID, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var employees []models.Employee
	if err := cursor.All(ctxWithTimeout, &employees); err != nil {
		return nil, fmt.Errorf("error decoding employees: %w", err)
	}
	return employees, nil
}

// Upsert writes an employee record keyed by (organization, external id).
// Used by the roster sync endpoint.
func (repo *MongoEmployeeRepo) Upsert(ctx context.Context, employee *models.Employee) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	filter := bson.M{"organization_id": employee.OrganizationID, "external_id": employee.ExternalID}
	update := bson.M{
		"$set": bson.M{
			"name":       employee.Name,
			"email":      employee.Email,
			"enabled":    employee.Enabled,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"id":              employee.ID,
			"organization_id": employee.OrganizationID,
			"external_id":     employee.ExternalID,
			"created_at":      now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update, opts); err != nil {
		return fmt.Errorf("error upserting employee %s: %w", employee.ExternalID, err)
	}
	return nil
}

// SetEnabled flips the enabled flag on one roster entry.
func (repo *MongoEmployeeRepo) SetEnabled(ctx context.Context, orgID, externalID string, enabled bool) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"organization_id": orgID, "external_id": externalID}
	update := bson.M{"$set": bson.M{"enabled": enabled, "updated_at": time.Now().UTC()}}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error updating employee %s: %w", externalID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("employee %s not found", externalID)
	}
	return nil
}
