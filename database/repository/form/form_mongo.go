package formRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"joeyjob/database"
	"joeyjob/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNoActiveForm marks the "organization has no published form" state so
// callers can map it to a not-found error rather than a system failure.
var ErrNoActiveForm = errors.New("no active booking form")

// MongoFormRepo implements FormRepository using MongoDB.
type MongoFormRepo struct {
	coll *mongo.Collection
}

// NewMongoFormRepo constructs a new instance of MongoFormRepo.
func NewMongoFormRepo() FormRepository {
	return &MongoFormRepo{coll: database.Collection("booking_forms")}
}

// GetActiveForm retrieves the organization's active booking form.
func (repo *MongoFormRepo) GetActiveForm(ctx context.Context, orgID string) (*models.BookingForm, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"organization_id": orgID, "active": true}
	var form models.BookingForm
	if err := repo.coll.FindOne(ctxWithTimeout, filter).Decode(&form); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoActiveForm
		}
		return nil, fmt.Errorf("error fetching active form for org %s: %w", orgID, err)
	}
	return &form, nil
}

// GetByID retrieves a booking form by id within an organization.
func (repo *MongoFormRepo) GetByID(ctx context.Context, orgID, formID string) (*models.BookingForm, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"organization_id": orgID, "id": formID}
	var form models.BookingForm
	if err := repo.coll.FindOne(ctxWithTimeout, filter).Decode(&form); err != nil {
		return nil, fmt.Errorf("form %s not found: %w", formID, err)
	}
	return &form, nil
}
