package assignmentRepo

import (
	"context"
	"fmt"
	"time"

	"joeyjob/database"
	"joeyjob/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAssignmentRepo implements AssignmentRepository using MongoDB.
type MongoAssignmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAssignmentRepo constructs a new instance of MongoAssignmentRepo.
func NewMongoAssignmentRepo() AssignmentRepository {
	return &MongoAssignmentRepo{coll: database.Collection("booking_employees")}
}

// Create inserts a new assignment document.
func (repo *MongoAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctxWithTimeout, assignment); err != nil {
		return fmt.Errorf("error creating assignment: %w", err)
	}
	return nil
}

// GetByBookingID retrieves the assignment for a booking.
func (repo *MongoAssignmentRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Assignment, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var assignment models.Assignment
	if err := repo.coll.FindOne(ctxWithTimeout, bson.M{"booking_id": bookingID}).Decode(&assignment); err != nil {
		return nil, fmt.Errorf("assignment for booking %s not found: %w", bookingID, err)
	}
	return &assignment, nil
}

// UpdateSync records the outcome of an external sync attempt.
func (repo *MongoAssignmentRepo) UpdateSync(ctx context.Context, bookingID, syncStatus, syncError string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"booking_id": bookingID}
	update := bson.M{"$set": bson.M{
		"sync_status": syncStatus,
		"sync_error":  syncError,
		"updated_at":  time.Now().UTC(),
	}}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error updating assignment sync for booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("assignment for booking %s not found", bookingID)
	}
	return nil
}

// SetExternalRefs stores the identifiers returned by the external system.
func (repo *MongoAssignmentRepo) SetExternalRefs(ctx context.Context, bookingID string, jobID, customerID, scheduleID, siteID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"booking_id": bookingID}
	update := bson.M{"$set": bson.M{
		"external_job_id":      jobID,
		"external_customer_id": customerID,
		"external_schedule_id": scheduleID,
		"external_site_id":     siteID,
		"sync_status":          models.SyncStatusSynced,
		"sync_error":           "",
		"updated_at":           time.Now().UTC(),
	}}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error storing external refs for booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("assignment for booking %s not found", bookingID)
	}
	return nil
}

// ListFailed returns assignments whose external sync has failed, for the
// retry worker.
func (repo *MongoAssignmentRepo) ListFailed(ctx context.Context, orgID string) ([]models.Assignment, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"organization_id": orgID, "sync_status": models.SyncStatusFailed}
	cursor, err := repo.coll.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing failed assignments: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var assignments []models.Assignment
	if err := cursor.All(ctxWithTimeout, &assignments); err != nil {
		return nil, fmt.Errorf("error decoding assignments: %w", err)
	}
	return assignments, nil
}
