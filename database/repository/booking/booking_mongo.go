package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"joeyjob/database"
	"joeyjob/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	return &MongoBookingRepo{coll: database.Collection("bookings")}
}

// Create inserts a new booking document.
func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctxWithTimeout, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": bookingID}).Decode(&booking); err != nil {
		return nil, fmt.Errorf("booking not found: %w", err)
	}
	return &booking, nil
}

// GetByConfirmationCode retrieves a booking by its confirmation code within an organization.
func (repo *MongoBookingRepo) GetByConfirmationCode(ctx context.Context, orgID, code string) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"organization_id": orgID, "confirmation_code": code}
	var booking models.Booking
	if err := repo.coll.FindOne(ctxWithTimeout, filter).Decode(&booking); err != nil {
		return nil, fmt.Errorf("booking not found: %w", err)
	}
	return &booking, nil
}

// ListByOrganization returns an organization's bookings starting inside [from, to).
func (repo *MongoBookingRepo) ListByOrganization(ctx context.Context, orgID string, from, to time.Time) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"organization_id":  orgID,
		"booking_start_at": bson.M{"$gte": from, "$lt": to},
	}
	cursor, err := repo.coll.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings for org %s: %w", orgID, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus sets the lifecycle status of a booking.
func (repo *MongoBookingRepo) UpdateStatus(ctx context.Context, bookingID, status string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	return nil
}

// Confirm marks the booking confirmed and stores the chosen employee.
func (repo *MongoBookingRepo) Confirm(ctx context.Context, bookingID, employeeExternalID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID}
	update := bson.M{"$set": bson.M{
		"status":               models.BookingStatusConfirmed,
		"employee_external_id": employeeExternalID,
		"updated_at":           time.Now().UTC(),
	}}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error confirming booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	return nil
}

// SetEmployee stores the chosen employee on a still-pending booking.
func (repo *MongoBookingRepo) SetEmployee(ctx context.Context, bookingID, employeeExternalID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID}
	update := bson.M{"$set": bson.M{
		"employee_external_id": employeeExternalID,
		"updated_at":           time.Now().UTC(),
	}}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error setting employee on booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	return nil
}

// Delete removes a booking record. Used only by the compensating rollback
// after a failed external commit.
func (repo *MongoBookingRepo) Delete(ctx context.Context, bookingID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.DeleteOne(ctxWithTimeout, bson.M{"id": bookingID}); err != nil {
		return fmt.Errorf("error deleting booking %s: %w", bookingID, err)
	}
	return nil
}

// FindOverlapping returns committed bookings for the employee whose window
// intersects [from, to). Cancelled and no-show bookings never block a slot.
func (repo *MongoBookingRepo) FindOverlapping(ctx context.Context, orgID, employeeExternalID string, from, to time.Time) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"organization_id":      orgID,
		"employee_external_id": employeeExternalID,
		"status":               bson.M{"$in": []string{models.BookingStatusPending, models.BookingStatusConfirmed}},
		"booking_start_at":     bson.M{"$lt": to},
		"booking_end_at":       bson.M{"$gt": from},
	}
	cursor, err := repo.coll.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error querying overlapping bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding overlapping bookings: %w", err)
	}
	return bookings, nil
}
