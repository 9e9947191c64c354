package slotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"keazy/database"
	"keazy/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSlotRepo implements SlotRepository using MongoDB.
type MongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo creates a new SlotRepository backed by MongoDB.
func NewMongoSlotRepo() SlotRepository {
	coll := database.DB().Collection("slots")
	repo := &MongoSlotRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create slot indexes: %v\n", err)
	}
	return repo
}

func (r *MongoSlotRepo) CreateMany(ctx context.Context, slots []models.Slot) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	docs := make([]interface{}, len(slots))
	ids := make([]string, len(slots))
	for i, slot := range slots {
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		if slot.Status == "" {
			slot.Status = models.SlotAvailable
		}
		slot.CreatedAt = now
		docs[i] = slot
		ids[i] = slot.ID
	}

	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, fmt.Errorf("failed to insert slots: %w", err)
	}
	return ids, nil
}

func (r *MongoSlotRepo) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.Slot
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&slot); err != nil {
		return nil, fmt.Errorf("failed to fetch slot with id %s: %w", id, err)
	}
	return &slot, nil
}

func (r *MongoSlotRepo) NextAvailable(ctx context.Context, providerID, from string, limit int64) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"status":     models.SlotAvailable,
		"date":       bson.M{"$gte": from},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query available slots for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots: %w", err)
	}
	return slots, nil
}

// Book performs the compare-and-set transition available -> booked. The
// status precondition lives in the filter, so two concurrent bookers can
// never both match: the loser's update matches zero documents.
func (r *MongoSlotRepo) Book(ctx context.Context, slotID, userID, notes string, at time.Time) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": slotID, "status": models.SlotAvailable}
	update := bson.M{"$set": bson.M{
		"status":       models.SlotBooked,
		"bookedBy":     userID,
		"bookedAt":     at,
		"bookingNotes": notes,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var slot models.Slot
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&slot); err != nil {
		return nil, fmt.Errorf("failed to book slot %s: %w", slotID, err)
	}
	return &slot, nil
}

// Cancel requires both the booked status and the booking owner in the
// filter, so one user can never release another user's booking.
func (r *MongoSlotRepo) Cancel(ctx context.Context, slotID, userID string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": slotID, "status": models.SlotBooked, "bookedBy": userID}
	update := bson.M{
		"$set":   bson.M{"status": models.SlotAvailable},
		"$unset": bson.M{"bookedBy": "", "bookedAt": "", "bookingNotes": ""},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var slot models.Slot
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&slot); err != nil {
		return nil, fmt.Errorf("failed to cancel slot %s: %w", slotID, err)
	}
	return &slot, nil
}

func (r *MongoSlotRepo) BookedBy(ctx context.Context, userID string) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"status": models.SlotBooked, "bookedBy": userID}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots: %w", err)
	}
	return slots, nil
}

func (r *MongoSlotRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "providerId", Value: 1},
				{Key: "status", Value: 1},
				{Key: "date", Value: 1},
				{Key: "time", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "bookedBy", Value: 1}, {Key: "status", Value: 1}},
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// IsNoDocuments reports whether err is the driver's no-documents sentinel,
// possibly wrapped.
func IsNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
