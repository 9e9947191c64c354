package querylogRepo

import (
	"context"
	"fmt"
	"time"

	"keazy/database"
	"keazy/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// QueryLogRepository is the append-only audit trail. Logs are written once
// per request and consumed by the external retraining pipeline.
type QueryLogRepository interface {
	// Append inserts a log record, assigning an ID when missing.
	Append(ctx context.Context, entry *models.QueryLog) error
	// Count returns the total number of log records.
	Count(ctx context.Context) (int64, error)
}

// MongoQueryLogRepo implements QueryLogRepository using MongoDB.
type MongoQueryLogRepo struct {
	coll *mongo.Collection
}

// NewMongoQueryLogRepo creates a new QueryLogRepository backed by MongoDB.
func NewMongoQueryLogRepo() QueryLogRepository {
	return &MongoQueryLogRepo{coll: database.DB().Collection("query_logs")}
}

func (r *MongoQueryLogRepo) Append(ctx context.Context, entry *models.QueryLog) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to append query log: %w", err)
	}
	return nil
}

func (r *MongoQueryLogRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count query logs: %w", err)
	}
	return n, nil
}
