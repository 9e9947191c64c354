package providerRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoProviderRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "service", Value: 1},
				{Key: "location.state", Value: 1},
				{Key: "location.city", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "location.geo", Value: "2dsphere"}},
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
