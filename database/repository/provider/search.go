package providerRepo

import (
	"context"
	"fmt"
	"time"

	"keazy/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// matchFilter builds the hierarchical equality filter. Service is required;
// state and city are applied only when supplied. Region matches are
// case-insensitive, mirroring how records arrive from registration forms.
func matchFilter(filter ProviderFilter) bson.M {
	m := bson.M{}
	if filter.Service != "" {
		m["service"] = filter.Service
	}
	if filter.State != "" {
		m["location.state"] = bson.M{"$regex": "^" + filter.State + "$", "$options": "i"}
	}
	if filter.City != "" {
		m["location.city"] = bson.M{"$regex": "^" + filter.City + "$", "$options": "i"}
	}
	return m
}

func (r *MongoProviderRepo) Search(ctx context.Context, filter ProviderFilter) ([]models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, matchFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("provider search failed: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}

func (r *MongoProviderRepo) SearchNear(ctx context.Context, filter ProviderFilter, geo GeoQuery) ([]models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// $geoNear must be the first pipeline stage: it filters and sorts by
	// distance in one pass and writes the distance (meters) per document.
	pipeline := mongo.Pipeline{
		bson.D{
			{Key: "$geoNear", Value: bson.D{
				{Key: "near", Value: bson.D{
					{Key: "type", Value: "Point"},
					{Key: "coordinates", Value: []float64{geo.Lng, geo.Lat}},
				}},
				{Key: "key", Value: "location.geo"},
				{Key: "distanceField", Value: "distance"},
				{Key: "spherical", Value: true},
				{Key: "maxDistance", Value: geo.RadiusKm * 1000},
			}},
		},
		bson.D{{Key: "$match", Value: matchFilter(filter)}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("geo aggregation query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}
