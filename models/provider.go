package models

import "time"

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// NewGeoPoint builds a GeoJSON point from a latitude/longitude pair.
func NewGeoPoint(lat, lng float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Location is the hierarchical address of a provider: administrative region
// fields plus an optional geographic point for radius searches.
type Location struct {
	State string    `bson:"state" json:"state,omitempty"`
	City  string    `bson:"city" json:"city,omitempty"`
	Area  string    `bson:"area" json:"area,omitempty"`
	Geo   *GeoPoint `bson:"geo,omitempty" json:"geo,omitempty"`
}

// Provider is a registered service provider. Created by registration,
// mutated by rating updates and availability toggles, never deleted here.
type Provider struct {
	ID               string    `bson:"id" json:"id"`
	Name             string    `bson:"name" json:"name"`
	Phone            string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Service          string    `bson:"service" json:"service"` // references Service.Name
	Location         Location  `bson:"location" json:"location"`
	Rating           float64   `bson:"rating" json:"rating"` // 0..5
	Verified         bool      `bson:"verified" json:"verified"`
	AvailableNow     bool      `bson:"availableNow" json:"availableNow"`
	ResponseTimeMin  int       `bson:"responseTimeMin" json:"responseTimeMin"`
	JobsCompleted30d int       `bson:"jobsCompleted30d" json:"jobsCompleted30d"`
	HourlyRate       *float64  `bson:"hourlyRate,omitempty" json:"hourlyRate,omitempty"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`

	// DistanceMeters is populated by $geoNear queries only; it is never
	// stored back to the collection.
	DistanceMeters *float64 `bson:"distance,omitempty" json:"-"`
}

// DistanceKm returns the geo-query distance in kilometers, or nil when the
// provider was not matched spatially.
func (p *Provider) DistanceKm() *float64 {
	if p.DistanceMeters == nil {
		return nil
	}
	km := *p.DistanceMeters / 1000
	return &km
}
