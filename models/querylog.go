package models

import "time"

// Intent sources.
const (
	SourceRule = "rule"
	SourceML   = "ml"
)

// Urgency levels.
const (
	UrgencyHigh   = "high"
	UrgencyNormal = "normal"
	UrgencyLow    = "low"
)

// Intent is the outcome of resolving free text to a service category.
type Intent struct {
	Service    string  `json:"service"`
	Confidence float64 `json:"confidence"` // 0..1
	Source     string  `json:"source"`     // "rule" or "ml"
}

// LocationSnapshot records the location hints a query carried.
type LocationSnapshot struct {
	State    string    `bson:"state,omitempty" json:"state,omitempty"`
	City     string    `bson:"city,omitempty" json:"city,omitempty"`
	Area     string    `bson:"area,omitempty" json:"area,omitempty"`
	Geo      *GeoPoint `bson:"geo,omitempty" json:"geo,omitempty"`
	RadiusKm float64   `bson:"radiusKm,omitempty" json:"radiusKm,omitempty"`
}

// QueryLog is one append-only audit record per query request. The content is
// consumed by the external retraining pipeline; this service only counts
// records to decide when to trigger a retrain.
type QueryLog struct {
	ID                 string           `bson:"id" json:"id"`
	UserID             string           `bson:"userId" json:"userId"`
	RawText            string           `bson:"rawText" json:"rawText"`
	ResolvedService    string           `bson:"resolvedService" json:"resolvedService"`
	Source             string           `bson:"source" json:"source"`
	Confidence         float64          `bson:"confidence" json:"confidence"`
	Urgency            string           `bson:"urgency" json:"urgency"`
	Location           LocationSnapshot `bson:"location" json:"location"`
	MatchedProviderIDs []string         `bson:"matchedProviderIds" json:"matchedProviderIds"`
	LatencyMs          int64            `bson:"latencyMs" json:"latencyMs"`
	Timestamp          time.Time        `bson:"timestamp" json:"timestamp"`
}
