package models

// QueryRequest is the body of POST /api/query.
type QueryRequest struct {
	UserID    string   `json:"user_id" binding:"required"`
	QueryText string   `json:"query_text" binding:"required"`
	State     string   `json:"state,omitempty"`
	City      string   `json:"city,omitempty"`
	Area      string   `json:"area,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	RadiusKm  float64  `json:"radius_km,omitempty"`
	Urgency   string   `json:"urgency,omitempty"`
}

// ProviderCard is a matched provider decorated with its next bookable slots.
type ProviderCard struct {
	Provider   Provider   `json:"provider"`
	DistanceKm *float64   `json:"distance_km,omitempty"`
	NextSlots  []SlotView `json:"next_slots"`
}

// QueryInfo echoes the resolved intent back to the caller.
type QueryInfo struct {
	Text            string  `json:"text"`
	DetectedService string  `json:"detected_service"`
	Confidence      float64 `json:"confidence"` // 0..100 on the wire
	Source          string  `json:"source"`
	Urgency         string  `json:"urgency"`
}

// LocationInfo describes the search scope that produced the results,
// including which (possibly broadened) method was used.
type LocationInfo struct {
	State        string    `json:"state,omitempty"`
	City         string    `json:"city,omitempty"`
	Area         string    `json:"area,omitempty"`
	Geo          *GeoPoint `json:"geo,omitempty"`
	SearchMethod string    `json:"search_method"`
}

// QueryMeta carries per-request bookkeeping.
type QueryMeta struct {
	TotalProviders int    `json:"total_providers"`
	LogID          string `json:"log_id"`
	LatencyMs      int64  `json:"latency_ms"`
	UserQueries    int64  `json:"user_queries"`
}

// QueryResponse is the body of a successful POST /api/query.
type QueryResponse struct {
	Success       bool           `json:"success"`
	Query         QueryInfo      `json:"query"`
	Location      LocationInfo   `json:"location"`
	BusinessCards []ProviderCard `json:"business_cards"`
	Meta          QueryMeta      `json:"meta"`
}

// BookRequest is the body of POST /api/query/book.
type BookRequest struct {
	UserID string `json:"user_id" binding:"required"`
	SlotID string `json:"slot_id" binding:"required"`
	Notes  string `json:"notes,omitempty"`
}

// CancelRequest is the body of POST /api/query/cancel.
type CancelRequest struct {
	UserID string `json:"user_id" binding:"required"`
	SlotID string `json:"slot_id" binding:"required"`
}
