// Package query composes the full request cycle: user ledger, urgency,
// intent, provider matching with progressive broadening, slot aggregation,
// and the audit log write.
package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	providerRepo "keazy/database/repository/provider"
	querylogRepo "keazy/database/repository/querylog"
	"keazy/models"
	"keazy/services/intent"
	"keazy/services/matching"
	"keazy/services/slots"
	"keazy/services/users"
	"keazy/tasks"

	"go.uber.org/zap"
)

// Broadened method labels, in the order criteria are relaxed.
const (
	MethodFallbackNoGeo       = "fallback-no-geo"
	MethodFallbackStateOnly   = "fallback-state-only"
	MethodFallbackServiceOnly = "fallback-service-only"
)

// Orchestrator runs one query request end to end.
type Orchestrator struct {
	Users    users.Service
	Resolver *intent.Resolver
	Matcher  matching.Matcher
	Slots    slots.Aggregator
	Logs     querylogRepo.QueryLogRepository

	// Retrain trigger; optional. When the audit log count crosses a
	// multiple of RetrainThreshold, a retrain task is enqueued.
	Retrain          tasks.Enqueuer
	RetrainThreshold int64

	Clock  func() time.Time
	Logger *zap.Logger
}

func (o *Orchestrator) now() time.Time {
	if o.Clock != nil {
		return o.Clock()
	}
	return time.Now().UTC()
}

// Handle processes a query request. Returned errors are ErrValidation,
// ErrIntentUndetectable, intent.ErrClassifierUnavailable, or wrapped
// internal failures; handlers map them to status codes.
func (o *Orchestrator) Handle(ctx context.Context, req models.QueryRequest) (*models.QueryResponse, error) {
	started := o.now()

	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.QueryText) == "" {
		return nil, ErrValidation
	}

	user, err := o.Users.TouchQuery(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	urgency := intent.ClassifyUrgency(req.QueryText)
	if req.Urgency != "" {
		// An explicit urgency on the request wins over the keyword scan.
		urgency = req.Urgency
	}

	resolved, err := o.Resolver.Resolve(ctx, req.QueryText, urgency)
	if err != nil {
		return nil, err
	}
	if resolved.Service == "" {
		return nil, ErrIntentUndetectable
	}

	result, err := o.matchWithBroadening(ctx, req, resolved.Service)
	if err != nil {
		return nil, err
	}

	cards, err := o.Slots.Attach(ctx, result.Providers)
	if err != nil {
		return nil, err
	}

	latency := o.now().Sub(started).Milliseconds()
	logEntry := o.writeLog(ctx, req, resolved, urgency, result, latency)

	var geo *models.GeoPoint
	if req.Lat != nil && req.Lng != nil {
		geo = models.NewGeoPoint(*req.Lat, *req.Lng)
	}

	return &models.QueryResponse{
		Success: true,
		Query: models.QueryInfo{
			Text:            req.QueryText,
			DetectedService: resolved.Service,
			Confidence:      resolved.Confidence * 100,
			Source:          resolved.Source,
			Urgency:         urgency,
		},
		Location: models.LocationInfo{
			State:        req.State,
			City:         req.City,
			Area:         req.Area,
			Geo:          geo,
			SearchMethod: result.Method,
		},
		BusinessCards: cards,
		Meta: models.QueryMeta{
			TotalProviders: len(cards),
			LogID:          logEntry.ID,
			LatencyMs:      latency,
			UserQueries:    user.TotalQueries,
		},
	}, nil
}

// matchWithBroadening runs the matcher at the strictest criteria level and
// relaxes in fixed order (drop geo, drop city, drop state) until results are
// non-empty or all levels are exhausted. Each stage keeps its own method
// label so the response can explain where results came from.
func (o *Orchestrator) matchWithBroadening(ctx context.Context, req models.QueryRequest, service string) (*matching.Result, error) {
	var geo *providerRepo.GeoQuery
	if req.Lat != nil && req.Lng != nil && req.RadiusKm > 0 {
		geo = &providerRepo.GeoQuery{Lat: *req.Lat, Lng: *req.Lng, RadiusKm: req.RadiusKm}
	}

	stages := []struct {
		criteria matching.Criteria
		relabel  string // overrides the matcher's label for broadened stages
	}{
		{criteria: matching.Criteria{Service: service, State: req.State, City: req.City, Area: req.Area, Geo: geo}},
		{criteria: matching.Criteria{Service: service, State: req.State, City: req.City, Area: req.Area}, relabel: MethodFallbackNoGeo},
		{criteria: matching.Criteria{Service: service, State: req.State}, relabel: MethodFallbackStateOnly},
		{criteria: matching.Criteria{Service: service}, relabel: MethodFallbackServiceOnly},
	}

	var last *matching.Result
	for i, stage := range stages {
		// Skip broadened stages that would repeat the previous criteria.
		if i == 1 && geo == nil {
			continue
		}
		if i == 2 && req.City == "" && geo == nil {
			continue
		}
		if i == 3 && req.State == "" && req.City == "" && geo == nil {
			continue
		}

		result, err := o.Matcher.Match(ctx, stage.criteria)
		if err != nil {
			return nil, fmt.Errorf("provider matching failed: %w", err)
		}
		if stage.relabel != "" {
			result.Method = stage.relabel
		}
		last = result
		if len(result.Providers) > 0 {
			return result, nil
		}
	}

	if last == nil {
		return &matching.Result{Providers: nil, Method: matching.MethodStandard}, nil
	}
	return last, nil
}

// writeLog appends the audit record and fires the retrain trigger when the
// log volume crosses the threshold. Neither failure mode fails the request.
func (o *Orchestrator) writeLog(ctx context.Context, req models.QueryRequest, resolved models.Intent, urgency string, result *matching.Result, latencyMs int64) *models.QueryLog {
	ids := make([]string, 0, len(result.Providers))
	for _, p := range result.Providers {
		ids = append(ids, p.ID)
	}

	snapshot := models.LocationSnapshot{
		State:    req.State,
		City:     req.City,
		Area:     req.Area,
		RadiusKm: req.RadiusKm,
	}
	if req.Lat != nil && req.Lng != nil {
		snapshot.Geo = models.NewGeoPoint(*req.Lat, *req.Lng)
	}

	entry := &models.QueryLog{
		UserID:             req.UserID,
		RawText:            req.QueryText,
		ResolvedService:    resolved.Service,
		Source:             resolved.Source,
		Confidence:         resolved.Confidence,
		Urgency:            urgency,
		Location:           snapshot,
		MatchedProviderIDs: ids,
		LatencyMs:          latencyMs,
		Timestamp:          o.now(),
	}

	if err := o.Logs.Append(ctx, entry); err != nil {
		o.log().Error("failed to write query log", zap.String("user", req.UserID), zap.Error(err))
		return entry
	}

	o.maybeTriggerRetrain(ctx)
	return entry
}

func (o *Orchestrator) maybeTriggerRetrain(ctx context.Context) {
	if o.Retrain == nil || o.RetrainThreshold <= 0 {
		return
	}
	count, err := o.Logs.Count(ctx)
	if err != nil {
		o.log().Warn("failed to count query logs for retrain trigger", zap.Error(err))
		return
	}
	if count == 0 || count%o.RetrainThreshold != 0 {
		return
	}

	task, err := tasks.NewRetrainTask(count)
	if err != nil {
		o.log().Warn("failed to build retrain task", zap.Error(err))
		return
	}
	if _, err := o.Retrain.Enqueue(task); err != nil {
		o.log().Warn("failed to enqueue retrain task", zap.Error(err))
		return
	}
	o.log().Info("retrain task enqueued", zap.Int64("log_count", count))
}

func (o *Orchestrator) log() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
