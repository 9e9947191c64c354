// Package intent turns free query text into a (service, confidence, source)
// triple: keyword rules first, the external classifier as fallback.
package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"keazy/mlclient"
	"keazy/models"
	"keazy/services/catalog"

	"go.uber.org/zap"
)

// ErrClassifierUnavailable signals that the rule pass found nothing and the
// external classifier timed out or failed. Callers decide whether to fail
// the request or degrade; the resolver never swallows this.
var ErrClassifierUnavailable = errors.New("classifier unavailable")

// RuleConfidence is the fixed confidence assigned to rule matches.
const RuleConfidence = 0.95

// Resolver resolves query text against the synonym catalog, then the
// external classifier.
type Resolver struct {
	Catalog    *catalog.Catalog
	Classifier mlclient.Classifier
	Timeout    time.Duration // bound on the classifier call; defaults to 5s
	Logger     *zap.Logger
}

// NewResolver wires a resolver with the default classifier timeout.
func NewResolver(cat *catalog.Catalog, classifier mlclient.Classifier, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{Catalog: cat, Classifier: classifier, Timeout: 5 * time.Second, Logger: logger}
}

// Resolve maps text to an intent. A zero-value Intent with nil error means
// neither phase could detect a service.
func (r *Resolver) Resolve(ctx context.Context, text, urgency string) (models.Intent, error) {
	lower := strings.ToLower(text)

	// Rule pass: first keyword hit wins; catalog order is stable so the
	// outcome is deterministic regardless of call order.
	for _, entry := range r.Catalog.Resolve(ctx) {
		for _, kw := range entry.Keywords {
			if kw != "" && strings.Contains(lower, kw) {
				return models.Intent{
					Service:    entry.Service,
					Confidence: RuleConfidence,
					Source:     models.SourceRule,
				}, nil
			}
		}
	}

	if r.Classifier == nil {
		return models.Intent{}, nil
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pred, err := r.Classifier.Predict(ctx, text, urgency)
	if err != nil {
		r.Logger.Warn("classifier fallback failed", zap.Error(err))
		return models.Intent{}, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	if pred == nil || pred.PredictedService == "" {
		return models.Intent{}, nil
	}

	return models.Intent{
		Service:    pred.PredictedService,
		Confidence: pred.Confidence,
		Source:     models.SourceML,
	}, nil
}
