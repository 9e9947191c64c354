// Package mlclient talks to the external text-classification service that
// backs the intent resolver's ML fallback. The service is optional: every
// caller must tolerate its absence.
package mlclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Prediction is the classifier's answer for one query text.
type Prediction struct {
	PredictedService string  `json:"predicted_service"`
	Confidence       float64 `json:"confidence"` // 0..1
}

// Classifier is the surface the intent resolver depends on.
type Classifier interface {
	Predict(ctx context.Context, queryText, urgency string) (*Prediction, error)
}

// Client is the HTTP classifier client. All calls share one bounded timeout;
// a slow or unreachable service surfaces as an error, never a hang.
type Client struct {
	http   *resty.Client
	apiKey string
}

// New builds a classifier client for the given base URL. The timeout bounds
// every call including connection setup.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &Client{http: c, apiKey: apiKey}
}

type predictRequest struct {
	QueryText string `json:"query_text"`
	Urgency   string `json:"urgency"`
}

type healthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// Predict posts the query text and urgency to /predict.
func (c *Client) Predict(ctx context.Context, queryText, urgency string) (*Prediction, error) {
	var out Prediction
	req := c.http.R().
		SetContext(ctx).
		SetBody(predictRequest{QueryText: queryText, Urgency: urgency}).
		SetResult(&out)
	if c.apiKey != "" {
		req.SetHeader("X-API-Key", c.apiKey)
	}

	resp, err := req.Post("/predict")
	if err != nil {
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode())
	}
	return &out, nil
}

// Health reports whether the classifier is reachable and has a model loaded.
func (c *Client) Health(ctx context.Context) (bool, error) {
	var out healthResponse
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get("/health")
	if err != nil {
		return false, fmt.Errorf("classifier health check failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return false, fmt.Errorf("classifier health returned status %d", resp.StatusCode())
	}
	return out.ModelLoaded, nil
}

// Retrain asks the classifier to rebuild its model from approved logs. Used
// by the background retrain trigger, never by the request path.
func (c *Client) Retrain(ctx context.Context) error {
	req := c.http.R().SetContext(ctx)
	if c.apiKey != "" {
		req.SetHeader("X-API-Key", c.apiKey)
	}
	resp, err := req.Post("/retrain")
	if err != nil {
		return fmt.Errorf("classifier retrain failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("classifier retrain returned status %d", resp.StatusCode())
	}
	return nil
}
