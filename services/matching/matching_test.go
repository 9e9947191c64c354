package matching

import (
	"context"
	"errors"
	"testing"

	providerRepo "keazy/database/repository/provider"
	"keazy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProviderRepo struct {
	providerRepo.ProviderRepository

	standard []models.Provider
	near     []models.Provider
	nearErr  error
}

func (f *fakeProviderRepo) Search(ctx context.Context, filter providerRepo.ProviderFilter) ([]models.Provider, error) {
	return f.standard, nil
}

func (f *fakeProviderRepo) SearchNear(ctx context.Context, filter providerRepo.ProviderFilter, geo providerRepo.GeoQuery) ([]models.Provider, error) {
	return f.near, f.nearErr
}

func meters(km float64) *float64 {
	m := km * 1000
	return &m
}

func baseProvider(id string) models.Provider {
	return models.Provider{
		ID:      id,
		Service: "plumber",
		Rating:  3.5,
		Location: models.Location{
			State: "Nairobi", City: "Nairobi", Area: "Westlands",
		},
	}
}

func TestMatchStandardMethod(t *testing.T) {
	repo := &fakeProviderRepo{standard: []models.Provider{baseProvider("a")}}
	m := &DefaultMatcher{ProviderRepo: repo}

	result, err := m.Match(context.Background(), Criteria{Service: "plumber"})
	require.NoError(t, err)
	assert.Equal(t, MethodStandard, result.Method)
	assert.Len(t, result.Providers, 1)
}

func TestMatchGeoMethod(t *testing.T) {
	near := baseProvider("a")
	near.DistanceMeters = meters(2)
	repo := &fakeProviderRepo{near: []models.Provider{near}}
	m := &DefaultMatcher{ProviderRepo: repo}

	result, err := m.Match(context.Background(), Criteria{
		Service: "plumber",
		Geo:     &providerRepo.GeoQuery{Lat: -1.28, Lng: 36.82, RadiusKm: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, MethodGeo, result.Method)
}

func TestMatchGeoFailureFallsBackToStandard(t *testing.T) {
	repo := &fakeProviderRepo{
		nearErr:  errors.New("no 2dsphere index"),
		standard: []models.Provider{baseProvider("a")},
	}
	m := &DefaultMatcher{ProviderRepo: repo}

	result, err := m.Match(context.Background(), Criteria{
		Service: "plumber",
		Geo:     &providerRepo.GeoQuery{Lat: -1.28, Lng: 36.82, RadiusKm: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, MethodStandardFallback, result.Method)
	assert.Len(t, result.Providers, 1)
}

func TestMatchRequiresServiceWithoutGeo(t *testing.T) {
	m := &DefaultMatcher{ProviderRepo: &fakeProviderRepo{}}
	_, err := m.Match(context.Background(), Criteria{})
	assert.Error(t, err)
}

func TestMatchTruncatesToLimit(t *testing.T) {
	var many []models.Provider
	for i := 0; i < 15; i++ {
		many = append(many, baseProvider("p"))
	}
	m := &DefaultMatcher{ProviderRepo: &fakeProviderRepo{standard: many}}

	result, err := m.Match(context.Background(), Criteria{Service: "plumber", Limit: 3})
	require.NoError(t, err)
	assert.Len(t, result.Providers, 3)
}

func TestRankingVerifiedNeverBelowUnverified(t *testing.T) {
	verified := baseProvider("v")
	verified.Verified = true
	unverified := baseProvider("u")

	ranked := rank([]models.Provider{unverified, verified}, "", false, 0)
	assert.Equal(t, "v", ranked[0].ID)
}

func TestRankingHigherRatingNeverBelowLower(t *testing.T) {
	high := baseProvider("high")
	high.Rating = 4.8
	low := baseProvider("low")
	low.Rating = 2.1

	ranked := rank([]models.Provider{low, high}, "", false, 0)
	assert.Equal(t, "high", ranked[0].ID)
}

// The worked scenario: a verified 4.7-rated plumber 2.5km away outranks an
// unverified 3.0-rated one 1km away, despite being farther.
func TestRankingVerifiedBeatsCloserUnverified(t *testing.T) {
	far := baseProvider("far")
	far.Verified = true
	far.Rating = 4.7
	far.ResponseTimeMin = 0
	far.DistanceMeters = meters(2.5)

	close := baseProvider("close")
	close.Rating = 3.0
	close.ResponseTimeMin = 0
	close.DistanceMeters = meters(1)

	farScore := score(&far, "", true)
	closeScore := score(&close, "", true)
	assert.InDelta(t, 56.2, farScore, 0.5)
	assert.InDelta(t, 39.0, closeScore, 0.5)

	ranked := rank([]models.Provider{close, far}, "", true, 0)
	assert.Equal(t, "far", ranked[0].ID)
}

func TestScoreAreaMatchBonus(t *testing.T) {
	p := baseProvider("a")
	withMatch := score(&p, "westlands", false)
	without := score(&p, "karen", false)
	assert.InDelta(t, areaMatchBonus, withMatch-without, 0.0001)
}

func TestScoreResponseTimePenaltyCapped(t *testing.T) {
	slow := baseProvider("slow")
	slow.ResponseTimeMin = 600
	verySlow := baseProvider("veryslow")
	verySlow.ResponseTimeMin = 6000

	assert.Equal(t, score(&slow, "", false), score(&verySlow, "", false))
}

func TestScoreNoGeoCreditBeyondCeiling(t *testing.T) {
	far := baseProvider("far")
	far.DistanceMeters = meters(20)
	near := baseProvider("near")
	near.DistanceMeters = meters(16)

	assert.Equal(t, score(&far, "", true), score(&near, "", true))
}
