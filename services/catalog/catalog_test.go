package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"keazy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServiceRepo struct {
	services []models.Service
	err      error
	calls    int
}

func (f *fakeServiceRepo) ListEnabled(ctx context.Context) ([]models.Service, error) {
	f.calls++
	return f.services, f.err
}

func (f *fakeServiceRepo) Upsert(ctx context.Context, svc *models.Service) error { return nil }

func (f *fakeServiceRepo) GetByName(ctx context.Context, name string) (*models.Service, error) {
	return nil, errors.New("not implemented")
}

func TestResolveCachesUntilTTL(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	repo := &fakeServiceRepo{services: []models.Service{
		{Name: "plumber", Synonyms: []string{"plumber", "pipe"}, Enabled: true},
		{Name: "electrician", Synonyms: []string{"wiring"}, Enabled: true},
	}}
	cat := New(repo, 5*time.Minute, clock, nil)

	entries := cat.Resolve(context.Background())
	require.Len(t, entries, 2)
	assert.Equal(t, "plumber", entries[0].Service)
	assert.Equal(t, 1, repo.calls)

	// Within the TTL the store is not consulted again.
	now = now.Add(4 * time.Minute)
	cat.Resolve(context.Background())
	assert.Equal(t, 1, repo.calls)

	// Past the TTL the catalog reloads.
	now = now.Add(2 * time.Minute)
	cat.Resolve(context.Background())
	assert.Equal(t, 2, repo.calls)
}

func TestResolveFallsBackOnStoreError(t *testing.T) {
	repo := &fakeServiceRepo{err: errors.New("connection refused")}
	cat := New(repo, 0, nil, nil)

	entries := cat.Resolve(context.Background())
	require.NotEmpty(t, entries)
	assert.Equal(t, "plumber", entries[0].Service)
}

func TestResolveFallsBackOnEmptyResult(t *testing.T) {
	repo := &fakeServiceRepo{}
	cat := New(repo, 0, nil, nil)

	entries := cat.Resolve(context.Background())
	require.NotEmpty(t, entries)

	// The fallback is not cached: once the store has data it is used.
	repo.services = []models.Service{{Name: "cleaner", Synonyms: []string{"cleaning"}, Enabled: true}}
	entries = cat.Resolve(context.Background())
	require.Len(t, entries, 1)
	assert.Equal(t, "cleaner", entries[0].Service)
}

func TestInvalidateForcesReload(t *testing.T) {
	repo := &fakeServiceRepo{services: []models.Service{
		{Name: "plumber", Synonyms: []string{"plumber"}, Enabled: true},
	}}
	cat := New(repo, time.Hour, nil, nil)

	cat.Resolve(context.Background())
	assert.Equal(t, 1, repo.calls)

	cat.Invalidate()
	cat.Resolve(context.Background())
	assert.Equal(t, 2, repo.calls)
}
