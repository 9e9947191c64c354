package users

import (
	"context"
	"testing"
	"time"

	"keazy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) TouchQuery(ctx context.Context, id string, at time.Time) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		u = &models.User{ID: id, CreatedAt: at}
		f.users[id] = u
	}
	u.TotalQueries++
	u.LastQueryAt = &at
	return u, nil
}

func (f *fakeUserRepo) TouchBooking(ctx context.Context, id string, at time.Time) error {
	u, ok := f.users[id]
	if !ok {
		u = &models.User{ID: id, CreatedAt: at}
		f.users[id] = u
	}
	u.TotalBookings++
	u.LastBookingAt = &at
	return nil
}

func TestTouchQueryCreatesAndCounts(t *testing.T) {
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	svc := &DefaultService{Repo: &fakeUserRepo{users: map[string]*models.User{}}, Clock: func() time.Time { return now }}

	u, err := svc.TouchQuery(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.TotalQueries)
	assert.Equal(t, now, *u.LastQueryAt)
	assert.Equal(t, now, u.CreatedAt)

	// Counters only ever go up.
	for i := 2; i <= 5; i++ {
		u, err = svc.TouchQuery(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, int64(i), u.TotalQueries)
	}
}
