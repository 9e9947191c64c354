package slots

import (
	"context"
	"sort"
	"testing"
	"time"

	slotRepo "keazy/database/repository/slot"
	"keazy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSlotRepo struct {
	slotRepo.SlotRepository

	slots map[string][]models.Slot // providerID -> slots
	calls []struct {
		providerID string
		from       string
		limit      int64
	}
}

func (f *fakeSlotRepo) NextAvailable(ctx context.Context, providerID, from string, limit int64) ([]models.Slot, error) {
	f.calls = append(f.calls, struct {
		providerID string
		from       string
		limit      int64
	}{providerID, from, limit})

	eligible := make([]models.Slot, 0)
	for _, s := range f.slots[providerID] {
		if s.Status == models.SlotAvailable && s.Date >= from {
			eligible = append(eligible, s)
		}
	}
	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].Date != eligible[j].Date {
			return eligible[i].Date < eligible[j].Date
		}
		return eligible[i].Time < eligible[j].Time
	})
	if int64(len(eligible)) > limit {
		eligible = eligible[:limit]
	}
	return eligible, nil
}

func daySlots(providerID, date string, times ...string) []models.Slot {
	out := make([]models.Slot, len(times))
	for i, at := range times {
		out[i] = models.Slot{
			ID:          providerID + "-" + date + "-" + at,
			ProviderID:  providerID,
			Date:        date,
			Time:        at,
			DurationMin: 60,
			Status:      models.SlotAvailable,
		}
	}
	return out
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
}

func TestAttachCapsSlotsPerProvider(t *testing.T) {
	repo := &fakeSlotRepo{slots: map[string][]models.Slot{}}
	for _, date := range []string{"2024-03-10", "2024-03-11", "2024-03-12"} {
		repo.slots["p1"] = append(repo.slots["p1"], daySlots("p1", date, "09:00", "11:00", "14:00")...)
	}

	agg := &DefaultAggregator{SlotRepo: repo, Clock: fixedClock}
	cards, err := agg.Attach(context.Background(), []models.Provider{{ID: "p1"}})
	require.NoError(t, err)

	require.Len(t, cards, 1)
	assert.Len(t, cards[0].NextSlots, SlotsPerProvider)
	// Ordered by (date, time) from today onward.
	assert.Equal(t, "p1-2024-03-10-09:00", cards[0].NextSlots[0].ID)
	assert.Equal(t, "p1-2024-03-11-11:00", cards[0].NextSlots[4].ID)

	require.Len(t, repo.calls, 1)
	assert.Equal(t, "2024-03-10", repo.calls[0].from)
	assert.Equal(t, int64(SlotsPerProvider), repo.calls[0].limit)
}

func TestAttachSkipsPastAndBookedSlots(t *testing.T) {
	repo := &fakeSlotRepo{slots: map[string][]models.Slot{
		"p1": {
			{ID: "past", ProviderID: "p1", Date: "2024-03-09", Time: "09:00", Status: models.SlotAvailable},
			{ID: "taken", ProviderID: "p1", Date: "2024-03-11", Time: "09:00", Status: models.SlotBooked, BookedBy: "someone"},
			{ID: "open", ProviderID: "p1", Date: "2024-03-11", Time: "10:00", Status: models.SlotAvailable},
		},
	}}

	agg := &DefaultAggregator{SlotRepo: repo, Clock: fixedClock}
	cards, err := agg.Attach(context.Background(), []models.Provider{{ID: "p1"}})
	require.NoError(t, err)

	require.Len(t, cards, 1)
	require.Len(t, cards[0].NextSlots, 1)
	assert.Equal(t, "open", cards[0].NextSlots[0].ID)
}

func TestAttachEmptyCalendar(t *testing.T) {
	repo := &fakeSlotRepo{slots: map[string][]models.Slot{}}

	agg := &DefaultAggregator{SlotRepo: repo, Clock: fixedClock}
	cards, err := agg.Attach(context.Background(), []models.Provider{{ID: "p1"}, {ID: "p2"}})
	require.NoError(t, err)

	require.Len(t, cards, 2)
	for _, card := range cards {
		assert.NotNil(t, card.NextSlots, "cards carry an empty list, not null")
		assert.Empty(t, card.NextSlots)
	}
}

func TestAttachRoundsDistance(t *testing.T) {
	repo := &fakeSlotRepo{slots: map[string][]models.Slot{}}
	meters := 3456.789

	agg := &DefaultAggregator{SlotRepo: repo, Clock: fixedClock}
	cards, err := agg.Attach(context.Background(), []models.Provider{
		{ID: "near", DistanceMeters: &meters},
		{ID: "unknown"},
	})
	require.NoError(t, err)

	require.Len(t, cards, 2)
	require.NotNil(t, cards[0].DistanceKm)
	assert.Equal(t, 3.46, *cards[0].DistanceKm)
	assert.Nil(t, cards[1].DistanceKm)
}
