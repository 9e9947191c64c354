package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	providerRepo "keazy/database/repository/provider"
	userRepo "keazy/database/repository/user"
	"keazy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeSlotRepo mirrors the store's conditional-update semantics: the status
// precondition is checked and applied under one lock, as Mongo does for a
// single document.
type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[string]models.Slot
}

func newFakeSlotRepo(slots ...models.Slot) *fakeSlotRepo {
	m := make(map[string]models.Slot, len(slots))
	for _, s := range slots {
		m[s.ID] = s
	}
	return &fakeSlotRepo{slots: m}
}

func (f *fakeSlotRepo) CreateMany(ctx context.Context, slots []models.Slot) ([]string, error) {
	return nil, nil
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &s, nil
}

func (f *fakeSlotRepo) NextAvailable(ctx context.Context, providerID, from string, limit int64) ([]models.Slot, error) {
	return nil, nil
}

func (f *fakeSlotRepo) Book(ctx context.Context, slotID, userID, notes string, at time.Time) (*models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotID]
	if !ok || s.Status != models.SlotAvailable {
		return nil, fmt.Errorf("failed to book slot %s: %w", slotID, mongo.ErrNoDocuments)
	}
	s.Status = models.SlotBooked
	s.BookedBy = userID
	s.BookedAt = &at
	s.BookingNotes = notes
	f.slots[slotID] = s
	return &s, nil
}

func (f *fakeSlotRepo) Cancel(ctx context.Context, slotID, userID string) (*models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotID]
	if !ok || s.Status != models.SlotBooked || s.BookedBy != userID {
		return nil, fmt.Errorf("failed to cancel slot %s: %w", slotID, mongo.ErrNoDocuments)
	}
	s.Status = models.SlotAvailable
	s.BookedBy = ""
	s.BookedAt = nil
	s.BookingNotes = ""
	f.slots[slotID] = s
	return &s, nil
}

func (f *fakeSlotRepo) BookedBy(ctx context.Context, userID string) ([]models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Slot
	for _, s := range f.slots {
		if s.Status == models.SlotBooked && s.BookedBy == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeProviderRepo struct {
	providerRepo.ProviderRepository
	provider *models.Provider
}

func (f *fakeProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	if f.provider == nil {
		return nil, mongo.ErrNoDocuments
	}
	return f.provider, nil
}

type fakeUserRepo struct {
	userRepo.UserRepository
	mu       sync.Mutex
	bookings map[string]int
}

func (f *fakeUserRepo) TouchBooking(ctx context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bookings == nil {
		f.bookings = make(map[string]int)
	}
	f.bookings[id]++
	return nil
}

func availableSlot(id string) models.Slot {
	return models.Slot{
		ID:          id,
		ProviderID:  "prov-1",
		Date:        "2026-09-01",
		Time:        "09:00",
		DurationMin: 120,
		ServiceName: "plumber",
		Status:      models.SlotAvailable,
	}
}

func newLedger(slots *fakeSlotRepo, usersRepo *fakeUserRepo) *DefaultLedger {
	return &DefaultLedger{
		SlotRepo:     slots,
		ProviderRepo: &fakeProviderRepo{provider: &models.Provider{ID: "prov-1", Name: "Otieno Plumbing Works"}},
		UserRepo:     usersRepo,
	}
}

func TestBookSuccess(t *testing.T) {
	slots := newFakeSlotRepo(availableSlot("s1"))
	usersRepo := &fakeUserRepo{}
	ledger := newLedger(slots, usersRepo)

	detail, err := ledger.Book(context.Background(), "s1", "user-a", "leaking sink")
	require.NoError(t, err)
	assert.Equal(t, models.SlotBooked, detail.Slot.Status)
	assert.Equal(t, "user-a", detail.Slot.BookedBy)
	assert.Equal(t, "leaking sink", detail.Slot.BookingNotes)
	require.NotNil(t, detail.Provider)
	assert.Equal(t, "Otieno Plumbing Works", detail.Provider.Name)
	assert.Equal(t, 1, usersRepo.bookings["user-a"])
}

func TestBookUnavailableSlot(t *testing.T) {
	booked := availableSlot("s1")
	booked.Status = models.SlotBooked
	booked.BookedBy = "user-a"
	ledger := newLedger(newFakeSlotRepo(booked), &fakeUserRepo{})

	_, err := ledger.Book(context.Background(), "s1", "user-b", "")
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBookUnknownSlot(t *testing.T) {
	ledger := newLedger(newFakeSlotRepo(), &fakeUserRepo{})

	_, err := ledger.Book(context.Background(), "missing", "user-a", "")
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestConcurrentBookersExactlyOneWins(t *testing.T) {
	slots := newFakeSlotRepo(availableSlot("s1"))
	usersRepo := &fakeUserRepo{}
	ledger := newLedger(slots, usersRepo)

	const bookers = 16
	var wg sync.WaitGroup
	errs := make([]error, bookers)
	for i := 0; i < bookers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.Book(context.Background(), "s1", fmt.Sprintf("user-%d", i), "")
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrSlotUnavailable)
		}
	}
	assert.Equal(t, 1, wins)

	final, err := slots.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, models.SlotBooked, final.Status)
	assert.NotEmpty(t, final.BookedBy)
}

func TestCancelByNonOwnerRejected(t *testing.T) {
	slots := newFakeSlotRepo(availableSlot("s1"))
	ledger := newLedger(slots, &fakeUserRepo{})

	_, err := ledger.Book(context.Background(), "s1", "user-b", "")
	require.NoError(t, err)

	_, err = ledger.Cancel(context.Background(), "s1", "user-a")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	// State is untouched.
	final, err := slots.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, models.SlotBooked, final.Status)
	assert.Equal(t, "user-b", final.BookedBy)
}

func TestBookThenCancelRestoresSlot(t *testing.T) {
	original := availableSlot("s1")
	slots := newFakeSlotRepo(original)
	ledger := newLedger(slots, &fakeUserRepo{})

	_, err := ledger.Book(context.Background(), "s1", "user-a", "notes")
	require.NoError(t, err)

	cancelled, err := ledger.Cancel(context.Background(), "s1", "user-a")
	require.NoError(t, err)

	// Everything but the status value identity matches the pre-booking state.
	assert.Equal(t, original, *cancelled)
	assert.Equal(t, models.SlotAvailable, cancelled.Status)
	assert.Empty(t, cancelled.BookedBy)
	assert.Nil(t, cancelled.BookedAt)
	assert.Empty(t, cancelled.BookingNotes)
}

func TestCancelOnAvailableSlotRejected(t *testing.T) {
	ledger := newLedger(newFakeSlotRepo(availableSlot("s1")), &fakeUserRepo{})

	_, err := ledger.Cancel(context.Background(), "s1", "user-a")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
