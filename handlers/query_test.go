package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"keazy/models"
	"keazy/services/booking"
	"keazy/services/query"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLedger struct {
	detail   *models.BookingDetail
	slot     *models.Slot
	bookings []models.BookingDetail
	err      error
}

func (f *fakeLedger) Book(ctx context.Context, slotID, userID, notes string) (*models.BookingDetail, error) {
	return f.detail, f.err
}

func (f *fakeLedger) Cancel(ctx context.Context, slotID, userID string) (*models.Slot, error) {
	return f.slot, f.err
}

func (f *fakeLedger) UserBookings(ctx context.Context, userID string) ([]models.BookingDetail, error) {
	return f.bookings, f.err
}

func newRouter(h *QueryHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/query", h.HandleQuery)
	r.POST("/api/query/book", h.HandleBook)
	r.POST("/api/query/cancel", h.HandleCancel)
	r.GET("/api/query/bookings/:user_id", h.HandleUserBookings)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleQueryRejectsMalformedBody(t *testing.T) {
	h := NewQueryHandler(&query.Orchestrator{}, &fakeLedger{}, zap.NewNop())
	r := newRouter(h)

	w := doJSON(t, r, http.MethodPost, "/api/query", `{"query_text": "plumber"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleQueryValidationError(t *testing.T) {
	// Whitespace-only text passes JSON binding but fails semantic validation.
	h := NewQueryHandler(&query.Orchestrator{}, &fakeLedger{}, zap.NewNop())
	r := newRouter(h)

	w := doJSON(t, r, http.MethodPost, "/api/query", `{"user_id": "u1", "query_text": "   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleBook(t *testing.T) {
	ledger := &fakeLedger{detail: &models.BookingDetail{
		Slot:     models.Slot{ID: "s1", ServiceName: "plumber", Date: "2024-03-11", Time: "09:00", Status: models.SlotBooked},
		Provider: &models.Provider{ID: "p1", Name: "Mama Fua Services"},
	}}
	h := NewQueryHandler(&query.Orchestrator{}, ledger, zap.NewNop())
	r := newRouter(h)

	w := doJSON(t, r, http.MethodPost, "/api/query/book", `{"user_id": "u1", "slot_id": "s1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Booking struct {
			SlotID  string `json:"slot_id"`
			Status  string `json:"status"`
			Service string `json:"service"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "s1", resp.Booking.SlotID)
	assert.Equal(t, models.SlotBooked, resp.Booking.Status)
	assert.Equal(t, "plumber", resp.Booking.Service)
}

func TestHandleBookUnavailable(t *testing.T) {
	h := NewQueryHandler(&query.Orchestrator{}, &fakeLedger{err: booking.ErrSlotUnavailable}, zap.NewNop())
	r := newRouter(h)

	w := doJSON(t, r, http.MethodPost, "/api/query/book", `{"user_id": "u1", "slot_id": "s1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCancelNotFound(t *testing.T) {
	h := NewQueryHandler(&query.Orchestrator{}, &fakeLedger{err: booking.ErrBookingNotFound}, zap.NewNop())
	r := newRouter(h)

	w := doJSON(t, r, http.MethodPost, "/api/query/cancel", `{"user_id": "u1", "slot_id": "s1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleUserBookings(t *testing.T) {
	ledger := &fakeLedger{bookings: []models.BookingDetail{
		{Slot: models.Slot{ID: "s1", Status: models.SlotBooked, BookedBy: "u1"}},
		{Slot: models.Slot{ID: "s2", Status: models.SlotBooked, BookedBy: "u1"}},
	}}
	h := NewQueryHandler(&query.Orchestrator{}, ledger, zap.NewNop())
	r := newRouter(h)

	w := doJSON(t, r, http.MethodGet, "/api/query/bookings/u1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Count)
}
