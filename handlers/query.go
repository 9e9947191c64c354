package handlers

import (
	"errors"
	"net/http"

	"keazy/models"
	"keazy/services/booking"
	"keazy/services/intent"
	"keazy/services/query"
	"keazy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QueryHandler exposes the query-to-booking pipeline over HTTP.
type QueryHandler struct {
	Orchestrator *query.Orchestrator
	Ledger       booking.Ledger
	Logger       *zap.Logger
}

// NewQueryHandler constructs a QueryHandler.
func NewQueryHandler(orch *query.Orchestrator, ledger booking.Ledger, logger *zap.Logger) *QueryHandler {
	return &QueryHandler{Orchestrator: orch, Ledger: ledger, Logger: logger}
}

// HandleQuery processes POST /api/query.
func (h *QueryHandler) HandleQuery(c *gin.Context) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	resp, err := h.Orchestrator.Handle(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, query.ErrValidation):
			utils.JSONError(c, http.StatusBadRequest, "query_text and user_id are required", "")
		case errors.Is(err, query.ErrIntentUndetectable):
			utils.JSONError(c, http.StatusBadRequest, "could not detect a service from the query", "try rephrasing, e.g. 'I need a plumber'")
		case errors.Is(err, intent.ErrClassifierUnavailable):
			utils.JSONError(c, http.StatusInternalServerError, "classification service unavailable", "")
		default:
			h.Logger.Error("query failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to process query", "")
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleBook processes POST /api/query/book.
func (h *QueryHandler) HandleBook(c *gin.Context) {
	var req models.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	detail, err := h.Ledger.Book(c.Request.Context(), req.SlotID, req.UserID, req.Notes)
	if err != nil {
		if errors.Is(err, booking.ErrSlotUnavailable) {
			utils.JSONError(c, http.StatusBadRequest, "slot unavailable", "it may have just been booked; refresh and pick another")
			return
		}
		h.Logger.Error("booking failed", zap.String("slot", req.SlotID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to book slot", "")
		return
	}

	bookingView := gin.H{
		"slot_id": detail.Slot.ID,
		"service": detail.Slot.ServiceName,
		"date":    detail.Slot.Date,
		"time":    detail.Slot.Time,
		"status":  detail.Slot.Status,
	}
	if detail.Provider != nil {
		bookingView["provider"] = detail.Provider
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": bookingView})
}

// HandleCancel processes POST /api/query/cancel.
func (h *QueryHandler) HandleCancel(c *gin.Context) {
	var req models.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	if _, err := h.Ledger.Cancel(c.Request.Context(), req.SlotID, req.UserID); err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusBadRequest, "booking not found or not yours to cancel", "")
			return
		}
		h.Logger.Error("cancel failed", zap.String("slot", req.SlotID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel booking", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "booking cancelled, slot released"})
}

// HandleUserBookings processes GET /api/query/bookings/:user_id.
func (h *QueryHandler) HandleUserBookings(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		utils.JSONError(c, http.StatusBadRequest, "user_id is required", "")
		return
	}

	details, err := h.Ledger.UserBookings(c.Request.Context(), userID)
	if err != nil {
		h.Logger.Error("listing bookings failed", zap.String("user", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": details, "count": len(details)})
}
