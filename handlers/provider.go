package handlers

import (
	"net/http"
	"strconv"

	providerRepo "keazy/database/repository/provider"
	slotRepo "keazy/database/repository/slot"
	"keazy/models"
	"keazy/services/matching"
	"keazy/services/slots"
	"keazy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderHandler covers provider registration, availability toggles, slot
// seeding, and the nearby search surface.
type ProviderHandler struct {
	ProviderRepo providerRepo.ProviderRepository
	SlotRepo     slotRepo.SlotRepository
	Matcher      matching.Matcher
	Aggregator   slots.Aggregator
	Logger       *zap.Logger
}

// NewProviderHandler constructs a ProviderHandler.
func NewProviderHandler(pr providerRepo.ProviderRepository, sr slotRepo.SlotRepository, m matching.Matcher, agg slots.Aggregator, logger *zap.Logger) *ProviderHandler {
	return &ProviderHandler{ProviderRepo: pr, SlotRepo: sr, Matcher: m, Aggregator: agg, Logger: logger}
}

type registerProviderRequest struct {
	Name            string   `json:"name" binding:"required"`
	Phone           string   `json:"phone"`
	Service         string   `json:"service" binding:"required"`
	State           string   `json:"state"`
	City            string   `json:"city"`
	Area            string   `json:"area"`
	Lat             *float64 `json:"lat"`
	Lng             *float64 `json:"lng"`
	Rating          float64  `json:"rating"`
	Verified        bool     `json:"verified"`
	AvailableNow    bool     `json:"available_now"`
	ResponseTimeMin int      `json:"response_time_min"`
	HourlyRate      *float64 `json:"hourly_rate"`
}

// Register processes POST /api/providers.
func (h *ProviderHandler) Register(c *gin.Context) {
	var req registerProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	provider := &models.Provider{
		Name:            req.Name,
		Phone:           req.Phone,
		Service:         req.Service,
		Rating:          req.Rating,
		Verified:        req.Verified,
		AvailableNow:    req.AvailableNow,
		ResponseTimeMin: req.ResponseTimeMin,
		HourlyRate:      req.HourlyRate,
		Location: models.Location{
			State: req.State,
			City:  req.City,
			Area:  req.Area,
		},
	}
	if req.Lat != nil && req.Lng != nil {
		provider.Location.Geo = models.NewGeoPoint(*req.Lat, *req.Lng)
	}

	if err := h.ProviderRepo.Create(c.Request.Context(), provider); err != nil {
		h.Logger.Error("provider registration failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to register provider", "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "provider": provider})
}

// SetAvailability processes PATCH /api/providers/:id/availability.
func (h *ProviderHandler) SetAvailability(c *gin.Context) {
	var req struct {
		AvailableNow *bool `json:"available_now" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "available_now is required", err.Error())
		return
	}

	id := c.Param("id")
	if err := h.ProviderRepo.SetAvailability(c.Request.Context(), id, *req.AvailableNow); err != nil {
		utils.JSONError(c, http.StatusNotFound, "provider not found", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type createSlotsRequest struct {
	Slots []struct {
		Date        string `json:"date" binding:"required"`
		Time        string `json:"time" binding:"required"`
		DurationMin int    `json:"duration_min"`
	} `json:"slots" binding:"required"`
}

// CreateSlots processes POST /api/providers/:id/slots.
func (h *ProviderHandler) CreateSlots(c *gin.Context) {
	var req createSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	id := c.Param("id")
	provider, err := h.ProviderRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "provider not found", "")
		return
	}

	newSlots := make([]models.Slot, 0, len(req.Slots))
	for _, s := range req.Slots {
		duration := s.DurationMin
		if duration <= 0 {
			duration = 60
		}
		newSlots = append(newSlots, models.Slot{
			ProviderID:  provider.ID,
			Date:        s.Date,
			Time:        s.Time,
			DurationMin: duration,
			ServiceName: provider.Service,
			Status:      models.SlotAvailable,
		})
	}

	ids, err := h.SlotRepo.CreateMany(c.Request.Context(), newSlots)
	if err != nil {
		h.Logger.Error("slot creation failed", zap.String("provider", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create slots", "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "slot_ids": ids})
}

// Nearby processes GET /api/providers/nearby. It runs the same matcher as
// the query pipeline with a mandatory geo bound.
func (h *ProviderHandler) Nearby(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		utils.JSONError(c, http.StatusBadRequest, "lat and lng are required", "")
		return
	}

	radiusKm, err := strconv.ParseFloat(c.DefaultQuery("radius_km", "10"), 64)
	if err != nil || radiusKm <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "radius_km must be a positive number", "")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	criteria := matching.Criteria{
		Service: c.Query("service"),
		State:   c.Query("state"),
		City:    c.Query("city"),
		Geo:     &providerRepo.GeoQuery{Lat: lat, Lng: lng, RadiusKm: radiusKm},
		Limit:   limit,
	}

	result, err := h.Matcher.Match(c.Request.Context(), criteria)
	if err != nil {
		h.Logger.Error("nearby search failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to search providers", "")
		return
	}

	cards, err := h.Aggregator.Attach(c.Request.Context(), result.Providers)
	if err != nil {
		h.Logger.Error("slot aggregation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load provider slots", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"search_method": result.Method,
		"providers":     cards,
		"count":         len(cards),
	})
}
