package handlers

import (
	"net/http"
	"strings"

	serviceRepo "keazy/database/repository/service"
	"keazy/models"
	"keazy/services/catalog"
	"keazy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServiceHandler is the admin surface for service categories. Every write
// invalidates the synonym cache so edits are visible on the next query.
type ServiceHandler struct {
	Repo    serviceRepo.ServiceRepository
	Catalog *catalog.Catalog
	Logger  *zap.Logger
}

// NewServiceHandler constructs a ServiceHandler.
func NewServiceHandler(repo serviceRepo.ServiceRepository, cat *catalog.Catalog, logger *zap.Logger) *ServiceHandler {
	return &ServiceHandler{Repo: repo, Catalog: cat, Logger: logger}
}

type upsertServiceRequest struct {
	Name     string   `json:"name"`
	Synonyms []string `json:"synonyms" binding:"required"`
	Enabled  *bool    `json:"enabled"`
}

// Create processes POST /api/services.
func (h *ServiceHandler) Create(c *gin.Context) {
	var req upsertServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		utils.JSONError(c, http.StatusBadRequest, "name and synonyms are required", "")
		return
	}
	h.upsert(c, req.Name, req)
}

// Update processes PUT /api/services/:name.
func (h *ServiceHandler) Update(c *gin.Context) {
	var req upsertServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "synonyms are required", err.Error())
		return
	}
	h.upsert(c, c.Param("name"), req)
}

func (h *ServiceHandler) upsert(c *gin.Context, name string, req upsertServiceRequest) {
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	// Keywords are matched lowercase; normalize on the way in.
	synonyms := make([]string, 0, len(req.Synonyms))
	for _, s := range req.Synonyms {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			synonyms = append(synonyms, s)
		}
	}

	svc := &models.Service{
		Name:     strings.ToLower(strings.TrimSpace(name)),
		Synonyms: synonyms,
		Enabled:  enabled,
	}
	if err := h.Repo.Upsert(c.Request.Context(), svc); err != nil {
		h.Logger.Error("service upsert failed", zap.String("service", svc.Name), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to save service", "")
		return
	}

	h.Catalog.Invalidate()
	c.JSON(http.StatusOK, gin.H{"success": true, "service": svc})
}
