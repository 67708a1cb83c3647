package reclam

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"reclamation/internal/domain"
	"reclamation/internal/middleware"
	"reclamation/internal/pkg/params"
	"reclamation/internal/pkg/response"
	"reclamation/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	validator.Engine()
	return &Handler{service: service}
}

// RegisterRoutes mounts /reclams on an authenticated group. Triage
// operations and cross-user listings are for agents and admins.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	reclams := protected.Group("/reclams")
	{
		reclams.POST("", h.Create)
		reclams.GET("", middleware.StaffOnly(), h.List)
		reclams.GET("/me", h.ListMine)
		reclams.GET("/stats", middleware.AdminOnly(), h.Stats)
		reclams.GET("/search", middleware.StaffOnly(), h.Search)
		reclams.GET("/region/:regionId", middleware.StaffOnly(), h.ListByRegion)
		reclams.GET("/priority/:priority", middleware.StaffOnly(), h.ListByPriority)
		reclams.GET("/:id", h.Get)
		reclams.PUT("/:id", h.Update)
		reclams.PATCH("/status/:id", middleware.StaffOnly(), h.UpdateStatus)
		reclams.PATCH("/reject/:id", middleware.StaffOnly(), h.Reject)
		reclams.PATCH("/agency/:id", middleware.StaffOnly(), h.UpdateAgency)
		reclams.DELETE("/:id", h.Delete)
	}
}

func actorFrom(c *gin.Context) Actor {
	return Actor{ID: middleware.UserID(c), Role: domain.UserRole(middleware.Role(c))}
}

func (h *Handler) Create(c *gin.Context) {
	var req ReclamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	rec, err := h.service.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rec)
}

func (h *Handler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) ListMine(c *gin.Context) {
	rows, err := h.service.ListMine(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		return
	}
	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

func (h *Handler) ListByRegion(c *gin.Context) {
	regionID, ok := params.ID(c, "regionId")
	if !ok {
		return
	}
	rows, err := h.service.ListByRegion(c.Request.Context(), regionID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) ListByPriority(c *gin.Context) {
	rows, err := h.service.ListByPriority(c.Request.Context(), c.Param("priority"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) Search(c *gin.Context) {
	rows, err := h.service.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		return
	}
	var req ReclamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	rec, err := h.service.Update(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	rec, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		return
	}
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	rec, err := h.service.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

func (h *Handler) UpdateAgency(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		return
	}
	var req AgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	rec, err := h.service.UpdateAgency(c.Request.Context(), id, req.Agency)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Reclamation deleted"})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var fe *FieldError
	switch {
	case errors.As(err, &fe):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing or invalid fields",
			map[string]string{fe.Field: fe.Reason})
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Status must be one of pending, in_progress, resolved, closed")
	case errors.Is(err, ErrInvalidPriority):
		response.Error(c, http.StatusBadRequest, "INVALID_PRIORITY", "Priority must be one of low, medium, high")
	case errors.Is(err, ErrEmptyQuery):
		response.Error(c, http.StatusBadRequest, "QUERY_REQUIRED", "Search query is required")
	case errors.Is(err, ErrNotPending):
		response.Error(c, http.StatusBadRequest, "RECLAM_NOT_PENDING", "Only pending reclamations can be updated")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrRegionNotFound):
		response.Error(c, http.StatusNotFound, "REGION_NOT_FOUND", "Region not found")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "RECLAM_NOT_FOUND", "Reclamation not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Reclamation operation failed")
	}
}
