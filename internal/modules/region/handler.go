package region

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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

// RegisterRoutes mounts /regions on an authenticated group. Writes are admin only.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	regions := protected.Group("/regions")
	{
		regions.GET("", h.List)
		regions.GET("/:id", h.Get)
		regions.GET("/:id/agents", middleware.StaffOnly(), h.Agents)
		regions.POST("", middleware.AdminOnly(), h.Create)
		regions.PUT("/:id", middleware.AdminOnly(), h.Update)
		regions.DELETE("/:id", middleware.AdminOnly(), h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req RegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	region, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, region)
}

func (h *Handler) List(c *gin.Context) {
	regions, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, regions)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		return
	}
	region, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, region)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		return
	}
	var req RegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	region, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, region)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Region deleted"})
}

func (h *Handler) Agents(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		return
	}
	agents, err := h.service.Agents(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, agents)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "REGION_NOT_FOUND", "Region not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Region operation failed")
	}
}
