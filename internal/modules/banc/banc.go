// Package banc verifies a claimed national id and name against the bank's
// reference list.
package banc

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reclamation/internal/domain"
	"reclamation/internal/pkg/response"
	"reclamation/internal/pkg/validator"
	"reclamation/internal/repository"
)

var ErrNotVerified = errors.New("identity not verified")

type Finder interface {
	FindByCIN(ctx context.Context, cin string) (*domain.Banc, error)
}

type VerifyRequest struct {
	CIN  string `json:"cin" binding:"required"`
	Name string `json:"name" binding:"required"`
}

type VerifyResult struct {
	Verified bool         `json:"verified"`
	Record   *domain.Banc `json:"record"`
}

type Service struct {
	bancs Finder
}

func NewService(bancs Finder) *Service {
	return &Service{bancs: bancs}
}

// Verify matches cin exactly and name, case-insensitively, against either
// the short or the full name on record.
func (s *Service) Verify(ctx context.Context, cin, name string) (*domain.Banc, error) {
	name = strings.Join(strings.Fields(name), " ")
	if strings.TrimSpace(cin) == "" || name == "" {
		return nil, ErrNotVerified
	}

	rec, err := s.bancs.FindByCIN(ctx, cin)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotVerified
		}
		return nil, err
	}
	if !strings.EqualFold(rec.Name, name) && !strings.EqualFold(rec.FullName, name) {
		return nil, ErrNotVerified
	}
	return rec, nil
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	validator.Engine()
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup, limit gin.HandlerFunc) {
	api.POST("/banc/verify", limit, h.Verify)
}

func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	rec, err := h.service.Verify(c.Request.Context(), req.CIN, req.Name)
	if err != nil {
		if errors.Is(err, ErrNotVerified) {
			response.Error(c, http.StatusNotFound, "NOT_VERIFIED", "No matching record for this CIN and name")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Verification failed")
		return
	}
	response.Success(c, http.StatusOK, VerifyResult{Verified: true, Record: rec})
}
