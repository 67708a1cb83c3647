package upload

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"reclamation/internal/pkg/response"
)

// multipart overhead allowed on top of the file itself
const formOverhead = 1 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the upload endpoint on an authenticated group.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/upload/image", h.Image)
}

// RegisterStatic serves stored files under /uploads.
func (h *Handler) RegisterStatic(r *gin.Engine) {
	r.Static(StaticURLBase, h.service.Dir())
}

func (h *Handler) Image(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.service.MaxSize()+formOverhead)

	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, ErrFileTooLarge)
			return
		}
		h.fail(c, ErrNoFile)
		return
	}

	stored, err := h.service.Save(fh)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, stored)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNoFile):
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No file uploaded in field 'image'")
	case errors.Is(err, ErrEmptyFile):
		response.Error(c, http.StatusBadRequest, "EMPTY_FILE", "Uploaded file is empty")
	case errors.Is(err, ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Uploaded file is too large")
	case errors.Is(err, ErrInvalidMimeType):
		response.Error(c, http.StatusUnsupportedMediaType, "INVALID_FILE_TYPE", "Only jpeg, png, gif, webp and pdf files are accepted")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Could not store file")
	}
}
