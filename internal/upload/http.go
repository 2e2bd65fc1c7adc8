package upload

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/abduss/memorial/internal/logger"
	"github.com/abduss/memorial/internal/media"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// formOverhead is the multipart framing allowed on top of the file itself.
const formOverhead = 1 << 20

// RegisterRoutes mounts the visitor upload endpoints under the provided router group.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.POST("/upload", handler.upload)
	group.POST("/tributes", handler.submitTribute)
}

// RegisterOperatorRoutes mounts gallery publishing. The group must be authenticated.
func RegisterOperatorRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.POST("/media", handler.publish)
}

type httpHandler struct {
	service *Service
}

func (h *httpHandler) upload(c *gin.Context) {
	fileHeader, err := h.formFile(c, true)
	if err != nil {
		writeError(c, "upload", err)
		return
	}

	res, err := h.service.Upload(c.Request.Context(), fileHeader, media.ParseContext(c.PostForm("context")))
	if err != nil {
		writeError(c, "upload", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *httpHandler) publish(c *gin.Context) {
	fileHeader, err := h.formFile(c, true)
	if err != nil {
		writeError(c, "publish", err)
		return
	}

	res, err := h.service.Publish(c.Request.Context(), fileHeader, media.ParseContext(c.PostForm("context")))
	if err != nil {
		writeError(c, "publish", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *httpHandler) submitTribute(c *gin.Context) {
	fileHeader, err := h.formFile(c, false)
	if err != nil {
		writeError(c, "submit tribute", err)
		return
	}

	tribute := Tribute{Name: c.PostForm("name"), Story: c.PostForm("story")}
	res, err := h.service.Submit(c.Request.Context(), tribute, fileHeader)
	if err != nil {
		writeError(c, "submit tribute", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// formFile reads the "file" field. A missing optional file yields nil, nil.
func (h *httpHandler) formFile(c *gin.Context, required bool) (*multipart.FileHeader, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.service.cfg.MaxUploadBytes+formOverhead)

	fileHeader, err := c.FormFile("file")
	if err == nil {
		return fileHeader, nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return nil, ErrFileTooLarge
	}
	if !required && (errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart)) {
		return nil, nil
	}
	return nil, ErrMissingFile
}

func writeError(c *gin.Context, op string, err error) {
	if IsClientError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logger.FromContext(c).Error(op, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
