package media

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/abduss/memorial/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes mounts the listing endpoints under the provided router group.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.GET("/media", handler.listGallery)
	group.GET("/tributes", handler.listTributes)
}

type httpHandler struct {
	service *Service
}

func (h *httpHandler) listGallery(c *gin.Context) {
	kind, err := ParseKind(c.Query("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.service.Gallery(c.Request.Context(), c.Query("cursor"), kind)
	if err != nil {
		writeListError(c, "list gallery", err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *httpHandler) listTributes(c *gin.Context) {
	visitorsOnly := false
	if raw := c.Query("visitors"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "visitors must be a boolean"})
			return
		}
		visitorsOnly = parsed
	}

	page, err := h.service.Tributes(c.Request.Context(), c.Query("cursor"), visitorsOnly)
	if err != nil {
		writeListError(c, "list tributes", err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func writeListError(c *gin.Context, op string, err error) {
	if errors.Is(err, ErrInvalidCursor) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logger.FromContext(c).Error(op, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
