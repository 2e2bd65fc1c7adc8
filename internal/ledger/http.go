package ledger

import (
	"context"
	"net/http"
	"strconv"

	"github.com/abduss/memorial/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

type entryLister interface {
	List(ctx context.Context, limit int) ([]Entry, error)
}

// RegisterRoutes mounts the ledger listing. With a nil lister the route reports
// that the ledger is disabled.
func RegisterRoutes(group *gin.RouterGroup, lister entryLister) {
	handler := &httpHandler{lister: lister}
	group.GET("/uploads", handler.listUploads)
}

type httpHandler struct {
	lister entryLister
}

func (h *httpHandler) listUploads(c *gin.Context) {
	if h.lister == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "upload ledger is disabled"})
		return
	}

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(parsed, maxListLimit)
	}

	entries, err := h.lister.List(c.Request.Context(), limit)
	if err != nil {
		logger.FromContext(c).Error("list uploads", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list uploads"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"uploads": entries})
}
