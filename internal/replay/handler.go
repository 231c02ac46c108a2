package replay

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"regportal-backend/internal/shared/server/middleware"
	"regportal-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the queue replay route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/process-queue", h.processQueue)
}

type processQueueRequest struct {
	QueueItems []Item `json:"queue_items"`
}

func (h *Handler) processQueue(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req processQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	results := h.Svc.Process(c.Request.Context(), userID, req.QueueItems)
	respond.JSON(c, http.StatusOK, gin.H{
		"success":         true,
		"processed_items": results,
	})
}
