package applications

import (
	"encoding/json"
	"net/http"
	"time"

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

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/applications", h.submit)
	rg.GET("/applications", h.list)
}

type submitRequest struct {
	Company  string          `json:"company"`
	Country  string          `json:"country"`
	FormData json.RawMessage `json:"form_data"`
}

type applicationSummary struct {
	ID        string          `json:"id"`
	Company   string          `json:"company"`
	Country   string          `json:"country"`
	FormData  json.RawMessage `json:"form_data"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

func (h *Handler) submit(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	app, err := h.Svc.Submit(c.Request.Context(), userID, req.Company, req.Country, req.FormData)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit application", nil)
		return
	}

	c.Set("applicationId", app.ID)
	respond.JSON(c, http.StatusCreated, gin.H{
		"success":        true,
		"application_id": app.ID,
		"message":        "Application submitted successfully",
	})
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	apps, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}

	resp := make([]applicationSummary, 0, len(apps))
	for _, app := range apps {
		resp = append(resp, applicationSummary{
			ID:        app.ID,
			Company:   app.Company,
			Country:   app.Country,
			FormData:  app.FormData,
			Status:    app.Status,
			CreatedAt: app.CreatedAt,
		})
	}
	respond.JSON(c, http.StatusOK, gin.H{"applications": resp})
}
