package users

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"regportal-backend/internal/shared/auth"
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

// RegisterPublicRoutes attaches routes that do not require a session.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.login)
	rg.POST("/logout", h.logout)
}

// RegisterRoutes attaches session-scoped routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}

type loginRequest struct {
	Phone string `json:"phone"`
	Pin   string `json:"pin"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Phone) == "" || req.Pin == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "phone and pin are required", nil)
		return
	}

	user, err := h.Svc.Authenticate(c.Request.Context(), req.Phone, req.Pin)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "login failed", nil)
		return
	}

	token, err := auth.SignSession(user.ID, user.Phone, user.Name)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "login failed", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"phone": user.Phone,
		},
	})
}

// logout is idempotent: sessions are stateless tokens, so there is nothing to
// tear down server-side and a second call succeeds the same way.
func (h *Handler) logout(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{"success": true})
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"phone": user.Phone,
	})
}
