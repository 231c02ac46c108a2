package regbodies

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"regportal-backend/internal/shared/server/respond"
)

//go:embed regulatory_bodies.json
var bodiesJSON []byte

// Body describes one regulatory body a registrant may need to deal with.
type Body struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Description  string `json:"description"`
	Website      string `json:"website"`
	Category     string `json:"category"`
}

// Handler serves the regulatory bodies listing.
type Handler struct {
	bodies []Body
}

// NewHandler constructs a Handler from the embedded dataset.
func NewHandler() (*Handler, error) {
	var bodies []Body
	if err := json.Unmarshal(bodiesJSON, &bodies); err != nil {
		return nil, err
	}
	return &Handler{bodies: bodies}, nil
}

// RegisterRoutes attaches the regulatory bodies route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/regulatory-bodies", h.list)
}

func (h *Handler) list(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{"regulatory_bodies": h.bodies})
}
