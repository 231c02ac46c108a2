package ussd

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"regportal-backend/internal/shared/server/respond"
)

// fields is the canned registry-lookup data returned for autofill requests.
// A real deployment would proxy a USSD gateway; the portal ships with a fixed
// demo profile instead.
var fields = map[string]string{
	"firstName":           "Thabo",
	"lastName":            "Mthembu",
	"idNumber":            "8501234567089",
	"dateOfBirth":         "1985-02-15",
	"phone":               "+27821234567",
	"email":               "thabo.mthembu@email.com",
	"residentialAddress":  "123 Nelson Mandela Drive, Sandton",
	"city":                "Johannesburg",
	"postalCode":          "2196",
	"taxNumber":           "TRN1234567890",
	"companyName":         "Ubuntu Tech Solutions",
	"alternativeName":     "UTS Holdings",
	"businessDescription": "Information technology consulting and software development services for SMEs.",
	"businessAddress":     "456 Business Park, Rivonia Boulevard, Sandton",
	"shareCapital":        "100000",
}

// Handler serves the mocked USSD autofill lookups.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches the USSD route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ussd", h.lookup)
}

type lookupRequest struct {
	FieldName string `json:"field_name"`
}

func (h *Handler) lookup(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	field := strings.TrimSpace(req.FieldName)
	value, ok := fields[field]
	if !ok {
		respond.Error(c, http.StatusBadRequest, "field_unavailable", "Field not available via USSD", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"data":    value,
	})
}
