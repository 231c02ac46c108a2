package applications

import (
	"encoding/json"
	"time"
)

// StatusPending is the only status the portal assigns; downstream review
// systems own any further transitions.
const StatusPending = "pending"

// Application is a submitted business-registration form. FormData is kept as
// raw JSON so the payload survives storage byte-for-byte.
type Application struct {
	ID        string
	UserID    string
	Company   string
	Country   string
	FormData  json.RawMessage
	Status    string
	CreatedAt time.Time
}
