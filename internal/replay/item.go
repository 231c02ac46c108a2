package replay

import "encoding/json"

// Item type tags.
const (
	TypeDocument    = "document"
	TypeApplication = "application"
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Item is one client-buffered operation queued while offline. Document items
// carry their bytes as a data-URI (base64 payload after the first comma);
// application items carry the same fields as a live submission. UserID is the
// item-embedded owner used only when no session owner is supplied.
type Item struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	UserID string `json:"user_id,omitempty"`

	// Document fields. Clients send either an absolute expiry date or a
	// day count, never both.
	FileData     string `json:"file_data,omitempty"`
	DocumentType string `json:"document_type,omitempty"`
	Filename     string `json:"filename,omitempty"`
	ExpiryDate   string `json:"expiry_date,omitempty"`
	ExpiryDays   *int   `json:"expiry_days,omitempty"`

	// Application fields.
	Company  string          `json:"company,omitempty"`
	Country  string          `json:"country,omitempty"`
	FormData json.RawMessage `json:"form_data,omitempty"`
}

// Result is the per-item outcome of a replay batch.
type Result struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
