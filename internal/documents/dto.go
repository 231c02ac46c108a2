package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID              string     `json:"id"`
	DocumentType    string     `json:"document_type"`
	Filename        string     `json:"filename"`
	UploadDate      time.Time  `json:"upload_date"`
	ExpiryDate      *time.Time `json:"expiry_date"`
	Status          string     `json:"status"`
	ExpiryStatus    string     `json:"expiry_status"`
	DaysUntilExpiry *int       `json:"days_until_expiry"`
}

func toResponse(doc Annotated) DocumentResponse {
	return DocumentResponse{
		ID:              doc.ID,
		DocumentType:    doc.DocumentType,
		Filename:        doc.FileName,
		UploadDate:      doc.UploadDate,
		ExpiryDate:      doc.ExpiryDate,
		Status:          doc.Status,
		ExpiryStatus:    doc.ExpiryStatus,
		DaysUntilExpiry: doc.DaysUntilExpiry,
	}
}
