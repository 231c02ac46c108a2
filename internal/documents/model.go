package documents

import (
	"math"
	"time"
)

// Document status values. A replaced document never becomes active again.
const (
	StatusActive   = "active"
	StatusReplaced = "replaced"
)

// Derived expiry classification.
const (
	ExpiryValid    = "valid"
	ExpiryExpiring = "expiring"
	ExpiryExpired  = "expired"
)

// expiringWindowDays is the number of remaining days at or under which a
// document counts as expiring.
const expiringWindowDays = 7

// Document represents an uploaded supporting document owned by a user.
type Document struct {
	ID               string
	UserID           string
	DocumentType     string
	FileName         string
	StorageKey       string
	MimeType         string
	SizeBytes        int64
	ExtractedTextKey string
	UploadDate       time.Time
	ExpiryDate       *time.Time
	Status           string
}

// ClassifyExpiry derives the expiry status and remaining days for a document
// at the given instant. Documents without an expiry date are always valid and
// carry no days-remaining value.
func ClassifyExpiry(expiry *time.Time, now time.Time) (string, *int) {
	if expiry == nil {
		return ExpiryValid, nil
	}
	days := int(math.Ceil(expiry.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return ExpiryExpired, &days
	case days <= expiringWindowDays:
		return ExpiryExpiring, &days
	default:
		return ExpiryValid, &days
	}
}
