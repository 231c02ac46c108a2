package users

import "time"

// User is a provisioned portal account identified by phone number.
type User struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	PINHash   string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
