package models

import "time"

// AppointmentRequest is a visitor-submitted request for an
// appointment. There is no state machine; a row exists until the
// admin deletes it.
type AppointmentRequest struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	PreferredDate *string   `json:"preferred_date"`
	Reason        *string   `json:"reason"`
	Message       *string   `json:"message"`
	CreatedAt     time.Time `json:"created_at"`
}
