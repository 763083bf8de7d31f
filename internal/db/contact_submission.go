package db

import "time"

const (
	BookingStatusNew       = "new"
	BookingStatusContacted = "contacted"
	BookingStatusClosed    = "closed"
)

// ContactSubmission is a booking or contact request sent from the public site.
type ContactSubmission struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"size:120;not null" json:"name"`
	Email         string     `gorm:"size:200;not null;index" json:"email"`
	Phone         string     `gorm:"size:40" json:"phone"`
	Service       string     `gorm:"size:120" json:"service"`
	Message       string     `gorm:"type:text" json:"message"`
	PreferredDate *time.Time `json:"preferredDate,omitempty"`
	Status        string     `gorm:"size:20;not null;default:new;index" json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
