package models

import (
	"strings"
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

// IsValid reports whether s is a known status.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// ParseAppointmentStatus matches raw against the known statuses ignoring case and
// surrounding whitespace.
func ParseAppointmentStatus(raw string) (AppointmentStatus, bool) {
	status := AppointmentStatus(strings.ToUpper(strings.TrimSpace(raw)))
	return status, status.IsValid()
}

// Appointment represents a booking between a customer and a doctor
type Appointment struct {
	BaseModel
	CustomerID  uint              `gorm:"index;not null" json:"customerId"`
	DoctorID    uint              `gorm:"index;not null" json:"doctorId"`
	Type        string            `gorm:"size:50" json:"type"`
	Note        string            `gorm:"type:text" json:"note"`
	ScheduledAt time.Time         `json:"datetime"`
	Status      AppointmentStatus `gorm:"size:20;index;not null" json:"status"`
	Deleted     bool              `gorm:"not null" json:"deleted"`

	// Relations
	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
	Doctor   Doctor   `gorm:"foreignKey:DoctorID" json:"-"`
}
