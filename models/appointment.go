package models

import (
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Appointment is a point-in-time consultation slot booked for a pet with a
// vet. The unique index on (vet_id, appointment_time) excludes cancelled
// rows so a freed slot can be booked again; it is the final arbiter when two
// bookings race for the same slot.
type Appointment struct {
	gorm.Model
	PetID            uint              `json:"pet_id"`
	Pet              Pet               `json:"pet,omitempty" gorm:"foreignKey:PetID"`
	VetID            uint              `json:"vet_id" gorm:"uniqueIndex:uniq_vet_slot"`
	Vet              User              `json:"vet,omitempty" gorm:"foreignKey:VetID"`
	AppointmentTime  time.Time         `json:"appointment_time" gorm:"not null;uniqueIndex:uniq_vet_slot,where:status <> 'cancelled'"`
	Status           AppointmentStatus `json:"status" gorm:"type:varchar(32);default:'pending'"`
	PaymentStatus    PaymentStatus     `json:"payment_status" gorm:"type:varchar(32);default:'pending'"`
	PaymentReference *string           `json:"payment_reference,omitempty"`
	Notes            string            `json:"notes,omitempty"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	if a.PaymentStatus == "" {
		a.PaymentStatus = PaymentPending
	}
	return nil
}

// IsTerminal reports whether the appointment allows no further transitions.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}
