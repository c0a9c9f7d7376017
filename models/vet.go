package models

import (
	"gorm.io/gorm"
)

// VetProfile carries the vet-specific attributes of a user with the vet role.
// A vet must be active to accept new bookings.
type VetProfile struct {
	gorm.Model
	UserID          uint    `json:"user_id" gorm:"uniqueIndex"`
	User            User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Specialty       string  `json:"specialty,omitempty"`
	Bio             string  `json:"bio,omitempty"`
	ConsultationFee float64 `json:"consultation_fee"`
	IsActive        bool    `json:"is_active" gorm:"default:true"`
}
