package models

import (
	"gorm.io/gorm"
)

type Pet struct {
	gorm.Model
	Name     string `json:"name"`
	Species  string `json:"species"`
	Breed    string `json:"breed,omitempty"`
	AgeYears int    `json:"age_years,omitempty"`
	OwnerID  uint   `json:"owner_id"`
	Owner    User   `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}
