package models

import (
	"time"
)

type Role string

const (
	RolePetOwner Role = "pet_owner"
	RoleVet      Role = "vet"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"unique"`
	Password  string    `json:"password,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role" gorm:"type:varchar(32);default:'pet_owner'"`
	Pets      []Pet     `json:"pets,omitempty" gorm:"foreignKey:OwnerID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
