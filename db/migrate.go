package db

import (
	"log"

	"gorm.io/gorm"

	"github.com/pawprintlabs/petcare-portal/models"
)

func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Pet{},
		&models.VetProfile{},
		&models.Appointment{},
		&models.Order{},
	)
	if err != nil {
		return err
	}

	log.Println("✅ Migrations applied successfully!")
	return nil
}
