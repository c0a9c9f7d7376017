package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pawprintlabs/petcare-portal/models"
)

type VetRepository struct {
	db *gorm.DB
}

func NewVetRepository(db *gorm.DB) *VetRepository {
	return &VetRepository{db: db}
}

func (r *VetRepository) GetByUserID(ctx context.Context, userID uint) (*models.VetProfile, error) {
	var profile models.VetProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *VetRepository) ListActive(ctx context.Context) ([]models.VetProfile, error) {
	var profiles []models.VetProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("is_active = ?", true).
		Find(&profiles).Error
	if err != nil {
		return nil, translate(err)
	}
	return profiles, nil
}
