package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pawprintlabs/petcare-portal/models"
)

type PetRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

func (r *PetRepository) Create(ctx context.Context, pet *models.Pet) error {
	return translate(r.db.WithContext(ctx).Create(pet).Error)
}

func (r *PetRepository) GetByID(ctx context.Context, id uint) (*models.Pet, error) {
	var pet models.Pet
	if err := r.db.WithContext(ctx).First(&pet, id).Error; err != nil {
		return nil, translate(err)
	}
	return &pet, nil
}

func (r *PetRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Pet, error) {
	var pets []models.Pet
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name asc").Find(&pets).Error; err != nil {
		return nil, translate(err)
	}
	return pets, nil
}
