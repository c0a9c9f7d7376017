package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pawprintlabs/petcare-portal/booking"
	"github.com/pawprintlabs/petcare-portal/models"
)

var liveStatuses = []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	return translate(r.db.WithContext(ctx).Create(appt).Error)
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Pet").
		Preload("Pet.Owner").
		Preload("Vet").
		First(&appt, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &appt, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, appt *models.Appointment) error {
	return translate(r.db.WithContext(ctx).Save(appt).Error)
}

func (r *AppointmentRepository) OccupiedSlots(ctx context.Context, vetID uint, from, to time.Time) ([]time.Time, error) {
	var slots []time.Time
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("vet_id = ?", vetID).
		Where("appointment_time >= ? AND appointment_time < ?", from, to).
		Where("status IN ?", liveStatuses).
		Order("appointment_time asc").
		Pluck("appointment_time", &slots).Error
	if err != nil {
		return nil, translate(err)
	}
	return slots, nil
}

func (r *AppointmentRepository) HasConflict(ctx context.Context, vetID uint, at time.Time, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("vet_id = ? AND appointment_time = ?", vetID, at).
		Where("status IN ?", liveStatuses)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// MarkPaid transitions payment_status to paid only if it is still pending.
// The condition lives in the UPDATE itself so two concurrent verifications
// for the same payment cannot both succeed.
func (r *AppointmentRepository) MarkPaid(ctx context.Context, id uint, reference string) error {
	res := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ? AND payment_status = ?", id, models.PaymentPending).
		Updates(map[string]any{
			"payment_status":    models.PaymentPaid,
			"payment_reference": reference,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return r.missOrProcessed(ctx, id)
	}
	return nil
}

func (r *AppointmentRepository) StampReference(ctx context.Context, id uint, reference string) error {
	res := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ? AND payment_status = ?", id, models.PaymentPending).
		Update("payment_reference", reference)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return r.missOrProcessed(ctx, id)
	}
	return nil
}

func (r *AppointmentRepository) missOrProcessed(ctx context.Context, id uint) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Appointment{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return translate(err)
	}
	if count == 0 {
		return booking.ErrNotFound
	}
	return booking.ErrPaymentProcessed
}

func (r *AppointmentRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Pet").
		Preload("Vet").
		Joins("JOIN pets ON pets.id = appointments.pet_id").
		Where("pets.owner_id = ?", ownerID).
		Order("appointment_time desc").
		Find(&appts).Error
	if err != nil {
		return nil, translate(err)
	}
	return appts, nil
}

func (r *AppointmentRepository) ListUpcomingByVet(ctx context.Context, vetID uint, from, to time.Time, limit int) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Pet").
		Preload("Pet.Owner").
		Where("vet_id = ?", vetID).
		Where("appointment_time >= ? AND appointment_time < ?", from, to).
		Where("status IN ?", liveStatuses).
		Order("appointment_time asc").
		Limit(limit).
		Find(&appts).Error
	if err != nil {
		return nil, translate(err)
	}
	return appts, nil
}

func (r *AppointmentRepository) StatusCounts(ctx context.Context, vetID uint) (map[models.AppointmentStatus]int64, error) {
	var rows []struct {
		Status models.AppointmentStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Select("status, count(*) as count").
		Where("vet_id = ?", vetID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	counts := make(map[models.AppointmentStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
