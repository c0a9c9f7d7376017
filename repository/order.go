package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pawprintlabs/petcare-portal/booking"
	"github.com/pawprintlabs/petcare-portal/models"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// MarkPaid mirrors the appointment repository: the pending guard sits inside
// the UPDATE so replayed verifications cannot double-apply.
func (r *OrderRepository) MarkPaid(ctx context.Context, id uint, reference string) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
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

func (r *OrderRepository) StampReference(ctx context.Context, id uint, reference string) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
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

func (r *OrderRepository) missOrProcessed(ctx context.Context, id uint) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return translate(err)
	}
	if count == 0 {
		return booking.ErrNotFound
	}
	return booking.ErrPaymentProcessed
}
