package booking

import (
	"context"
	"time"

	"github.com/pawprintlabs/petcare-portal/models"
)

// AppointmentRepo is the persistence boundary for appointments. Create and
// Update must translate a unique-constraint violation on (vet, time) into
// ErrConflict, and MarkPaid must perform its paid transition as a single
// conditional update guarded on the current payment status.
type AppointmentRepo interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	Update(ctx context.Context, appt *models.Appointment) error
	OccupiedSlots(ctx context.Context, vetID uint, from, to time.Time) ([]time.Time, error)
	HasConflict(ctx context.Context, vetID uint, at time.Time, excludeID uint) (bool, error)
	MarkPaid(ctx context.Context, id uint, reference string) error
	StampReference(ctx context.Context, id uint, reference string) error
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Appointment, error)
	ListUpcomingByVet(ctx context.Context, vetID uint, from, to time.Time, limit int) ([]models.Appointment, error)
	StatusCounts(ctx context.Context, vetID uint) (map[models.AppointmentStatus]int64, error)
}

type PetRepo interface {
	Create(ctx context.Context, pet *models.Pet) error
	GetByID(ctx context.Context, id uint) (*models.Pet, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Pet, error)
}

type VetRepo interface {
	GetByUserID(ctx context.Context, userID uint) (*models.VetProfile, error)
	ListActive(ctx context.Context) ([]models.VetProfile, error)
}

type OrderRepo interface {
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	MarkPaid(ctx context.Context, id uint, reference string) error
	StampReference(ctx context.Context, id uint, reference string) error
}

// Cache is the read-side cache refreshed after every successful write.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
