package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/pawprintlabs/petcare-portal/booking"
)

const uniqueViolation = "23505"

// translate maps storage-layer failures into the booking error vocabulary so
// infrastructure errors never leak to callers: a record miss becomes
// NotFound and a unique-constraint violation (the final double-booking
// guard) becomes Conflict.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return booking.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return booking.ErrConflict
	}
	return err
}
