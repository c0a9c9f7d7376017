package booking

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawprintlabs/petcare-portal/models"
)

const testSecret = "test_signing_secret"

func signProof(t *testing.T, orderID, paymentID string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(testSecret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	return hex.EncodeToString(mac.Sum(nil))
}

func newReconcilerFixture(t *testing.T) (*fixture, *Reconciler) {
	t.Helper()
	f := newFixture(t)
	rec, err := NewReconciler(testSecret, f.appts, f.orders, f.cache)
	require.NoError(t, err)
	return f, rec
}

func TestNewReconciler_EmptySecret(t *testing.T) {
	_, err := NewReconciler("", nil, nil, nil)
	assert.Error(t, err)
}

func TestVerifyPayment_MarksAppointmentPaid(t *testing.T) {
	f, rec := newReconcilerFixture(t)
	appt := f.book(t, time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC))

	err := rec.VerifyPayment(context.Background(), PaymentProof{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: signProof(t, "order_abc", "pay_123"),
		EntityID:  appt.ID,
		Kind:      EntityAppointment,
	})

	require.NoError(t, err)
	stored, err := f.appts.GetByID(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, stored.PaymentStatus)
	require.NotNil(t, stored.PaymentReference)
	assert.Equal(t, "order_abc", *stored.PaymentReference)
	assert.Contains(t, f.cache.deleted, ownerAppointmentsKey(f.owner.ID))
}

func TestVerifyPayment_Replay(t *testing.T) {
	f, rec := newReconcilerFixture(t)
	appt := f.book(t, time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC))

	proof := PaymentProof{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: signProof(t, "order_abc", "pay_123"),
		EntityID:  appt.ID,
		Kind:      EntityAppointment,
	}
	require.NoError(t, rec.VerifyPayment(context.Background(), proof))

	err := rec.VerifyPayment(context.Background(), proof)

	assert.ErrorIs(t, err, ErrPaymentProcessed)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestVerifyPayment_TamperedSignature(t *testing.T) {
	f, rec := newReconcilerFixture(t)
	appt := f.book(t, time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC))

	sig := []byte(signProof(t, "order_abc", "pay_123"))
	sig[0] ^= 1

	err := rec.VerifyPayment(context.Background(), PaymentProof{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: string(sig),
		EntityID:  appt.ID,
		Kind:      EntityAppointment,
	})

	assert.ErrorIs(t, err, ErrInvalidSignature)
	stored, getErr := f.appts.GetByID(context.Background(), appt.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.PaymentPending, stored.PaymentStatus)
	assert.Nil(t, stored.PaymentReference)
}

func TestVerifyPayment_SignatureForDifferentPayment(t *testing.T) {
	f, rec := newReconcilerFixture(t)
	appt := f.book(t, time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC))

	err := rec.VerifyPayment(context.Background(), PaymentProof{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: signProof(t, "order_abc", "pay_999"),
		EntityID:  appt.ID,
		Kind:      EntityAppointment,
	})

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyPayment_MissingFields(t *testing.T) {
	_, rec := newReconcilerFixture(t)

	err := rec.VerifyPayment(context.Background(), PaymentProof{
		OrderID: "order_abc",
		Kind:    EntityAppointment,
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestVerifyPayment_UnknownAppointment(t *testing.T) {
	_, rec := newReconcilerFixture(t)

	err := rec.VerifyPayment(context.Background(), PaymentProof{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: signProof(t, "order_abc", "pay_123"),
		EntityID:  404,
		Kind:      EntityAppointment,
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVerifyPayment_UnknownKind(t *testing.T) {
	_, rec := newReconcilerFixture(t)

	err := rec.VerifyPayment(context.Background(), PaymentProof{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: signProof(t, "order_abc", "pay_123"),
		EntityID:  1,
		Kind:      EntityKind("invoice"),
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestVerifyPayment_MarksOrderPaid(t *testing.T) {
	f, rec := newReconcilerFixture(t)
	f.orders.orders[7] = &models.Order{
		UserID:        f.owner.ID,
		TotalAmount:   120,
		PaymentStatus: models.PaymentPending,
	}
	f.orders.orders[7].ID = 7

	err := rec.VerifyPayment(context.Background(), PaymentProof{
		OrderID:   "order_xyz",
		PaymentID: "pay_777",
		Signature: signProof(t, "order_xyz", "pay_777"),
		EntityID:  7,
		Kind:      EntityOrder,
	})

	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, f.orders.orders[7].PaymentStatus)
}
