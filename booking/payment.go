package booking

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
)

type EntityKind string

const (
	EntityAppointment EntityKind = "appointment"
	EntityOrder       EntityKind = "order"
)

// PaymentProof is the provider-issued tuple presented to prove a successful
// charge.
type PaymentProof struct {
	OrderID   string
	PaymentID string
	Signature string
	EntityID  uint
	Kind      EntityKind
}

// Reconciler is the trust boundary where a client claim of payment becomes a
// state change. It recomputes the provider signature with a server-held
// secret and, only on a byte-for-byte match, marks the target paid.
type Reconciler struct {
	secret       []byte
	appointments AppointmentRepo
	orders       OrderRepo
	cache        Cache
}

// NewReconciler fails when the signing secret is unconfigured: serving
// unverifiable payments is worse than not serving.
func NewReconciler(secret string, appointments AppointmentRepo, orders OrderRepo, cache Cache) (*Reconciler, error) {
	if secret == "" {
		return nil, errors.New("payment signing secret is not configured")
	}
	return &Reconciler{
		secret:       []byte(secret),
		appointments: appointments,
		orders:       orders,
		cache:        cache,
	}, nil
}

// VerifyPayment checks the proof signature and transitions the target's
// payment status to paid. The paid transition is a conditional update at the
// storage layer, so a replayed proof reports ErrPaymentProcessed instead of
// being applied twice.
func (r *Reconciler) VerifyPayment(ctx context.Context, proof PaymentProof) error {
	if proof.OrderID == "" || proof.PaymentID == "" || proof.Signature == "" {
		return &ValidationError{Message: "order id, payment id and signature are required"}
	}

	mac := hmac.New(sha256.New, r.secret)
	fmt.Fprintf(mac, "%s|%s", proof.OrderID, proof.PaymentID)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(proof.Signature)) {
		// Treated as a potential fraud signal, never retried or bypassed.
		log.Printf("payment signature mismatch for %s %d (provider order %s)", proof.Kind, proof.EntityID, proof.OrderID)
		return ErrInvalidSignature
	}

	switch proof.Kind {
	case EntityAppointment:
		if err := r.appointments.MarkPaid(ctx, proof.EntityID, proof.OrderID); err != nil {
			return err
		}
		r.refreshOwnerCache(ctx, proof.EntityID)
		return nil
	case EntityOrder:
		return r.orders.MarkPaid(ctx, proof.EntityID, proof.OrderID)
	default:
		return &ValidationError{Message: fmt.Sprintf("unknown entity kind %q", proof.Kind)}
	}
}

func (r *Reconciler) refreshOwnerCache(ctx context.Context, apptID uint) {
	if r.cache == nil {
		return
	}
	appt, err := r.appointments.GetByID(ctx, apptID)
	if err != nil {
		return
	}
	if err := r.cache.Delete(ctx, ownerAppointmentsKey(appt.Pet.OwnerID)); err != nil {
		log.Printf("failed to refresh owner cache after payment for appointment %d: %v", apptID, err)
	}
}
