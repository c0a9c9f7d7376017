package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pawprintlabs/petcare-portal/models"
)

const (
	slotCacheTTL = time.Minute
	listCacheTTL = 30 * time.Second
)

// Service implements the booking core: slot listing, the booking and
// reschedule writers and the appointment lifecycle. Persistence and cache
// are injected; Service itself holds no connection state.
type Service struct {
	appointments AppointmentRepo
	pets         PetRepo
	vets         VetRepo
	orders       OrderRepo
	cache        Cache
	now          func() time.Time
}

func NewService(appointments AppointmentRepo, pets PetRepo, vets VetRepo, orders OrderRepo, cache Cache) *Service {
	return &Service{
		appointments: appointments,
		pets:         pets,
		vets:         vets,
		orders:       orders,
		cache:        cache,
		now:          time.Now,
	}
}

func slotsCacheKey(vetID uint, date string) string {
	return fmt.Sprintf("slots:%d:%s", vetID, date)
}

func ownerAppointmentsKey(ownerID uint) string {
	return fmt.Sprintf("appointments:owner:%d", ownerID)
}

// ListAvailableSlots returns the free slot instants for a vet on a calendar
// date. The result only reflects what was free at read time; the insert-time
// uniqueness constraint is what actually prevents double booking.
func (s *Service) ListAvailableSlots(ctx context.Context, vetID uint, date string) ([]time.Time, error) {
	day, err := ParseSlotDate(date)
	if err != nil {
		return nil, err
	}
	if _, err := s.activeVet(ctx, vetID); err != nil {
		return nil, err
	}

	key := slotsCacheKey(vetID, date)
	if s.cache != nil {
		var cached []time.Time
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	occupied, err := s.appointments.OccupiedSlots(ctx, vetID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	free := FilterAvailable(DaySlots(day), occupied)

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, free, slotCacheTTL); err != nil {
			log.Printf("failed to cache slots for vet %d: %v", vetID, err)
		}
	}
	return free, nil
}

type BookRequest struct {
	PetID uint
	VetID uint
	At    time.Time
	Notes string
}

// Book validates a booking request and creates the appointment in
// pending/pending. Preconditions are checked in order, first failure wins:
// pet ownership, vet active, slot free.
func (s *Service) Book(ctx context.Context, actor ActingUser, req BookRequest) (*models.Appointment, error) {
	pet, err := s.pets.GetByID(ctx, req.PetID)
	if err != nil {
		return nil, err
	}
	if pet.OwnerID != actor.ID {
		return nil, fmt.Errorf("you can only book appointments for your own pets: %w", ErrUnauthorized)
	}
	if _, err := s.activeVet(ctx, req.VetID); err != nil {
		return nil, err
	}

	at := req.At.UTC()
	if !at.After(s.now()) {
		return nil, &ValidationError{Message: "appointment time must be in the future"}
	}

	// Fast-path check for a friendlier error; the unique index catches
	// whatever races past it.
	taken, err := s.appointments.HasConflict(ctx, req.VetID, at, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	appt := &models.Appointment{
		PetID:           req.PetID,
		VetID:           req.VetID,
		AppointmentTime: at,
		Status:          models.StatusPending,
		PaymentStatus:   models.PaymentPending,
		Notes:           req.Notes,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.refreshCaches(ctx, actor.ID, req.VetID, at)
	return appt, nil
}

// Reschedule moves an existing appointment to a new instant. The prior
// confirmation is always forfeited: the appointment returns to pending and
// must be re-confirmed by the vet. Payment status is left untouched.
func (s *Service) Reschedule(ctx context.Context, actor ActingUser, id uint, newAt time.Time, notes *string) (*models.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, appt) {
		return nil, fmt.Errorf("only the pet owner or the assigned vet can reschedule this appointment: %w", ErrUnauthorized)
	}
	if appt.IsTerminal() {
		return nil, &InvalidStateError{Action: "reschedule", Current: appt.Status}
	}

	at := newAt.UTC()
	if !at.After(s.now()) {
		return nil, &ValidationError{Message: "appointment time must be in the future"}
	}

	taken, err := s.appointments.HasConflict(ctx, appt.VetID, at, appt.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	oldAt := appt.AppointmentTime
	appt.AppointmentTime = at
	appt.Status = models.StatusPending
	if notes != nil {
		appt.Notes = *notes
	}
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}

	s.refreshCaches(ctx, appt.Pet.OwnerID, appt.VetID, oldAt)
	s.refreshCaches(ctx, appt.Pet.OwnerID, appt.VetID, at)
	return appt, nil
}

// Cancel moves a pending or confirmed appointment to cancelled. Cancellation
// is a state, not a row removal; the slot becomes bookable again.
func (s *Service) Cancel(ctx context.Context, actor ActingUser, id uint) (*models.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, appt) {
		return nil, fmt.Errorf("only the pet owner or the assigned vet can cancel this appointment: %w", ErrUnauthorized)
	}
	if err := transition(appt, "cancel", models.StatusCancelled); err != nil {
		return nil, err
	}
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}

	s.refreshCaches(ctx, appt.Pet.OwnerID, appt.VetID, appt.AppointmentTime)
	return appt, nil
}

// Confirm moves a pending appointment to confirmed. Only the assigned vet
// may confirm. Payment is not a hard precondition: confirming an unpaid
// appointment is allowed as a manual override, but logged.
func (s *Service) Confirm(ctx context.Context, actor ActingUser, id uint) (*models.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ID != appt.VetID {
		return nil, fmt.Errorf("only the assigned vet can confirm this appointment: %w", ErrUnauthorized)
	}
	if err := transition(appt, "confirm", models.StatusConfirmed); err != nil {
		return nil, err
	}
	if appt.PaymentStatus != models.PaymentPaid {
		log.Printf("appointment %d confirmed with payment status %s", appt.ID, appt.PaymentStatus)
	}
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}

	s.refreshCaches(ctx, appt.Pet.OwnerID, appt.VetID, appt.AppointmentTime)
	return appt, nil
}

// GetAppointment loads a single appointment for its pet owner or vet.
func (s *Service) GetAppointment(ctx context.Context, actor ActingUser, id uint) (*models.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, appt) && !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return appt, nil
}

// ListOwnerAppointments returns the acting user's appointments, newest first.
func (s *Service) ListOwnerAppointments(ctx context.Context, actor ActingUser) ([]models.Appointment, error) {
	key := ownerAppointmentsKey(actor.ID)
	if s.cache != nil {
		var cached []models.Appointment
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	appts, err := s.appointments.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, appts, listCacheTTL); err != nil {
			log.Printf("failed to cache appointments for owner %d: %v", actor.ID, err)
		}
	}
	return appts, nil
}

// ListVetUpcoming returns the vet's pending and confirmed appointments in a
// date window selected by filter: today, tomorrow, week or month.
func (s *Service) ListVetUpcoming(ctx context.Context, actor ActingUser, filter string, limit int) ([]models.Appointment, error) {
	if !actor.IsVet() && !actor.IsAdmin() {
		return nil, fmt.Errorf("only vets can list their schedule: %w", ErrUnauthorized)
	}
	if limit <= 0 {
		limit = 10
	}

	now := s.now()
	from := now
	to := now.AddDate(0, 1, 0)
	switch filter {
	case "today":
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		to = from.AddDate(0, 0, 1)
	case "tomorrow":
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
		to = from.AddDate(0, 0, 1)
	case "week":
		to = now.AddDate(0, 0, 7)
	}

	return s.appointments.ListUpcomingByVet(ctx, actor.ID, from, to, limit)
}

// VetDashboard returns the vet's appointment counts grouped by status.
func (s *Service) VetDashboard(ctx context.Context, actor ActingUser) (map[models.AppointmentStatus]int64, error) {
	if !actor.IsVet() && !actor.IsAdmin() {
		return nil, fmt.Errorf("only vets can view the dashboard: %w", ErrUnauthorized)
	}
	return s.appointments.StatusCounts(ctx, actor.ID)
}

// ListVets returns the directory of vets currently accepting bookings.
func (s *Service) ListVets(ctx context.Context) ([]models.VetProfile, error) {
	return s.vets.ListActive(ctx)
}

// AddPet registers a pet owned by the acting user.
func (s *Service) AddPet(ctx context.Context, actor ActingUser, pet *models.Pet) error {
	if pet.Name == "" || pet.Species == "" {
		return &ValidationError{Message: "pet name and species are required"}
	}
	pet.OwnerID = actor.ID
	return s.pets.Create(ctx, pet)
}

func (s *Service) ListPets(ctx context.Context, actor ActingUser) ([]models.Pet, error) {
	return s.pets.ListByOwner(ctx, actor.ID)
}

type Checkout struct {
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount"`
}

// BeginPayment stamps a provider order reference on an unpaid appointment or
// order and returns the amount to charge. The charge itself happens out of
// band with the payment provider.
func (s *Service) BeginPayment(ctx context.Context, actor ActingUser, kind EntityKind, id uint) (*Checkout, error) {
	reference := "order_" + uuid.NewString()

	switch kind {
	case EntityAppointment:
		appt, err := s.appointments.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if appt.Pet.OwnerID != actor.ID {
			return nil, fmt.Errorf("you can only pay for your own appointments: %w", ErrUnauthorized)
		}
		vet, err := s.vets.GetByUserID(ctx, appt.VetID)
		if err != nil {
			return nil, err
		}
		if err := s.appointments.StampReference(ctx, id, reference); err != nil {
			return nil, err
		}
		return &Checkout{Reference: reference, Amount: vet.ConsultationFee}, nil
	case EntityOrder:
		order, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if order.UserID != actor.ID {
			return nil, fmt.Errorf("you can only pay for your own orders: %w", ErrUnauthorized)
		}
		if err := s.orders.StampReference(ctx, id, reference); err != nil {
			return nil, err
		}
		return &Checkout{Reference: reference, Amount: order.TotalAmount}, nil
	default:
		return nil, &ValidationError{Message: fmt.Sprintf("unknown entity kind %q", kind)}
	}
}

func (s *Service) activeVet(ctx context.Context, vetID uint) (*models.VetProfile, error) {
	vet, err := s.vets.GetByUserID(ctx, vetID)
	if err != nil {
		return nil, err
	}
	if !vet.IsActive {
		return nil, fmt.Errorf("vet is not accepting appointments: %w", ErrNotFound)
	}
	return vet, nil
}

func canManage(actor ActingUser, appt *models.Appointment) bool {
	return actor.ID == appt.Pet.OwnerID || actor.ID == appt.VetID
}

// transition enforces the appointment state machine: pending may confirm or
// cancel, confirmed may complete or cancel, terminal states allow nothing.
func transition(appt *models.Appointment, action string, to models.AppointmentStatus) error {
	allowed := false
	switch appt.Status {
	case models.StatusPending:
		allowed = to == models.StatusConfirmed || to == models.StatusCancelled
	case models.StatusConfirmed:
		allowed = to == models.StatusCompleted || to == models.StatusCancelled
	}
	if !allowed {
		return &InvalidStateError{Action: action, Current: appt.Status}
	}
	appt.Status = to
	return nil
}

// refreshCaches drops the cached views a write invalidates: the vet's slot
// listing for that day and the owner's appointment list.
func (s *Service) refreshCaches(ctx context.Context, ownerID, vetID uint, at time.Time) {
	if s.cache == nil {
		return
	}
	keys := []string{
		slotsCacheKey(vetID, at.UTC().Format(slotDateLayout)),
		ownerAppointmentsKey(ownerID),
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Printf("failed to refresh caches for vet %d: %v", vetID, err)
	}
}
