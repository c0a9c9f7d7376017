package booking

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pawprintlabs/petcare-portal/models"
)

// In-memory fakes backing the service tests. fakeAppointments enforces the
// same live-slot uniqueness the database index does, under a mutex, so the
// concurrency properties can be exercised without a database.

type fakeAppointments struct {
	mu     sync.Mutex
	nextID uint
	appts  map[uint]*models.Appointment
	pets   *fakePets
}

func newFakeAppointments(pets *fakePets) *fakeAppointments {
	return &fakeAppointments{nextID: 1, appts: make(map[uint]*models.Appointment), pets: pets}
}

func (f *fakeAppointments) Create(ctx context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conflictLocked(appt.VetID, appt.AppointmentTime, 0) {
		return ErrConflict
	}
	appt.ID = f.nextID
	f.nextID++
	stored := *appt
	f.appts[appt.ID] = &stored
	return nil
}

func (f *fakeAppointments) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.appts[id]
	if !ok {
		return nil, ErrNotFound
	}
	appt := *stored
	if pet, err := f.pets.GetByID(ctx, appt.PetID); err == nil {
		appt.Pet = *pet
	}
	return &appt, nil
}

func (f *fakeAppointments) Update(ctx context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.appts[appt.ID]; !ok {
		return ErrNotFound
	}
	if appt.Status != models.StatusCancelled && f.conflictLocked(appt.VetID, appt.AppointmentTime, appt.ID) {
		return ErrConflict
	}
	stored := *appt
	stored.Pet = models.Pet{}
	f.appts[appt.ID] = &stored
	return nil
}

func (f *fakeAppointments) conflictLocked(vetID uint, at time.Time, excludeID uint) bool {
	for _, a := range f.appts {
		if a.ID == excludeID || a.VetID != vetID {
			continue
		}
		if a.Status == models.StatusCancelled {
			continue
		}
		if a.AppointmentTime.Equal(at) {
			return true
		}
	}
	return false
}

func (f *fakeAppointments) OccupiedSlots(ctx context.Context, vetID uint, from, to time.Time) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var slots []time.Time
	for _, a := range f.appts {
		if a.VetID != vetID {
			continue
		}
		if a.Status != models.StatusPending && a.Status != models.StatusConfirmed {
			continue
		}
		if !a.AppointmentTime.Before(from) && a.AppointmentTime.Before(to) {
			slots = append(slots, a.AppointmentTime)
		}
	}
	return slots, nil
}

func (f *fakeAppointments) HasConflict(ctx context.Context, vetID uint, at time.Time, excludeID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.conflictLocked(vetID, at, excludeID), nil
}

func (f *fakeAppointments) MarkPaid(ctx context.Context, id uint, reference string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.appts[id]
	if !ok {
		return ErrNotFound
	}
	if stored.PaymentStatus != models.PaymentPending {
		return ErrPaymentProcessed
	}
	stored.PaymentStatus = models.PaymentPaid
	stored.PaymentReference = &reference
	return nil
}

func (f *fakeAppointments) StampReference(ctx context.Context, id uint, reference string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.appts[id]
	if !ok {
		return ErrNotFound
	}
	if stored.PaymentStatus != models.PaymentPending {
		return ErrPaymentProcessed
	}
	stored.PaymentReference = &reference
	return nil
}

func (f *fakeAppointments) ListByOwner(ctx context.Context, ownerID uint) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var appts []models.Appointment
	for _, a := range f.appts {
		pet, err := f.pets.GetByID(ctx, a.PetID)
		if err != nil || pet.OwnerID != ownerID {
			continue
		}
		appt := *a
		appt.Pet = *pet
		appts = append(appts, appt)
	}
	return appts, nil
}

func (f *fakeAppointments) ListUpcomingByVet(ctx context.Context, vetID uint, from, to time.Time, limit int) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var appts []models.Appointment
	for _, a := range f.appts {
		if a.VetID != vetID {
			continue
		}
		if a.Status != models.StatusPending && a.Status != models.StatusConfirmed {
			continue
		}
		if !a.AppointmentTime.Before(from) && a.AppointmentTime.Before(to) {
			appts = append(appts, *a)
		}
		if len(appts) == limit {
			break
		}
	}
	return appts, nil
}

func (f *fakeAppointments) StatusCounts(ctx context.Context, vetID uint) (map[models.AppointmentStatus]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[models.AppointmentStatus]int64)
	for _, a := range f.appts {
		if a.VetID == vetID {
			counts[a.Status]++
		}
	}
	return counts, nil
}

type fakePets struct {
	mu     sync.Mutex
	nextID uint
	pets   map[uint]*models.Pet
}

func newFakePets() *fakePets {
	return &fakePets{nextID: 1, pets: make(map[uint]*models.Pet)}
}

func (f *fakePets) Create(ctx context.Context, pet *models.Pet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	pet.ID = f.nextID
	f.nextID++
	stored := *pet
	f.pets[pet.ID] = &stored
	return nil
}

func (f *fakePets) GetByID(ctx context.Context, id uint) (*models.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.pets[id]
	if !ok {
		return nil, ErrNotFound
	}
	pet := *stored
	return &pet, nil
}

func (f *fakePets) ListByOwner(ctx context.Context, ownerID uint) ([]models.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pets []models.Pet
	for _, p := range f.pets {
		if p.OwnerID == ownerID {
			pets = append(pets, *p)
		}
	}
	return pets, nil
}

type fakeVets struct {
	profiles map[uint]*models.VetProfile
}

func newFakeVets() *fakeVets {
	return &fakeVets{profiles: make(map[uint]*models.VetProfile)}
}

func (f *fakeVets) GetByUserID(ctx context.Context, userID uint) (*models.VetProfile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeVets) ListActive(ctx context.Context) ([]models.VetProfile, error) {
	var profiles []models.VetProfile
	for _, p := range f.profiles {
		if p.IsActive {
			profiles = append(profiles, *p)
		}
	}
	return profiles, nil
}

type fakeOrders struct {
	mu     sync.Mutex
	orders map[uint]*models.Order
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: make(map[uint]*models.Order)}
}

func (f *fakeOrders) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	order := *stored
	return &order, nil
}

func (f *fakeOrders) MarkPaid(ctx context.Context, id uint, reference string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.orders[id]
	if !ok {
		return ErrNotFound
	}
	if stored.PaymentStatus != models.PaymentPending {
		return ErrPaymentProcessed
	}
	stored.PaymentStatus = models.PaymentPaid
	stored.PaymentReference = &reference
	return nil
}

func (f *fakeOrders) StampReference(ctx context.Context, id uint, reference string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.orders[id]
	if !ok {
		return ErrNotFound
	}
	if stored.PaymentStatus != models.PaymentPending {
		return ErrPaymentProcessed
	}
	stored.PaymentReference = &reference
	return nil
}

type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(payload, dest)
}

func (f *fakeCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = payload
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.data, key)
		f.deleted = append(f.deleted, key)
	}
	return nil
}
