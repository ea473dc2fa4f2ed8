package service_test

import (
	"context"
	"sync"

	models "github.com/seatwise/seatwise/internal"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateApproval(ctx context.Context, id string, approval models.ApprovalStatus) error {
	args := m.Called(ctx, id, approval)
	return args.Error(0)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *models.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id string) (*models.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockFlightRepository) List(ctx context.Context) ([]models.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockFlightRepository) Update(ctx context.Context, id string, update models.FlightUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockFlightRepository) DecrementSeats(ctx context.Context, id string, n int) error {
	args := m.Called(ctx, id, n)
	return args.Error(0)
}

func (m *MockFlightRepository) IncrementSeats(ctx context.Context, id string, n int) error {
	args := m.Called(ctx, id, n)
	return args.Error(0)
}

type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) Issue(claims models.Claims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *MockTokenManager) Verify(token string) (models.Claims, error) {
	args := m.Called(token)
	return args.Get(0).(models.Claims), args.Error(1)
}

type MockFlightCache struct {
	mock.Mock
}

func (m *MockFlightCache) GetFlights(ctx context.Context) ([]models.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockFlightCache) SetFlights(ctx context.Context, flights []models.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockFlightCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	args := m.Called(ctx, topic, key, payload)
	return args.Error(0)
}

// fakeStore is a mutex-guarded in-memory stand-in for the document store,
// mirroring its atomic conditional updates. The booking engine's
// concurrency and seat-code tests run against it.
type fakeStore struct {
	mu         sync.Mutex
	flights    map[string]*models.Flight
	bookings   map[string]*models.Booking
	failInsert bool
}

func newFakeStore(flights ...*models.Flight) *fakeStore {
	s := &fakeStore{
		flights:  make(map[string]*models.Flight),
		bookings: make(map[string]*models.Booking),
	}
	for _, f := range flights {
		cp := *f
		s.flights[f.ID] = &cp
	}
	return s
}

func (s *fakeStore) flight(id string) *models.Flight {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flights[id]
	if !ok {
		return nil
	}
	cp := *f
	return &cp
}

type fakeFlightRepo struct {
	store *fakeStore
}

func (r *fakeFlightRepo) Create(ctx context.Context, flight *models.Flight) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *flight
	r.store.flights[flight.ID] = &cp
	return nil
}

func (r *fakeFlightRepo) GetByID(ctx context.Context, id string) (*models.Flight, error) {
	f := r.store.flight(id)
	if f == nil {
		return nil, models.ErrFlightNotFound
	}
	return f, nil
}

func (r *fakeFlightRepo) List(ctx context.Context) ([]models.Flight, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]models.Flight, 0, len(r.store.flights))
	for _, f := range r.store.flights {
		out = append(out, *f)
	}
	return out, nil
}

func (r *fakeFlightRepo) Update(ctx context.Context, id string, update models.FlightUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	f, ok := r.store.flights[id]
	if !ok {
		return models.ErrFlightNotFound
	}
	if update.TotalSeats != nil {
		f.TotalSeats = *update.TotalSeats
	}
	if update.AvailableSeats != nil {
		f.AvailableSeats = *update.AvailableSeats
	}
	if update.BasePrice != nil {
		f.BasePrice = *update.BasePrice
	}
	return nil
}

func (r *fakeFlightRepo) DecrementSeats(ctx context.Context, id string, n int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	f, ok := r.store.flights[id]
	if !ok {
		return models.ErrFlightNotFound
	}
	if f.AvailableSeats < n {
		return models.ErrInsufficientSeats
	}
	f.AvailableSeats -= n
	return nil
}

func (r *fakeFlightRepo) IncrementSeats(ctx context.Context, id string, n int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	f, ok := r.store.flights[id]
	if !ok {
		return models.ErrFlightNotFound
	}
	f.AvailableSeats += n
	if f.AvailableSeats > f.TotalSeats {
		f.AvailableSeats = f.TotalSeats
	}
	return nil
}

type fakeBookingRepo struct {
	store *fakeStore
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failInsert {
		return context.DeadlineExceeded
	}
	cp := *booking
	r.store.bookings[booking.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, models.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) List(ctx context.Context) ([]models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]models.Booking, 0, len(r.store.bookings))
	for _, b := range r.store.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return models.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeBookingRepo) CountSeats(ctx context.Context, flightID string, class models.SeatClass) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	total := 0
	for _, b := range r.store.bookings {
		if b.FlightID == flightID && b.SeatClass == class {
			total += len(b.Passengers)
		}
	}
	return total, nil
}
