package ports

import (
	"context"

	models "github.com/seatwise/seatwise/internal"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateApproval(ctx context.Context, id string, approval models.ApprovalStatus) error
}

type FlightRepository interface {
	Create(ctx context.Context, flight *models.Flight) error
	GetByID(ctx context.Context, id string) (*models.Flight, error)
	List(ctx context.Context) ([]models.Flight, error)
	Update(ctx context.Context, id string, update models.FlightUpdate) error

	// DecrementSeats atomically takes n seats, refusing the update when
	// fewer than n are available.
	DecrementSeats(ctx context.Context, id string, n int) error

	// IncrementSeats atomically returns n seats, clamped at totalSeats.
	IncrementSeats(ctx context.Context, id string, n int) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error

	// CountSeats sums passenger counts over every booking for the given
	// flight and class, cancelled bookings included; seat codes are never
	// reissued after cancellation.
	CountSeats(ctx context.Context, flightID string, class models.SeatClass) (int, error)
}

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	ApproveOperator(ctx context.Context, targetID string) (*models.User, error)
	RejectOperator(ctx context.Context, targetID string) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type FlightService interface {
	AddFlight(ctx context.Context, req *models.AddFlightRequest) (*models.Flight, error)
	UpdateFlight(ctx context.Context, req *models.UpdateFlightRequest) (*models.Flight, error)
	GetFlight(ctx context.Context, id string) (*models.Flight, error)
	ListFlights(ctx context.Context) ([]models.Flight, error)
}

type BookingService interface {
	BookTicket(ctx context.Context, claims models.Claims, req *models.BookTicketRequest) (*models.Booking, error)
	CancelTicket(ctx context.Context, claims models.Claims, bookingID string) (*models.Booking, error)
	AllBookings(ctx context.Context) ([]models.BookingDetails, error)
}

type TokenManager interface {
	Issue(claims models.Claims) (string, error)
	Verify(token string) (models.Claims, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]models.Flight, error)
	SetFlights(ctx context.Context, flights []models.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type EventProducer interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}
