package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	models "github.com/seatwise/seatwise/internal"
	"github.com/seatwise/seatwise/internal/events"
	"github.com/seatwise/seatwise/internal/ports"
	"go.uber.org/zap"
)

type bookingService struct {
	bookings ports.BookingRepository
	flights  ports.FlightRepository
	users    ports.UserRepository
	locks    *FlightLocks
	producer ports.EventProducer
	topic    string
	logger   *zap.Logger
}

type BookingServiceOption func(*bookingService)

// WithEventProducer enables booking lifecycle events. Without it the
// service runs standalone.
func WithEventProducer(producer ports.EventProducer, topic string) BookingServiceOption {
	return func(s *bookingService) {
		s.producer = producer
		s.topic = topic
	}
}

func NewBookingService(
	bookings ports.BookingRepository,
	flights ports.FlightRepository,
	users ports.UserRepository,
	locks *FlightLocks,
	logger *zap.Logger,
	opts ...BookingServiceOption,
) *bookingService {
	s := &bookingService{
		bookings: bookings,
		flights:  flights,
		users:    users,
		locks:    locks,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BookTicket reserves seats for every passenger in the request. The whole
// check / count / decrement / insert sequence holds the flight's lock:
// availableSeats must never go negative and seat codes within one
// (flight, class) must never collide, no matter how many bookings race.
func (s *bookingService) BookTicket(ctx context.Context, claims models.Claims, req *models.BookTicketRequest) (*models.Booking, error) {
	n := len(req.Passengers)
	if n < 1 {
		return nil, models.NewValidationError("at least one passenger is required")
	}
	if !req.SeatClass.Valid() {
		return nil, models.NewValidationError("unknown seat class")
	}

	unlock := s.locks.Lock(req.FlightID)
	defer unlock()

	flight, err := s.flights.GetByID(ctx, req.FlightID)
	if err != nil {
		return nil, err
	}
	if flight.AvailableSeats < n {
		return nil, models.ErrInsufficientSeats
	}

	prior, err := s.bookings.CountSeats(ctx, flight.ID, req.SeatClass)
	if err != nil {
		return nil, fmt.Errorf("counting booked seats: %w", err)
	}

	seatCodes := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		seatCodes = append(seatCodes, fmt.Sprintf("%s-%d", req.SeatClass.Prefix(), prior+i))
	}

	booking := &models.Booking{
		ID:            uuid.NewString(),
		UserID:        claims.UserID,
		FlightID:      flight.ID,
		FlightName:    flight.FlightName,
		FlightCode:    flight.FlightCode,
		Origin:        flight.Origin,
		Destination:   flight.Destination,
		DepartureTime: flight.DepartureTime,
		ArrivalTime:   flight.ArrivalTime,
		JourneyDate:   flight.JourneyDate,
		Passengers:    req.Passengers,
		Mobile:        req.Mobile,
		SeatClass:     req.SeatClass,
		SeatCodes:     seatCodes,
		TotalPrice:    float64(n) * flight.BasePrice,
		Status:        models.StatusConfirmed,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.flights.DecrementSeats(ctx, flight.ID, n); err != nil {
		if errors.Is(err, models.ErrInsufficientSeats) || errors.Is(err, models.ErrFlightNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("reserving seats: %w", err)
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		// undo the decrement so a failed insert never eats inventory
		if rbErr := s.flights.IncrementSeats(ctx, flight.ID, n); rbErr != nil {
			s.logger.Error("seat restore after failed booking insert",
				zap.String("flight_id", flight.ID),
				zap.Int("seats", n),
				zap.Error(rbErr))
		}
		return nil, fmt.Errorf("creating booking: %w", err)
	}

	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

// CancelTicket moves a confirmed booking to its terminal cancelled state
// and returns the seats to the flight. The booking record is the source
// of truth: when the flight is gone the restoration is skipped.
func (s *bookingService) CancelTicket(ctx context.Context, claims models.Claims, bookingID string) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if claims.Role != models.RoleAdmin && booking.UserID != claims.UserID {
		return nil, models.ErrForbidden
	}
	if booking.Status == models.StatusCancelled {
		return nil, models.ErrAlreadyCancelled
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, models.StatusCancelled); err != nil {
		return nil, fmt.Errorf("cancelling booking: %w", err)
	}
	booking.Status = models.StatusCancelled

	unlock := s.locks.Lock(booking.FlightID)
	err = s.flights.IncrementSeats(ctx, booking.FlightID, len(booking.Passengers))
	unlock()
	if err != nil {
		if errors.Is(err, models.ErrFlightNotFound) {
			s.logger.Warn("flight gone, seat restoration skipped",
				zap.String("booking_id", bookingID),
				zap.String("flight_id", booking.FlightID))
		} else {
			s.logger.Error("seat restoration failed",
				zap.String("booking_id", bookingID),
				zap.String("flight_id", booking.FlightID),
				zap.Error(err))
		}
	}

	s.publish(ctx, "booking_cancelled", booking)
	return booking, nil
}

func (s *bookingService) AllBookings(ctx context.Context) ([]models.BookingDetails, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching bookings: %w", err)
	}

	details := make([]models.BookingDetails, 0, len(bookings))
	for _, b := range bookings {
		d := models.BookingDetails{Booking: b}
		if owner, err := s.users.GetByID(ctx, b.UserID); err == nil {
			d.Owner = *owner
		}
		if flight, err := s.flights.GetByID(ctx, b.FlightID); err == nil {
			d.Flight = flight
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *bookingService) publish(ctx context.Context, eventType string, booking *models.Booking) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := events.BookingEvent{
		Type:      eventType,
		BookingID: booking.ID,
		FlightID:  booking.FlightID,
		UserID:    booking.UserID,
		SeatClass: string(booking.SeatClass),
		Seats:     len(booking.Passengers),
		Status:    string(booking.Status),
		CreatedAt: booking.CreatedAt,
	}
	if err := s.producer.Publish(ctx, s.topic, booking.ID, event); err != nil {
		s.logger.Warn("booking event publish failed",
			zap.String("type", eventType),
			zap.String("booking_id", booking.ID),
			zap.Error(err))
	}
}
