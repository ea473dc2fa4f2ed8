package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	models "github.com/seatwise/seatwise/internal"
	"github.com/seatwise/seatwise/internal/ports"
	"github.com/seatwise/seatwise/internal/validator"
	"go.uber.org/zap"
)

type flightService struct {
	flights ports.FlightRepository
	cache   ports.FlightCache
	locks   *FlightLocks
	logger  *zap.Logger
}

func NewFlightService(flights ports.FlightRepository, cache ports.FlightCache, locks *FlightLocks, logger *zap.Logger) *flightService {
	return &flightService{
		flights: flights,
		cache:   cache,
		locks:   locks,
		logger:  logger,
	}
}

func (s *flightService) AddFlight(ctx context.Context, req *models.AddFlightRequest) (*models.Flight, error) {
	journeyDate, err := time.Parse(validator.JourneyDateLayout, req.JourneyDate)
	if err != nil {
		return nil, models.NewValidationError("journey_date must be a calendar date (YYYY-MM-DD)")
	}

	now := time.Now().UTC()
	flight := &models.Flight{
		ID:             uuid.NewString(),
		FlightName:     req.FlightName,
		FlightCode:     req.FlightCode,
		Origin:         req.Origin,
		Destination:    req.Destination,
		DepartureTime:  req.DepartureTime,
		ArrivalTime:    req.ArrivalTime,
		JourneyDate:    journeyDate,
		BasePrice:      req.BasePrice,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.TotalSeats,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.flights.Create(ctx, flight); err != nil {
		return nil, fmt.Errorf("creating flight: %w", err)
	}

	s.invalidateCache(ctx)
	return flight, nil
}

func (s *flightService) UpdateFlight(ctx context.Context, req *models.UpdateFlightRequest) (*models.Flight, error) {
	update := models.FlightUpdate{
		FlightName:    req.FlightName,
		FlightCode:    req.FlightCode,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		BasePrice:     req.BasePrice,
	}

	if req.JourneyDate != nil {
		journeyDate, err := time.Parse(validator.JourneyDateLayout, *req.JourneyDate)
		if err != nil {
			return nil, models.NewValidationError("journey_date must be a calendar date (YYYY-MM-DD)")
		}
		update.JourneyDate = &journeyDate
	}

	// capacity edits race with bookings on the same flight, so they take
	// the same per-flight lock as the booking engine
	unlock := s.locks.Lock(req.ID)
	defer unlock()

	flight, err := s.flights.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.TotalSeats != nil {
		if *req.TotalSeats <= 0 {
			return nil, models.NewValidationError("total_seats must be positive")
		}
		// reconcile: availability moves by the capacity delta, and the
		// edit is refused when it would strand already-booked seats
		available := flight.AvailableSeats + (*req.TotalSeats - flight.TotalSeats)
		if available < 0 {
			return nil, models.NewValidationError("total_seats cannot shrink below booked seats")
		}
		update.TotalSeats = req.TotalSeats
		update.AvailableSeats = &available
	}

	if err := s.flights.Update(ctx, req.ID, update); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return s.flights.GetByID(ctx, req.ID)
}

func (s *flightService) GetFlight(ctx context.Context, id string) (*models.Flight, error) {
	return s.flights.GetByID(ctx, id)
}

func (s *flightService) ListFlights(ctx context.Context) ([]models.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.logger.Warn("flight cache write failed", zap.Error(err))
		}
	}
	return flights, nil
}

func (s *flightService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.logger.Warn("flight cache invalidation failed", zap.Error(err))
	}
}
