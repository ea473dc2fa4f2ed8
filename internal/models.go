package models

import (
	"time"
)

type Role string

const (
	RoleTraveler       Role = "traveler"
	RoleAdmin          Role = "admin"
	RoleFlightOperator Role = "flight-operator"
)

func (r Role) Valid() bool {
	switch r {
	case RoleTraveler, RoleAdmin, RoleFlightOperator:
		return true
	}
	return false
}

type ApprovalStatus string

const (
	ApprovalApproved    ApprovalStatus = "approved"
	ApprovalNotApproved ApprovalStatus = "not-approved"
	ApprovalRejected    ApprovalStatus = "rejected"
)

type SeatClass string

const (
	SeatClassEconomy        SeatClass = "economy"
	SeatClassPremiumEconomy SeatClass = "premium-economy"
	SeatClassBusiness       SeatClass = "business"
	SeatClassFirstClass     SeatClass = "first-class"
)

func (s SeatClass) Valid() bool {
	switch s {
	case SeatClassEconomy, SeatClassPremiumEconomy, SeatClassBusiness, SeatClassFirstClass:
		return true
	}
	return false
}

// Prefix is the fixed single-letter seat-code prefix of the class.
// Codes within one (flight, class) are {prefix}-1, {prefix}-2, ...
func (s SeatClass) Prefix() string {
	switch s {
	case SeatClassPremiumEconomy:
		return "P"
	case SeatClassBusiness:
		return "B"
	case SeatClassFirstClass:
		return "A"
	default:
		return "E"
	}
}

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

type User struct {
	ID           string         `bson:"_id" json:"id"`
	Username     string         `bson:"username" json:"username"`
	Email        string         `bson:"email" json:"email"`
	Role         Role           `bson:"usertype" json:"usertype"`
	PasswordHash string         `bson:"password" json:"-"`
	Approval     ApprovalStatus `bson:"approval" json:"approval"`
	CreatedAt    time.Time      `bson:"createdAt" json:"created_at"`
}

type Flight struct {
	ID             string    `bson:"_id" json:"id"`
	FlightName     string    `bson:"flightName" json:"flight_name"`
	FlightCode     string    `bson:"flightCode" json:"flight_code"`
	Origin         string    `bson:"origin" json:"origin"`
	Destination    string    `bson:"destination" json:"destination"`
	DepartureTime  string    `bson:"departureTime" json:"departure_time"`
	ArrivalTime    string    `bson:"arrivalTime" json:"arrival_time"`
	JourneyDate    time.Time `bson:"journeyDate" json:"journey_date"`
	BasePrice      float64   `bson:"basePrice" json:"base_price"`
	TotalSeats     int       `bson:"totalSeats" json:"total_seats"`
	AvailableSeats int       `bson:"availableSeats" json:"available_seats"`
	CreatedAt      time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updated_at"`
}

type Passenger struct {
	Name string `bson:"name" json:"name" validate:"required"`
	Age  int    `bson:"age" json:"age" validate:"required,gt=0"`
}

// Booking carries an immutable snapshot of the flight fields taken at
// booking time; later catalog edits must not change past bookings.
type Booking struct {
	ID            string        `bson:"_id" json:"id"`
	UserID        string        `bson:"userId" json:"user_id"`
	FlightID      string        `bson:"flightId" json:"flight_id"`
	FlightName    string        `bson:"flightName" json:"flight_name"`
	FlightCode    string        `bson:"flightCode" json:"flight_code"`
	Origin        string        `bson:"origin" json:"origin"`
	Destination   string        `bson:"destination" json:"destination"`
	DepartureTime string        `bson:"departureTime" json:"departure_time"`
	ArrivalTime   string        `bson:"arrivalTime" json:"arrival_time"`
	JourneyDate   time.Time     `bson:"journeyDate" json:"journey_date"`
	Passengers    []Passenger   `bson:"passengers" json:"passengers"`
	Mobile        string        `bson:"mobile" json:"mobile"`
	SeatClass     SeatClass     `bson:"seatClass" json:"seat_class"`
	SeatCodes     []string      `bson:"seatCodes" json:"seat_codes"`
	TotalPrice    float64       `bson:"totalPrice" json:"total_price"`
	Status        BookingStatus `bson:"bookingStatus" json:"booking_status"`
	CreatedAt     time.Time     `bson:"createdAt" json:"created_at"`
}

// Claims is the identity embedded in a session token, trusted without a
// database round-trip once the token signature checks out.
type Claims struct {
	UserID   string         `json:"user_id"`
	Role     Role           `json:"role"`
	Approval ApprovalStatus `json:"approval"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	UserType Role   `json:"usertype" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type OperatorActionRequest struct {
	ID string `json:"id" validate:"required"`
}

type AddFlightRequest struct {
	FlightName    string  `json:"flight_name" validate:"required"`
	FlightCode    string  `json:"flight_code" validate:"required"`
	Origin        string  `json:"origin" validate:"required"`
	Destination   string  `json:"destination" validate:"required"`
	DepartureTime string  `json:"departure_time" validate:"required"`
	ArrivalTime   string  `json:"arrival_time" validate:"required"`
	JourneyDate   string  `json:"journey_date" validate:"required,journey_date"`
	BasePrice     float64 `json:"base_price" validate:"required,gt=0"`
	TotalSeats    int     `json:"total_seats" validate:"required,gt=0"`
}

// UpdateFlightRequest applies only the fields that are present; nil
// pointers are no-ops rather than resets.
type UpdateFlightRequest struct {
	ID            string   `json:"_id" validate:"required"`
	FlightName    *string  `json:"flight_name"`
	FlightCode    *string  `json:"flight_code"`
	Origin        *string  `json:"origin"`
	Destination   *string  `json:"destination"`
	DepartureTime *string  `json:"departure_time"`
	ArrivalTime   *string  `json:"arrival_time"`
	JourneyDate   *string  `json:"journey_date"`
	BasePrice     *float64 `json:"base_price"`
	TotalSeats    *int     `json:"total_seats"`
}

// FlightUpdate is the persisted form of a partial flight edit, computed by
// the catalog service after validation and seat reconciliation.
type FlightUpdate struct {
	FlightName     *string
	FlightCode     *string
	Origin         *string
	Destination    *string
	DepartureTime  *string
	ArrivalTime    *string
	JourneyDate    *time.Time
	BasePrice      *float64
	TotalSeats     *int
	AvailableSeats *int
}

type BookTicketRequest struct {
	FlightID   string      `json:"flightId" validate:"required"`
	Passengers []Passenger `json:"passengers" validate:"required,min=1,dive"`
	SeatClass  SeatClass   `json:"seatClass" validate:"required,seat_class"`
	Mobile     string      `json:"mobile" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// BookingDetails joins a booking with its owner and, when it still
// exists, the live flight record. Admin listing only.
type BookingDetails struct {
	Booking
	Owner  User    `json:"user"`
	Flight *Flight `json:"flight,omitempty"`
}
