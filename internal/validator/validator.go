package validator

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	models "github.com/seatwise/seatwise/internal"
)

// JourneyDateLayout is the calendar-date format accepted for flight
// journey dates.
const JourneyDateLayout = "2006-01-02"

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("user_role", validateRole)
	v.RegisterValidation("seat_class", validateSeatClass)
	v.RegisterValidation("journey_date", validateJourneyDate)
	v.RegisterValidation("valid_uuid", validateUUID)

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func validateRole(fl validator.FieldLevel) bool {
	return models.Role(fl.Field().String()).Valid()
}

func validateSeatClass(fl validator.FieldLevel) bool {
	return models.SeatClass(fl.Field().String()).Valid()
}

func validateJourneyDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(JourneyDateLayout, fl.Field().String())
	return err == nil
}

func validateUUID(fl validator.FieldLevel) bool {
	_, err := uuid.Parse(fl.Field().String())
	return err == nil
}
