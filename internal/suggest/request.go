package suggest

import (
	"errors"
	"math"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateLayout is the calendar date format trips use.
const DateLayout = "2006-01-02"

// TripRequest describes the itinerary to generate.
type TripRequest struct {
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Preferences string `json:"preferences,omitempty"`
}

// Validate checks required fields and the date range.
func (r TripRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Destination, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.StartDate, validation.Required, validation.Date(DateLayout)),
		validation.Field(&r.EndDate, validation.Required, validation.Date(DateLayout), validation.By(func(value any) error {
			start, err := time.Parse(DateLayout, r.StartDate)
			if err != nil {
				return nil // reported on start_date
			}
			end, err := time.Parse(DateLayout, value.(string))
			if err != nil {
				return nil
			}
			if end.Before(start) {
				return errors.New("must not be before start_date")
			}
			return nil
		})),
		validation.Field(&r.Preferences, validation.Length(0, 2000)),
	)
}

// Days returns the trip length in whole days, rounding up, never below 1.
// It assumes r has been validated.
func (r TripRequest) Days() int {
	start, err1 := time.Parse(DateLayout, r.StartDate)
	end, err2 := time.Parse(DateLayout, r.EndDate)
	if err1 != nil || err2 != nil {
		return 1
	}
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// Normalize trims surrounding whitespace from every field.
func (r TripRequest) Normalize() TripRequest {
	return TripRequest{
		Destination: strings.TrimSpace(r.Destination),
		StartDate:   strings.TrimSpace(r.StartDate),
		EndDate:     strings.TrimSpace(r.EndDate),
		Preferences: strings.TrimSpace(r.Preferences),
	}
}
