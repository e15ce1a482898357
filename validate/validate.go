// Package validate holds the pure input validators. Every function
// either returns nil or a field-tagged *fault.ValidationError; none
// of them touches the store. Cross-field and business-rule checks
// (date-not-in-past and the like) are deliberately absent.
package validate

import (
	"regexp"
	"strings"
	"time"

	"github.com/aerodex/manifest/fault"
)

var (
	flightNumberPattern = regexp.MustCompile(`^[A-Z]{2}\d{1,4}$`)
	airportCodePattern  = regexp.MustCompile(`^[A-Z]{3}$`)
	bookingIDPattern    = regexp.MustCompile(`^[A-Z0-9]{6}$`)
	datePattern         = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	passengerIDPattern  = regexp.MustCompile(`^[A-Z0-9_-]+$`)
	emailPattern        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// FlightNumber checks the IATA-style carrier code plus flight digits.
func FlightNumber(flightNumber string) error {
	if flightNumber == "" {
		return fault.Validation("flightNumber", "Flight number is required")
	}
	if !flightNumberPattern.MatchString(flightNumber) {
		return fault.Validation("flightNumber", "Invalid flight number format. Expected format: AA1234")
	}
	return nil
}

// AirportCode checks a three-letter IATA airport code.
func AirportCode(airportCode string) error {
	if airportCode == "" {
		return fault.Validation("airportCode", "Airport code is required")
	}
	if !airportCodePattern.MatchString(airportCode) {
		return fault.Validation("airportCode", "Invalid airport code format. Expected format: AAA")
	}
	return nil
}

// BookingID checks a six-character booking reference.
func BookingID(bookingID string) error {
	if bookingID == "" {
		return fault.Validation("bookingId", "Booking ID is required")
	}
	if !bookingIDPattern.MatchString(bookingID) {
		return fault.Validation("bookingId", "Invalid booking ID format. Expected format: A1B2C3 or similar")
	}
	return nil
}

// Date checks the YYYY-MM-DD shape and that the value is a real
// calendar date. fieldName tags the resulting error.
func Date(dateString, fieldName string) error {
	if dateString == "" {
		return fault.Validation(fieldName, fieldName+" is required")
	}
	if !datePattern.MatchString(dateString) {
		return fault.Validation(fieldName, "Invalid date format for "+fieldName+". Expected format: YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", dateString); err != nil {
		return fault.Validation(fieldName, "Invalid date format for "+fieldName+". Expected format: YYYY-MM-DD")
	}
	return nil
}

// DepartureDate checks a departure date.
func DepartureDate(departureDate string) error {
	return Date(departureDate, "departureDate")
}

// PassengerID checks an externally assigned passenger identifier.
func PassengerID(passengerID string) error {
	if strings.TrimSpace(passengerID) == "" {
		return fault.Validation("passengerId", "Passenger ID is required")
	}
	if len(passengerID) < 6 || len(passengerID) > 12 {
		return fault.Validation("passengerId", "Passenger ID must be between 6 and 12 characters")
	}
	if !passengerIDPattern.MatchString(passengerID) {
		return fault.Validation("passengerId", "Passenger ID must contain only uppercase letters, numbers, hyphens, or underscores")
	}
	return nil
}

// Email checks the minimal something@something.something shape.
func Email(email string) error {
	if email == "" {
		return fault.Validation("email", "Email is required")
	}
	if !emailPattern.MatchString(email) {
		return fault.Validation("email", "Invalid email format")
	}
	return nil
}
