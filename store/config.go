package store

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the table bindings for the four manifest collections.
type Config struct {
	// Region is the AWS region the tables live in.
	Region string

	// FlightsTable holds flight records keyed by flightId,
	// with the FlightNumberDateIndex GSI (flightNumber, departureDate).
	FlightsTable string

	// BookingsTable holds booking records keyed by bookingId.
	BookingsTable string

	// PassengersTable holds passenger records keyed by passengerId,
	// with the BookingIndex GSI (bookingId).
	PassengersTable string

	// FlightBookingsTable is the junction table keyed by
	// (flightId, bookingId), with the inverse BookingFlightIndex GSI.
	FlightBookingsTable string
}

// GSI names, fixed by the table definitions.
const (
	FlightNumberDateIndex = "FlightNumberDateIndex"
	BookingIndex          = "BookingIndex"
	BookingFlightIndex    = "BookingFlightIndex"
)

// ConfigFromEnv resolves the table bindings from the process environment.
// A .env file is honored when present. Every variable is required; a
// missing one is a fatal configuration error for the process.
func ConfigFromEnv() (Config, error) {
	godotenv.Load()

	cfg := Config{
		Region:              os.Getenv("AWS_REGION"),
		FlightsTable:        os.Getenv("FLIGHTS_TABLE_NAME"),
		BookingsTable:       os.Getenv("BOOKINGS_TABLE_NAME"),
		PassengersTable:     os.Getenv("PASSENGERS_TABLE_NAME"),
		FlightBookingsTable: os.Getenv("FLIGHT_BOOKING_TABLE_NAME"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every table binding is present.
func (c Config) Validate() error {
	required := []struct{ name, value string }{
		{"AWS_REGION", c.Region},
		{"FLIGHTS_TABLE_NAME", c.FlightsTable},
		{"BOOKINGS_TABLE_NAME", c.BookingsTable},
		{"PASSENGERS_TABLE_NAME", c.PassengersTable},
		{"FLIGHT_BOOKING_TABLE_NAME", c.FlightBookingsTable},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("store: %s environment variable is required", r.name)
		}
	}
	return nil
}
