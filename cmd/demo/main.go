// Command demo exercises both queries against live tables from the
// terminal. Seed the tables first (cmd/seed), then:
//
//	demo -flight AY123 -date 2024-01-15
//	demo -flight AY123 -date 2024-01-15 -connecting
//	demo -passenger PAX001
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/aerodex/manifest/manifest"
	"github.com/aerodex/manifest/repository"
	"github.com/aerodex/manifest/store"
)

func main() {
	flightNumber := flag.String("flight", "", "flight number, e.g. AY123")
	departureDate := flag.String("date", "", "departure date, e.g. 2024-01-15")
	connecting := flag.Bool("connecting", false, "only passengers on connecting itineraries")
	passengerID := flag.String("passenger", "", "passenger id, e.g. PAX001")
	flag.Parse()

	if *flightNumber == "" && *passengerID == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx := context.Background()
	cfg, err := store.ConfigFromEnv()
	if err != nil {
		sugar.Fatalw("configuration", "error", err)
	}
	client, err := store.NewClient(ctx, cfg)
	if err != nil {
		sugar.Fatalw("dynamodb client", "error", err)
	}
	s, err := store.New(client, cfg)
	if err != nil {
		sugar.Fatalw("store", "error", err)
	}

	service := manifest.NewPassengerService(
		repository.NewFlightRepository(s, sugar),
		repository.NewFlightBookingRepository(s, sugar),
		repository.NewPassengerRepository(s, sugar),
		sugar,
	)

	if *flightNumber != "" {
		if err := showFlight(ctx, service, *flightNumber, *departureDate, *connecting); err != nil {
			sugar.Fatalw("flight query failed", "error", err)
		}
	}
	if *passengerID != "" {
		if err := showPassenger(ctx, service, *passengerID); err != nil {
			sugar.Fatalw("passenger query failed", "error", err)
		}
	}
}

func showFlight(ctx context.Context, service *manifest.PassengerService, flightNumber, departureDate string, connecting bool) error {
	summaries, err := service.PassengersForFlight(ctx, flightNumber, departureDate, connecting)
	if err != nil {
		return err
	}

	label := "passengers"
	if connecting {
		label = "connecting passengers"
	}
	fmt.Printf("%s on %s (%d %s)\n", flightNumber, departureDate, len(summaries), label)

	byBooking := map[string][]manifest.PassengerSummary{}
	var order []string
	for _, summary := range summaries {
		if _, seen := byBooking[summary.BookingID]; !seen {
			order = append(order, summary.BookingID)
		}
		byBooking[summary.BookingID] = append(byBooking[summary.BookingID], summary)
	}
	for _, bookingID := range order {
		fmt.Printf("  booking %s\n", bookingID)
		for _, summary := range byBooking[bookingID] {
			fmt.Printf("    %s  %s %s\n", summary.PassengerID, summary.FirstName, summary.LastName)
		}
	}
	return nil
}

func showPassenger(ctx context.Context, service *manifest.PassengerService, passengerID string) error {
	details, err := service.PassengerDetails(ctx, passengerID)
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s %s <%s>  booking %s\n",
		details.PassengerID, details.FirstName, details.LastName, details.Email, details.BookingID)
	fmt.Printf("itinerary (%d flights):\n", len(details.Flights))
	for _, flight := range details.Flights {
		fmt.Printf("  %s  %s -> %s  %s\n",
			flight.FlightNumber, flight.DepartureAirport, flight.ArrivalAirport, flight.DepartureDate)
	}
	return nil
}
