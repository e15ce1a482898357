// Lambda entrypoint for GET /flights/passengers: lists every passenger
// booked on a flight, optionally restricted to connecting itineraries.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/aerodex/manifest/lambdautil"
	"github.com/aerodex/manifest/manifest"
	"github.com/aerodex/manifest/repository"
	"github.com/aerodex/manifest/store"
)

type handler struct {
	service *manifest.PassengerService
	log     *zap.SugaredLogger
}

func (h *handler) handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	flightNumber, err := lambdautil.QueryParam(request, "flightNumber", true)
	if err != nil {
		return lambdautil.Error(err), nil
	}
	departureDate, err := lambdautil.QueryParam(request, "date", true)
	if err != nil {
		return lambdautil.Error(err), nil
	}
	connecting, _ := lambdautil.QueryParam(request, "connectingOnly", false)

	h.log.Infow("listing passengers for flight",
		"flightNumber", flightNumber,
		"date", departureDate,
		"connectingOnly", connecting == "true",
	)

	summaries, err := h.service.PassengersForFlight(ctx, flightNumber, departureDate, connecting == "true")
	if err != nil {
		h.log.Errorw("passenger listing failed", "error", err)
		return lambdautil.Error(err), nil
	}
	return lambdautil.OK(summaries)
}

func main() {
	logger, err := zap.NewProduction()
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

	lambda.Start((&handler{service: service, log: sugar}).handle)
}
