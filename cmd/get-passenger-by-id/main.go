// Lambda entrypoint for GET /passengers/{passengerId}: returns one
// passenger with the flights reachable through their booking.
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
	passengerID, err := lambdautil.PathParam(request, "passengerId")
	if err != nil {
		return lambdautil.Error(err), nil
	}

	h.log.Infow("resolving passenger details", "passengerId", passengerID)

	details, err := h.service.PassengerDetails(ctx, passengerID)
	if err != nil {
		h.log.Errorw("passenger resolution failed", "passengerId", passengerID, "error", err)
		return lambdautil.Error(err), nil
	}
	return lambdautil.OK(details)
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
