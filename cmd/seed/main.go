// Lambda entrypoint that populates the tables with the demonstration
// graph. Invoked manually after deployment; rerunning creates fresh
// bookings but overwrites flights and passengers in place.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/aerodex/manifest/repository"
	"github.com/aerodex/manifest/seed"
	"github.com/aerodex/manifest/store"
)

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

	seeder := seed.New(
		repository.NewFlightRepository(s, sugar),
		repository.NewBookingRepository(s, sugar),
		repository.NewPassengerRepository(s, sugar),
		repository.NewFlightBookingRepository(s, sugar),
		sugar,
	)

	lambda.Start(func(ctx context.Context) (*seed.Summary, error) {
		return seeder.Run(ctx)
	})
}
