package main

import (
	"context"
	"log"

	"github.com/rahulAtGit/ZentriqVision/domain/events"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/config"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/di"
	"github.com/rahulAtGit/ZentriqVision/interfaces/lambda/uploads"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

var (
	container *di.Container
	handler   *uploads.Handler
)

// init runs during cold start
func init() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.EventSource = events.SourceUploadEvents

	container, err = di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	handler = uploads.NewHandler(container.CommandBus, container.Logger)
}

// Handle processes one S3 notification batch
func Handle(ctx context.Context, event awsevents.S3Event) error {
	_, err := handler.Handle(ctx, event)
	if container.Metrics.CloudWatch != nil {
		container.Metrics.CloudWatch.Flush(ctx)
	}
	return err
}

func main() {
	lambda.Start(Handle)
}
