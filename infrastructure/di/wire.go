//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/rahulAtGit/ZentriqVision/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideS3PresignClient,
	ProvideCognitoClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideMetricsSet,
	ProvideMetrics,
	ProvideTracer,
	ProvideItemStore,
	ProvideBlobStore,
	ProvideEventPublisher,
	ProvideIdentityProvider,
	ProvideTokenValidator,
	ProvideAccountService,
	ProvideErrorHandler,
	ProvideClock,
	ProvideSearchRouter,
	ProvideMarkProcessingHandler,
	ProvideCommandBus,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
