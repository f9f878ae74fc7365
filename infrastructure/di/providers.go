package di

import (
	"context"
	"fmt"
	"time"

	"github.com/rahulAtGit/ZentriqVision/application/commands"
	"github.com/rahulAtGit/ZentriqVision/application/commands/bus"
	commandhandlers "github.com/rahulAtGit/ZentriqVision/application/commands/handlers"
	"github.com/rahulAtGit/ZentriqVision/application/ports"
	"github.com/rahulAtGit/ZentriqVision/application/queries"
	querybus "github.com/rahulAtGit/ZentriqVision/application/queries/bus"
	queryhandlers "github.com/rahulAtGit/ZentriqVision/application/queries/handlers"
	"github.com/rahulAtGit/ZentriqVision/application/services"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/config"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/identity/cognito"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/messaging/eventbridge"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/persistence/dynamodb"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/persistence/memory"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/persistence/resilience"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/storage/s3"
	"github.com/rahulAtGit/ZentriqVision/pkg/auth"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"
	"github.com/rahulAtGit/ZentriqVision/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awscognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName names the service in traces and metric namespaces
const ServiceName = "zentriqvision"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("environment", cfg.Environment)), nil
}

// ProvideAWSConfig creates AWS configuration. With tracing enabled every
// SDK call is recorded as an X-Ray subsegment.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideS3PresignClient creates a presigner over the S3 client
func ProvideS3PresignClient(awsCfg aws.Config) *awss3.PresignClient {
	return awss3.NewPresignClient(awss3.NewFromConfig(awsCfg))
}

// ProvideCognitoClient creates a Cognito user pool client
func ProvideCognitoClient(awsCfg aws.Config) *awscognito.Client {
	return awscognito.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// MetricsSet carries the selected metrics backend. Exactly one of Collector
// and CloudWatch is set when metrics are enabled.
type MetricsSet struct {
	Metrics    observability.Metrics
	Collector  *observability.Collector
	CloudWatch *observability.CloudWatchMetrics
}

// ProvideMetricsSet selects Prometheus for the server and CloudWatch for
// Lambda, per METRICS_BACKEND
func ProvideMetricsSet(cfg *config.Config, client *awscloudwatch.Client, logger *zap.Logger) MetricsSet {
	if !cfg.EnableMetrics {
		return MetricsSet{Metrics: observability.NopMetrics{}}
	}
	switch cfg.MetricsBackend {
	case config.MetricsCloudWatch:
		namespace := fmt.Sprintf("ZentriqVision/%s", cfg.Environment)
		cw := observability.NewCloudWatchMetrics(namespace, client, logger)
		return MetricsSet{Metrics: cw, CloudWatch: cw}
	default:
		collector := observability.NewCollector(cfg.MetricsNamespace)
		return MetricsSet{Metrics: collector, Collector: collector}
	}
}

// ProvideMetrics exposes the selected backend through the Metrics interface
func ProvideMetrics(set MetricsSet) observability.Metrics {
	return set.Metrics
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(ServiceName, cfg.EnableTracing)
}

// ProvideItemStore creates the data table store for the configured backend,
// guarded by the circuit breaker when enabled
func ProvideItemStore(
	cfg *config.Config,
	client *awsdynamodb.Client,
	metrics observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (resilience.Store, error) {
	var store resilience.Store
	switch cfg.StoreBackend {
	case config.StoreMemory:
		logger.Warn("Using the in-memory item store; data is lost on exit")
		store = memory.NewItemStore()
	case config.StoreDynamoDB:
		store = dynamodb.NewItemStore(client, cfg.TableName, dynamodb.IndexNames{
			Attribute: cfg.AttributeIndex,
			Video:     cfg.VideoIndex,
			Time:      cfg.TimeIndex,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	if !cfg.EnableCircuitBreaker {
		return store, nil
	}
	return resilience.NewItemStore(store, resilience.DefaultBreakerConfig("item-store"), logger,
		resilience.WithMetrics(metrics),
		resilience.WithTracer(tracer),
	), nil
}

// ProvideBlobStore creates the S3 presigner for the video bucket
func ProvideBlobStore(client *awss3.PresignClient, cfg *config.Config, logger *zap.Logger) ports.BlobStore {
	return s3.NewBlobStore(client, cfg.VideoBucket, logger)
}

// ProvideEventPublisher creates the EventBridge publisher. An empty
// EventSource publishes as the backend.
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, cfg.EventSource, logger)
}

// ProvideIdentityProvider creates the Cognito account provider
func ProvideIdentityProvider(client *awscognito.Client, cfg *config.Config, logger *zap.Logger) ports.IdentityProvider {
	return cognito.NewProvider(client, cfg.UserPoolClientID, logger)
}

// ProvideTokenValidator validates bearer tokens against the user pool, or
// the shared secret when no pool is configured
func ProvideTokenValidator(ctx context.Context, cfg *config.Config) (auth.TokenValidator, error) {
	validator, err := auth.NewJWTValidator(ctx, cfg.JWT())
	if err != nil {
		return nil, fmt.Errorf("failed to create token validator: %w", err)
	}
	return validator, nil
}

// ProvideAccountService creates the account service behind /auth
func ProvideAccountService(identity ports.IdentityProvider, validator auth.TokenValidator, logger *zap.Logger) *services.AccountService {
	return services.NewAccountService(identity, validator, logger)
}

// ProvideErrorHandler creates the HTTP error handler. Stack traces are
// included in responses only in development.
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *apperrors.ErrorHandler {
	return apperrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideClock returns the wall clock
func ProvideClock() ports.Clock {
	return time.Now
}

// ProvideSearchRouter creates the search router with the configured limits
func ProvideSearchRouter(store resilience.Store, cfg *config.Config, logger *zap.Logger) *queryhandlers.SearchRouter {
	return queryhandlers.NewSearchRouter(store, queryhandlers.SearchLimits{
		Default: cfg.Domain.SearchDefaultLimit,
		Max:     cfg.Domain.SearchMaxLimit,
	}, logger)
}

// ProvideMarkProcessingHandler creates the upload-event transition handler
func ProvideMarkProcessingHandler(
	store resilience.Store,
	publisher ports.EventPublisher,
	clock ports.Clock,
	logger *zap.Logger,
) *commandhandlers.MarkProcessingHandler {
	return commandhandlers.NewMarkProcessingHandler(store, publisher, clock, logger)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	store resilience.Store,
	blobs ports.BlobStore,
	publisher ports.EventPublisher,
	markProcessing *commandhandlers.MarkProcessingHandler,
	clock ports.Clock,
	cfg *config.Config,
	metrics observability.Metrics,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.LoggingMiddleware(logger),
		bus.MetricsMiddleware(metrics),
	)

	upload := commandhandlers.NewRequestUploadHandler(store, blobs, publisher, clock, cfg.Domain.PresignTTL, logger)
	profile := commandhandlers.NewUpdateProfileHandler(store, publisher, clock, logger)

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.RequestUploadCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			c, ok := cmd.(commands.RequestUploadCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type %T", cmd)
			}
			return upload.Handle(ctx, c)
		})},
		{commands.UpdateProfileCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			c, ok := cmd.(commands.UpdateProfileCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type %T", cmd)
			}
			return profile.Handle(ctx, c)
		})},
		{commands.MarkProcessingCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			c, ok := cmd.(commands.MarkProcessingCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type %T", cmd)
			}
			return markProcessing.Handle(ctx, c)
		})},
	}
	for _, reg := range registrations {
		if err := commandBus.Register(reg.cmd, reg.handler); err != nil {
			return nil, err
		}
	}
	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	store resilience.Store,
	blobs ports.BlobStore,
	router *queryhandlers.SearchRouter,
	clock ports.Clock,
	cfg *config.Config,
	metrics observability.Metrics,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(querybus.NewMetricsMiddleware(metrics))

	gate := queryhandlers.NewAccessGate(store, logger)
	search := queryhandlers.NewSearchVideosHandler(router, logger)
	list := queryhandlers.NewListVideosHandler(router)
	video := queryhandlers.NewGetVideoHandler(gate)
	playback := queryhandlers.NewGetPlaybackHandler(gate, blobs, cfg.Domain.PresignTTL, logger)
	profile := queryhandlers.NewGetProfileHandler(store, clock, logger)

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.SearchVideosQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			query, ok := q.(queries.SearchVideosQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type %T", q)
			}
			return search.Handle(ctx, query)
		})},
		{queries.ListVideosQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			query, ok := q.(queries.ListVideosQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type %T", q)
			}
			return list.Handle(ctx, query)
		})},
		{queries.GetVideoQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			query, ok := q.(queries.GetVideoQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type %T", q)
			}
			return video.Handle(ctx, query)
		})},
		{queries.GetPlaybackQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			query, ok := q.(queries.GetPlaybackQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type %T", q)
			}
			return playback.Handle(ctx, query)
		})},
		{queries.GetProfileQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			query, ok := q.(queries.GetProfileQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type %T", q)
			}
			return profile.Handle(ctx, query)
		})},
	}
	for _, reg := range registrations {
		if err := queryBus.Register(reg.query, reg.handler); err != nil {
			return nil, err
		}
	}
	return queryBus, nil
}
