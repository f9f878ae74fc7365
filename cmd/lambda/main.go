package main

import (
	"context"
	"log"
	"time"

	"github.com/rahulAtGit/ZentriqVision/infrastructure/config"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/di"
	"github.com/rahulAtGit/ZentriqVision/interfaces/http/rest"
	"github.com/rahulAtGit/ZentriqVision/pkg/auth"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"go.uber.org/zap"
)

// Global variables for Lambda lifecycle management
var (
	// chiLambda wraps the Chi router for API Gateway REST events
	chiLambda *chiadapter.ChiLambda

	// container holds the dependency injection container
	container *di.Container

	// coldStart tracks whether this is a cold start invocation
	coldStart = true

	// coldStartTime records when the cold start began
	coldStartTime time.Time
)

// init runs during cold start
func init() {
	coldStartTime = time.Now()
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	opts := []rest.Option{rest.WithReadinessCheck(container.Ready)}
	if cfg.AuthRateLimit > 0 {
		opts = append(opts, rest.WithAuthRateLimiter(auth.NewIPRateLimiter(cfg.AuthRateLimit)))
	}

	router := rest.NewRouter(
		container.CommandBus,
		container.QueryBus,
		container.Accounts,
		container.Validator,
		container.ErrorHandler,
		container.Logger,
		opts...,
	)
	chiLambda = chiadapter.New(router.Setup())

	container.Logger.Info("Lambda cold start completed",
		zap.Duration("duration", time.Since(coldStartTime)),
		zap.String("function", cfg.LambdaFunctionName),
	)
}

// Handler is the Lambda function handler. Requests arrive from API Gateway
// with the Cognito authorizer claims in the request context.
func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp, err := chiLambda.ProxyWithContext(ctx, req)

	// Metrics are buffered per invocation
	if container.Metrics.CloudWatch != nil {
		container.Metrics.CloudWatch.Flush(ctx)
	}

	if resp.Headers == nil {
		resp.Headers = make(map[string]string)
	}
	if coldStart {
		resp.Headers["X-Cold-Start"] = "true"
		coldStart = false
	} else {
		resp.Headers["X-Cold-Start"] = "false"
	}
	if req.RequestContext.RequestID != "" {
		resp.Headers["X-Lambda-Request-ID"] = req.RequestContext.RequestID
	}

	if resp.StatusCode >= 500 {
		container.Logger.Error("Lambda error response",
			zap.String("method", req.HTTPMethod),
			zap.String("path", req.Path),
			zap.String("request_id", req.RequestContext.RequestID),
			zap.Int("status_code", resp.StatusCode),
		)
	}

	return resp, err
}

// main is the entry point for the Lambda function
func main() {
	lambda.Start(Handler)
}
