package di

import (
	"context"

	"github.com/rahulAtGit/ZentriqVision/application/commands/bus"
	querybus "github.com/rahulAtGit/ZentriqVision/application/queries/bus"
	"github.com/rahulAtGit/ZentriqVision/application/services"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/config"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/persistence/resilience"
	"github.com/rahulAtGit/ZentriqVision/pkg/auth"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"

	"go.uber.org/zap"
)

// readinessKey is never written; reading it proves the table answers
const readinessKey = "HEALTH#readiness"

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	Store        resilience.Store
	CommandBus   *bus.CommandBus
	QueryBus     *querybus.QueryBus
	Accounts     *services.AccountService
	Validator    auth.TokenValidator
	ErrorHandler *apperrors.ErrorHandler
	Metrics      MetricsSet
}

// Ready reports whether the data table can serve reads
func (c *Container) Ready(ctx context.Context) error {
	_, err := c.Store.Get(ctx, readinessKey, readinessKey)
	return err
}

// Shutdown flushes buffered metrics and the logger
func (c *Container) Shutdown(ctx context.Context) {
	if c.Metrics.CloudWatch != nil {
		c.Metrics.CloudWatch.Flush(ctx)
	}
	_ = c.Logger.Sync()
}
