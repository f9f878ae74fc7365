package bus

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"
	"github.com/rahulAtGit/ZentriqVision/pkg/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type renameCommand struct {
	Name string
}

func (c renameCommand) Validate() error {
	if c.Name == "" {
		return apperrors.NewValidationError("name is required")
	}
	return nil
}

func TestCommandBus_Send(t *testing.T) {
	collector := observability.NewCollector("test")
	var order []string
	trace := func(tag string) Middleware {
		return func(next CommandHandler) CommandHandler {
			return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
				order = append(order, tag)
				return next.Handle(ctx, cmd)
			})
		}
	}
	b := NewCommandBus(LoggingMiddleware(zap.NewNop()), MetricsMiddleware(collector), trace("outer"), trace("inner"))
	require.NoError(t, b.Register(renameCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		return "renamed to " + cmd.(renameCommand).Name, nil
	})))

	result, err := b.Send(context.Background(), renameCommand{Name: "b"})

	require.NoError(t, err)
	assert.Equal(t, "renamed to b", result)
	assert.Equal(t, []string{"outer", "inner"}, order)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Operations.WithLabelValues("command_count", "renameCommand")))
}

func TestCommandBus_Errors(t *testing.T) {
	b := NewCommandBus()
	conflict := apperrors.NewConflictError("busy")
	require.NoError(t, b.Register(renameCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		return nil, conflict
	})))

	_, err := b.Send(context.Background(), renameCommand{})
	assert.True(t, apperrors.IsValidation(err))

	_, err = b.Send(context.Background(), renameCommand{Name: "x"})
	assert.True(t, errors.Is(err, conflict))

	assert.Error(t, b.Register(renameCommand{}, CommandHandlerFunc(nil)))
}

type unknownCommand struct{}

func (unknownCommand) Validate() error { return nil }

func TestCommandBus_UnregisteredCommand(t *testing.T) {
	_, err := NewCommandBus().Send(context.Background(), unknownCommand{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)
}
