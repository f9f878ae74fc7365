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
)

type pingQuery struct {
	Name string
}

func (q pingQuery) Validate() error {
	if q.Name == "" {
		return apperrors.NewValidationError("name is required")
	}
	return nil
}

func TestQueryBus_Ask(t *testing.T) {
	collector := observability.NewCollector("test")
	b := NewQueryBus(NewMetricsMiddleware(collector))
	require.NoError(t, b.Register(pingQuery{}, QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		return "pong " + q.(pingQuery).Name, nil
	})))

	result, err := b.Ask(context.Background(), pingQuery{Name: "a"})
	require.NoError(t, err)
	assert.Equal(t, "pong a", result)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Operations.WithLabelValues("query_success", "pingQuery")))

	assert.Error(t, b.Register(pingQuery{}, QueryHandlerFunc(nil)))
}

func TestQueryBus_ErrorsPassThrough(t *testing.T) {
	b := NewQueryBus()
	notFound := apperrors.NewNotFoundError("video")
	require.NoError(t, b.Register(pingQuery{}, QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		return nil, notFound
	})))

	_, err := b.Ask(context.Background(), pingQuery{})
	assert.True(t, apperrors.IsValidation(err))

	_, err = b.Ask(context.Background(), pingQuery{Name: "a"})
	assert.True(t, errors.Is(err, notFound))
}

type otherQuery struct{}

func (otherQuery) Validate() error { return nil }

func TestQueryBus_UnregisteredQuery(t *testing.T) {
	_, err := NewQueryBus().Ask(context.Background(), otherQuery{})
	assert.Error(t, err)
}
