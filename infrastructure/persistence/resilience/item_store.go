// Package resilience decorates the item store with a circuit breaker,
// tracing subsegments and call metrics.
package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/rahulAtGit/ZentriqVision/application/ports"
	"github.com/rahulAtGit/ZentriqVision/domain/core/entities"
	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"
	"github.com/rahulAtGit/ZentriqVision/pkg/observability"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Store is an item store that also applies status transitions
type Store interface {
	ports.ItemStore
	ports.VideoStatusUpdater
}

// Metrics records store call latency and outcomes
type Metrics = observability.Metrics

// Timer interface
type Timer = observability.Timer

// Tracer wraps a call in a tracing subsegment
type Tracer interface {
	TraceFunction(ctx context.Context, name string, fn func(context.Context) error) error
}

// BreakerConfig holds configuration for the circuit breaker
type BreakerConfig struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// Trip once FailureThreshold of at least MinRequests calls failed
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns the breaker settings used for the data table
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// ItemStore guards every call to the wrapped store. It never retries: a
// failed or rejected call is reported to the caller as a store failure.
type ItemStore struct {
	next    Store
	cb      *gobreaker.CircuitBreaker
	metrics Metrics
	tracer  Tracer
	logger  *zap.Logger
}

var _ Store = (*ItemStore)(nil)

// Option configures the decorator
type Option func(*ItemStore)

// WithMetrics records per-operation timers and counters
func WithMetrics(m Metrics) Option {
	return func(s *ItemStore) { s.metrics = m }
}

// WithTracer wraps every call in a subsegment
func WithTracer(t Tracer) Option {
	return func(s *ItemStore) { s.tracer = t }
}

// NewItemStore wraps next with a circuit breaker
func NewItemStore(next Store, cfg BreakerConfig, logger *zap.Logger, opts ...Option) *ItemStore {
	s := &ItemStore{next: next, logger: logger}
	s.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		// Only store failures count against the breaker; misses, conflicts
		// and cancelled requests are caller outcomes.
		IsSuccessful: func(err error) bool {
			return err == nil || !apperrors.IsDatabase(err)
		},
	})
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State exposes the breaker state for readiness checks
func (s *ItemStore) State() gobreaker.State {
	return s.cb.State()
}

func (s *ItemStore) Get(ctx context.Context, pk, sk string) (entities.Record, error) {
	var rec entities.Record
	err := s.call(ctx, "Get", func(ctx context.Context) error {
		var err error
		rec, err = s.next.Get(ctx, pk, sk)
		return err
	})
	return rec, err
}

func (s *ItemStore) Put(ctx context.Context, record entities.Record) error {
	return s.call(ctx, "Put", func(ctx context.Context) error {
		return s.next.Put(ctx, record)
	})
}

func (s *ItemStore) Query(ctx context.Context, pk, skPrefix string) ([]entities.Record, error) {
	var recs []entities.Record
	err := s.call(ctx, "Query", func(ctx context.Context) error {
		var err error
		recs, err = s.next.Query(ctx, pk, skPrefix)
		return err
	})
	return recs, err
}

func (s *ItemStore) QueryIndex(ctx context.Context, index ports.IndexName, indexPK string) ([]entities.Record, error) {
	var recs []entities.Record
	err := s.call(ctx, "QueryIndex."+string(index), func(ctx context.Context) error {
		var err error
		recs, err = s.next.QueryIndex(ctx, index, indexPK)
		return err
	})
	return recs, err
}

func (s *ItemStore) TransitionStatus(ctx context.Context, orgID, videoID string, from, to valueobjects.VideoStatus, attrs map[string]interface{}) error {
	return s.call(ctx, "TransitionStatus", func(ctx context.Context) error {
		return s.next.TransitionStatus(ctx, orgID, videoID, from, to, attrs)
	})
}

func (s *ItemStore) call(ctx context.Context, op string, fn func(context.Context) error) error {
	if s.metrics != nil {
		timer := s.metrics.StartTimer("store_duration", op)
		defer timer.Stop()
		s.metrics.Increment("store_calls", op)
	}

	_, err := s.cb.Execute(func() (interface{}, error) {
		if s.tracer != nil {
			return nil, s.tracer.TraceFunction(ctx, "ItemStore."+op, fn)
		}
		return nil, fn(ctx)
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		s.logger.Warn("Item store call rejected by circuit breaker",
			zap.String("operation", op),
			zap.Error(err),
		)
		err = apperrors.NewDatabaseError(op, err)
	}
	if err != nil && s.metrics != nil {
		s.metrics.Increment("store_errors", op)
	}
	return err
}
