package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// maxDatumsPerCall keeps each PutMetricData request well inside the API limits
const maxDatumsPerCall = 20

// CloudWatchAPI is the subset of the CloudWatch client used for metrics
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// CloudWatchMetrics buffers data points in memory and ships them on Flush.
// Lambda handlers flush once at the end of each invocation.
type CloudWatchMetrics struct {
	namespace string
	client    CloudWatchAPI
	logger    *zap.Logger

	mu      sync.Mutex
	pending []types.MetricDatum
}

var _ Metrics = (*CloudWatchMetrics)(nil)

// NewCloudWatchMetrics creates a new metrics instance
func NewCloudWatchMetrics(namespace string, client CloudWatchAPI, logger *zap.Logger) *CloudWatchMetrics {
	return &CloudWatchMetrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

func (m *CloudWatchMetrics) StartTimer(metric, label string) Timer {
	start := time.Now()
	return &onceTimer{stop: func() {
		m.add(metric, label, float64(time.Since(start).Milliseconds()), types.StandardUnitMilliseconds)
	}}
}

func (m *CloudWatchMetrics) Increment(metric, label string) {
	m.add(metric, label, 1, types.StandardUnitCount)
}

func (m *CloudWatchMetrics) add(metric, label string, value float64, unit types.StandardUnit) {
	datum := types.MetricDatum{
		MetricName: aws.String(metric),
		Dimensions: []types.Dimension{
			{
				Name:  aws.String("Operation"),
				Value: aws.String(label),
			},
		},
		Value:     aws.Float64(value),
		Unit:      unit,
		Timestamp: aws.Time(time.Now()),
	}

	m.mu.Lock()
	m.pending = append(m.pending, datum)
	m.mu.Unlock()
}

// Pending reports how many data points are waiting to be flushed
func (m *CloudWatchMetrics) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Flush sends all buffered data points. Failures are logged and dropped;
// metrics never fail a request.
func (m *CloudWatchMetrics) Flush(ctx context.Context) {
	m.mu.Lock()
	batch := m.pending
	m.pending = nil
	m.mu.Unlock()

	if m.client == nil || len(batch) == 0 {
		return
	}

	for start := 0; start < len(batch); start += maxDatumsPerCall {
		end := start + maxDatumsPerCall
		if end > len(batch) {
			end = len(batch)
		}
		_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(m.namespace),
			MetricData: batch[start:end],
		})
		if err != nil {
			m.logger.Warn("Failed to send metrics",
				zap.String("namespace", m.namespace),
				zap.Int("datums", end-start),
				zap.Error(err),
			)
		}
	}
}
