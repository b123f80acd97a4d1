package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Operation status labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// BusinessMetrics records codec operation counts and durations.
type BusinessMetrics interface {
	// RecordOperation counts one operation.
	// Operation examples: "encrypt", "decrypt", "encrypt_json", "decrypt_json"
	// Mode examples: "aes-256-ecb", "aes-256-gcm"
	RecordOperation(ctx context.Context, operation, mode, status string)

	// RecordDuration records the duration of one operation in seconds.
	RecordDuration(ctx context.Context, operation, mode string, duration time.Duration, status string)
}

// StatusFromError maps an operation result to a status label.
func StatusFromError(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

// businessMetrics implements BusinessMetrics using OpenTelemetry metrics.
type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
}

// NewBusinessMetrics creates a BusinessMetrics on the given meter provider.
// The namespace prefixes every metric name (e.g., "textcodec").
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of codec operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of codec operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
	}, nil
}

// RecordOperation increments the operation counter.
func (b *businessMetrics) RecordOperation(ctx context.Context, operation, mode, status string) {
	b.operationCounter.Add(ctx, 1, metric.WithAttributes(operationAttributes(operation, mode, status)...))
}

// RecordDuration records the operation duration in seconds.
func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	operation, mode string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(
		ctx,
		duration.Seconds(),
		metric.WithAttributes(operationAttributes(operation, mode, status)...),
	)
}

func operationAttributes(operation, mode, status string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("domain", "codec"),
		attribute.String("operation", operation),
		attribute.String("mode", mode),
		attribute.String("status", status),
	}
}

// NoOpBusinessMetrics is a no-op implementation of BusinessMetrics for when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

// RecordOperation does nothing.
func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, operation, mode, status string) {}

// RecordDuration does nothing.
func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	operation, mode string,
	duration time.Duration,
	status string,
) {
}
