package usecase

import (
	"context"
	"time"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
	"github.com/allisson/textcodec/internal/metrics"
)

// codecUseCaseWithMetrics decorates CodecUseCase with metrics instrumentation.
type codecUseCaseWithMetrics struct {
	next    CodecUseCase
	metrics metrics.BusinessMetrics
}

// NewCodecUseCaseWithMetrics wraps a CodecUseCase with metrics recording.
func NewCodecUseCaseWithMetrics(useCase CodecUseCase, m metrics.BusinessMetrics) CodecUseCase {
	return &codecUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *codecUseCaseWithMetrics) Mode() codecDomain.Mode {
	return c.next.Mode()
}

// Encrypt records metrics for encrypt operations.
func (c *codecUseCaseWithMetrics) Encrypt(ctx context.Context, plaintext []byte) (string, error) {
	start := time.Now()
	ciphertext, err := c.next.Encrypt(ctx, plaintext)
	c.record(ctx, "encrypt", start, err)
	return ciphertext, err
}

// Decrypt records metrics for decrypt operations.
func (c *codecUseCaseWithMetrics) Decrypt(ctx context.Context, ciphertext string) ([]byte, error) {
	start := time.Now()
	plaintext, err := c.next.Decrypt(ctx, ciphertext)
	c.record(ctx, "decrypt", start, err)
	return plaintext, err
}

// EncryptJSON records metrics for JSON encrypt operations.
func (c *codecUseCaseWithMetrics) EncryptJSON(ctx context.Context, value any) (string, error) {
	start := time.Now()
	ciphertext, err := c.next.EncryptJSON(ctx, value)
	c.record(ctx, "encrypt_json", start, err)
	return ciphertext, err
}

// DecryptJSON records metrics for JSON decrypt operations.
func (c *codecUseCaseWithMetrics) DecryptJSON(
	ctx context.Context,
	ciphertext string,
	associative bool,
) (any, error) {
	start := time.Now()
	value, err := c.next.DecryptJSON(ctx, ciphertext, associative)
	c.record(ctx, "decrypt_json", start, err)
	return value, err
}

func (c *codecUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	mode := c.next.Mode().String()
	status := metrics.StatusFromError(err)

	c.metrics.RecordOperation(ctx, operation, mode, status)
	c.metrics.RecordDuration(ctx, operation, mode, time.Since(start), status)
}
