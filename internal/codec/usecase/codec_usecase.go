package usecase

import (
	"context"
	"log/slog"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
	codecService "github.com/allisson/textcodec/internal/codec/service"
)

// codecUseCase implements CodecUseCase on top of a TextCodec.
type codecUseCase struct {
	codec  codecService.TextCodec
	logger *slog.Logger
}

// NewCodecUseCase creates a CodecUseCase backed by codec.
func NewCodecUseCase(codec codecService.TextCodec, logger *slog.Logger) CodecUseCase {
	return &codecUseCase{
		codec:  codec,
		logger: logger,
	}
}

func (c *codecUseCase) Mode() codecDomain.Mode {
	return c.codec.Mode()
}

// Encrypt encrypts plaintext. The plaintext is never logged.
func (c *codecUseCase) Encrypt(ctx context.Context, plaintext []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ciphertext, err := c.codec.Encrypt(plaintext)
	if err != nil {
		c.logFailure(ctx, "encrypt", err)
		return "", err
	}

	c.logger.DebugContext(ctx, "codec encrypt",
		slog.String("mode", c.codec.Mode().String()),
		slog.Int("plaintext_size", len(plaintext)),
	)
	return ciphertext, nil
}

// Decrypt decrypts a base64 ciphertext.
func (c *codecUseCase) Decrypt(ctx context.Context, ciphertext string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plaintext, err := c.codec.Decrypt(ciphertext)
	if err != nil {
		c.logFailure(ctx, "decrypt", err)
		return nil, err
	}

	c.logger.DebugContext(ctx, "codec decrypt",
		slog.String("mode", c.codec.Mode().String()),
		slog.Int("plaintext_size", len(plaintext)),
	)
	return plaintext, nil
}

// EncryptJSON serializes and encrypts value.
func (c *codecUseCase) EncryptJSON(ctx context.Context, value any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ciphertext, err := c.codec.EncryptJSON(value)
	if err != nil {
		c.logFailure(ctx, "encrypt_json", err)
		return "", err
	}
	return ciphertext, nil
}

// DecryptJSON decrypts and parses a JSON value.
func (c *codecUseCase) DecryptJSON(ctx context.Context, ciphertext string, associative bool) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, err := c.codec.DecryptJSON(ciphertext, associative)
	if err != nil {
		c.logFailure(ctx, "decrypt_json", err)
		return nil, err
	}
	return value, nil
}

func (c *codecUseCase) logFailure(ctx context.Context, operation string, err error) {
	c.logger.DebugContext(ctx, "codec operation failed",
		slog.String("operation", operation),
		slog.String("mode", c.codec.Mode().String()),
		slog.Any("error", err),
	)
}
