// Package usecase exposes the codec to transports with context propagation,
// structured logging and metrics.
package usecase

import (
	"context"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
)

// CodecUseCase defines the codec operations offered to the HTTP and CLI layers.
type CodecUseCase interface {
	// Mode returns the cipher mode of the underlying codec.
	Mode() codecDomain.Mode

	// Encrypt returns the base64 ciphertext of plaintext.
	Encrypt(ctx context.Context, plaintext []byte) (string, error)

	// Decrypt returns the plaintext of a base64 ciphertext.
	//
	// Security Note: callers should zero the returned slice once it is no longer needed.
	Decrypt(ctx context.Context, ciphertext string) ([]byte, error)

	EncryptJSON(ctx context.Context, value any) (string, error)

	// DecryptJSON decrypts and parses a JSON value. See service.TextCodec for the
	// meaning of associative.
	DecryptJSON(ctx context.Context, ciphertext string, associative bool) (any, error)
}
