// Package service implements the symmetric text codec and the block and AEAD
// ciphers behind each of its modes.
package service

import (
	"context"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
)

// Cipher seals and opens raw bytes with key material fixed at construction.
// Implementations are immutable and safe for concurrent use.
type Cipher interface {
	// Seal encrypts plaintext and returns the raw ciphertext envelope.
	Seal(plaintext []byte) ([]byte, error)

	// Open reverses Seal. Returns ErrCryptoBackendFailure on malformed input.
	Open(ciphertext []byte) ([]byte, error)
}

// CipherFactory builds the Cipher for a mode from a shared secret.
type CipherFactory interface {
	CreateCipher(secret []byte, mode codecDomain.Mode) (Cipher, error)
}

// TextCodec encrypts text and JSON values into base64 strings and back.
type TextCodec interface {
	// Mode returns the cipher mode the codec was built with.
	Mode() codecDomain.Mode

	// Encrypt returns the base64 ciphertext of plaintext.
	Encrypt(plaintext []byte) (string, error)

	// Decrypt returns the plaintext of a base64 ciphertext.
	Decrypt(ciphertext string) ([]byte, error)

	// EncryptJSON serializes value to JSON and encrypts it.
	EncryptJSON(value any) (string, error)

	// DecryptJSON decrypts and parses a JSON value. With associative set, numbers
	// are kept as json.Number so integers survive the round-trip exactly.
	DecryptJSON(ciphertext string, associative bool) (any, error)

	// DecryptJSONInto decrypts and parses a JSON value into v.
	DecryptJSONInto(ciphertext string, v any) error
}

// KMSService opens keepers for KMS key URIs.
type KMSService interface {
	// OpenKeeper opens a keeper for keyURI. Callers must Close it.
	OpenKeeper(ctx context.Context, keyURI string) (codecDomain.KMSKeeper, error)
}
