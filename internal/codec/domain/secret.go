package domain

import (
	"context"
	"crypto/md5" //nolint:gosec // legacy key derivation, kept for ciphertext compatibility
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// KMSKeeper is the subset of a gocloud.dev secrets.Keeper used to unwrap a
// KMS-encrypted codec secret.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// DeriveLegacyKey returns the lowercase hex MD5 digest of secret. The 32 ASCII
// characters are used as-is as the AES-256 key of the legacy modes.
func DeriveLegacyKey(secret []byte) []byte {
	sum := md5.Sum(secret) //nolint:gosec
	key := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(key, sum[:])
	return key
}

// DeriveAEADKey returns the SHA-256 digest of secret, used by the
// authenticated modes.
func DeriveAEADKey(secret []byte) []byte {
	sum := sha256.Sum256(secret)
	return sum[:]
}

// DeriveIV returns a copy of the first size bytes of the raw secret.
// Returns ErrSecretTooShort if the secret has fewer than size bytes.
func DeriveIV(secret []byte, size int) ([]byte, error) {
	if len(secret) < size {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrSecretTooShort, size, len(secret))
	}
	iv := make([]byte, size)
	copy(iv, secret[:size])
	return iv, nil
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
