package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
)

// SecretSource describes where the codec secret comes from.
type SecretSource struct {
	// Value is the raw secret, or the base64 KMS ciphertext when KMSKeyURI is set.
	Value string
	// KMSKeyURI, when set, names the key that wraps Value.
	KMSKeyURI string
}

// LoadSecret resolves the codec secret from src.
//
// Without a KMS key URI the value is used verbatim. With one, the value is
// base64-decoded and decrypted through the keeper, which is closed before
// returning. Returns ErrSecretNotSet if no value is configured.
func LoadSecret(
	ctx context.Context,
	src SecretSource,
	kms KMSService,
	logger *slog.Logger,
) ([]byte, error) {
	if src.Value == "" {
		return nil, codecDomain.ErrSecretNotSet
	}

	if src.KMSKeyURI == "" {
		logger.Debug("codec secret loaded from plain configuration")
		return []byte(src.Value), nil
	}

	wrapped, err := base64.StdEncoding.DecodeString(src.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: KMS-wrapped secret is not valid base64", codecDomain.ErrConfiguration)
	}

	keeper, err := kms.OpenKeeper(ctx, src.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", codecDomain.ErrConfiguration, err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	secret, err := keeper.Decrypt(ctx, wrapped)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decrypt secret with KMS: %v", codecDomain.ErrConfiguration, err)
	}
	if len(secret) == 0 {
		return nil, codecDomain.ErrEmptySecret
	}

	logger.Info("codec secret unwrapped with KMS")
	return secret, nil
}

// WrapSecret encrypts secret with the KMS key at keyURI and returns the base64
// ciphertext suitable for CODEC_SECRET.
func WrapSecret(ctx context.Context, kms KMSService, keyURI string, secret []byte) (string, error) {
	keeper, err := kms.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() { _ = keeper.Close() }()

	enc, ok := keeper.(interface {
		Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	})
	if !ok {
		return "", fmt.Errorf("KMS keeper does not support encryption")
	}

	ciphertext, err := enc.Encrypt(ctx, secret)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret with KMS: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}
