package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
	codecService "github.com/allisson/textcodec/internal/codec/service"
	apperrors "github.com/allisson/textcodec/internal/errors"
)

const (
	// DefaultSecretLength is the default number of random bytes in a generated secret.
	DefaultSecretLength = 32
	// minSecretLength keeps generated secrets usable with every mode (CBC reads a 16 byte IV).
	minSecretLength = 16
)

// RunCreateSecret generates a random codec secret and prints it as environment
// variables. The secret is length random bytes rendered as unpadded base64url
// text. With kmsKeyURI set, the secret is encrypted with the KMS key before output.
//
// Output format:
//   - CODEC_SECRET="<secret or base64 KMS ciphertext>"
//   - CODEC_SECRET_KMS_KEY_URI="<uri>" (KMS only)
//
// Security: never use base64key:// keys in production.
func RunCreateSecret(
	ctx context.Context,
	kmsService codecService.KMSService,
	logger *slog.Logger,
	w io.Writer,
	length int,
	kmsKeyURI string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if length < minSecretLength {
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "length must be at least %d, got: %d", minSecretLength, length)
	}

	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate secret: %w", err)
	}
	defer codecDomain.Zero(raw)

	secret := []byte(base64.RawURLEncoding.EncodeToString(raw))
	defer codecDomain.Zero(secret)

	value := string(secret)
	if kmsKeyURI != "" {
		wrapped, err := codecService.WrapSecret(ctx, kmsService, kmsKeyURI, secret)
		if err != nil {
			return fmt.Errorf("failed to wrap secret with KMS: %w", err)
		}
		value = wrapped
	}

	logger.Debug("codec secret generated",
		slog.Int("length", length),
		slog.Bool("kms", kmsKeyURI != ""),
	)

	if format == "json" {
		result := map[string]interface{}{"codec_secret": value}
		if kmsKeyURI != "" {
			result["codec_secret_kms_key_uri"] = kmsKeyURI
		}
		return writeJSON(w, result)
	}

	_, _ = fmt.Fprintln(w, "# Codec secret configuration")
	_, _ = fmt.Fprintln(w, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(w)
	if kmsKeyURI != "" {
		_, _ = fmt.Fprintf(w, "CODEC_SECRET_KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	}
	_, err := fmt.Fprintf(w, "CODEC_SECRET=\"%s\"\n", value)
	return err
}
