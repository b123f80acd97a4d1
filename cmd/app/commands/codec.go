package commands

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
	codecUseCase "github.com/allisson/textcodec/internal/codec/usecase"
	apperrors "github.com/allisson/textcodec/internal/errors"
)

// RunEncrypt encrypts input (or stdin) and prints the base64 ciphertext.
func RunEncrypt(
	ctx context.Context,
	useCase codecUseCase.CodecUseCase,
	logger *slog.Logger,
	io IOTuple,
	input string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	plaintext, err := readInput(input, io.Reader)
	if err != nil {
		return err
	}

	ciphertext, err := useCase.Encrypt(ctx, []byte(plaintext))
	if err != nil {
		return fmt.Errorf("failed to encrypt: %w", err)
	}

	logger.Debug("encrypt completed", slog.String("mode", useCase.Mode().String()))
	return outputCiphertext(io, ciphertext, useCase.Mode(), format)
}

// RunDecrypt decrypts a base64 ciphertext and prints the plaintext. The json
// format carries the plaintext base64 encoded.
func RunDecrypt(
	ctx context.Context,
	useCase codecUseCase.CodecUseCase,
	logger *slog.Logger,
	io IOTuple,
	input string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	ciphertext, err := readInput(input, io.Reader)
	if err != nil {
		return err
	}

	plaintext, err := useCase.Decrypt(ctx, ciphertext)
	if err != nil {
		return fmt.Errorf("failed to decrypt: %w", err)
	}
	defer codecDomain.Zero(plaintext)

	logger.Debug("decrypt completed", slog.String("mode", useCase.Mode().String()))

	if format == "json" {
		return writeJSON(io.Writer, map[string]interface{}{
			"plaintext": base64.StdEncoding.EncodeToString(plaintext),
			"mode":      useCase.Mode().String(),
		})
	}

	_, err = fmt.Fprintln(io.Writer, string(plaintext))
	return err
}

// RunEncryptJSON encrypts a JSON document given as input (or stdin).
func RunEncryptJSON(
	ctx context.Context,
	useCase codecUseCase.CodecUseCase,
	logger *slog.Logger,
	io IOTuple,
	input string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	document, err := readInput(input, io.Reader)
	if err != nil {
		return err
	}
	if !json.Valid([]byte(document)) {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "input is not valid JSON")
	}

	ciphertext, err := useCase.EncryptJSON(ctx, json.RawMessage(document))
	if err != nil {
		return fmt.Errorf("failed to encrypt JSON: %w", err)
	}

	logger.Debug("encrypt-json completed", slog.String("mode", useCase.Mode().String()))
	return outputCiphertext(io, ciphertext, useCase.Mode(), format)
}

// RunDecryptJSON decrypts a ciphertext holding JSON and prints the value indented.
func RunDecryptJSON(
	ctx context.Context,
	useCase codecUseCase.CodecUseCase,
	logger *slog.Logger,
	io IOTuple,
	input string,
	associative bool,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	ciphertext, err := readInput(input, io.Reader)
	if err != nil {
		return err
	}

	value, err := useCase.DecryptJSON(ctx, ciphertext, associative)
	if err != nil {
		return fmt.Errorf("failed to decrypt JSON: %w", err)
	}

	logger.Debug("decrypt-json completed",
		slog.String("mode", useCase.Mode().String()),
		slog.Bool("associative", associative),
	)

	if format == "json" {
		return writeJSON(io.Writer, map[string]interface{}{
			"value": value,
			"mode":  useCase.Mode().String(),
		})
	}
	return writeJSON(io.Writer, value)
}

func outputCiphertext(io IOTuple, ciphertext string, mode codecDomain.Mode, format string) error {
	if format == "json" {
		return writeJSON(io.Writer, map[string]interface{}{
			"ciphertext": ciphertext,
			"mode":       mode.String(),
		})
	}

	_, err := fmt.Fprintln(io.Writer, ciphertext)
	return err
}
