// Package commands contains CLI command implementations for the application.
package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/allisson/textcodec/internal/app"
	"github.com/allisson/textcodec/internal/config"
	apperrors "github.com/allisson/textcodec/internal/errors"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// PrepareCLIConfig readies cfg for a one-shot codec command and validates it.
// Metrics are turned off since nothing scrapes a process that exits after one call.
func PrepareCLIConfig(cfg *config.Config) error {
	cfg.MetricsEnabled = false
	return cfg.Validate()
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// validateFormat checks the --format flag.
func validateFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "invalid format %q (valid options: text, json)", format)
	}
}

// readInput returns the --input flag value, or all of r when the flag is empty.
// A single trailing newline from r is dropped.
func readInput(input string, r io.Reader) (string, error) {
	if input != "" {
		return input, nil
	}
	if r == nil {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "no input given")
	}

	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	s := strings.TrimSuffix(string(data), "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, nil
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}
