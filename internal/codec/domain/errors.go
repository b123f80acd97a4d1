package domain

import (
	"github.com/allisson/textcodec/internal/errors"
)

// Codec error taxonomy.
//
// Construction errors wrap errors.ErrMisconfigured and are fatal. Per-call errors
// wrap errors.ErrInvalidInput and are returned to the caller instead of panicking;
// every Encrypt/Decrypt result must be checked.
var (
	// ErrConfiguration is the root of every construction-time failure.
	ErrConfiguration = errors.Wrap(errors.ErrMisconfigured, "codec configuration error")

	// ErrUnsupportedMode indicates the requested cipher mode is unknown.
	ErrUnsupportedMode = errors.Wrap(ErrConfiguration, "unsupported cipher mode")

	// ErrEmptySecret indicates the codec was constructed without a secret.
	ErrEmptySecret = errors.Wrap(ErrConfiguration, "secret must not be empty")

	// ErrSecretTooShort indicates the secret cannot supply the IV the mode needs.
	ErrSecretTooShort = errors.Wrap(ErrConfiguration, "secret shorter than cipher IV length")

	// ErrSecretNotSet indicates no secret was provided through configuration.
	ErrSecretNotSet = errors.Wrap(ErrConfiguration, "CODEC_SECRET is not set")

	// ErrEncodingFailure indicates the input was not valid base64, or a value
	// could not be serialized to or parsed from JSON.
	ErrEncodingFailure = errors.Wrap(errors.ErrInvalidInput, "encoding failure")

	// ErrCryptoBackendFailure indicates the cipher rejected the input: wrong
	// length, bad padding or an authentication tag mismatch. The cause is not
	// disclosed.
	ErrCryptoBackendFailure = errors.Wrap(errors.ErrInvalidInput, "crypto backend failure")
)
