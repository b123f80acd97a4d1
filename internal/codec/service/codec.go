package service

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
)

// strictBase64 rejects input with non-zero trailing padding bits so every
// ciphertext has exactly one accepted encoding.
var strictBase64 = base64.StdEncoding.Strict()

// SymmetricTextCodec encrypts short text or JSON values with a cipher whose key
// material is derived once from a shared secret.
//
// The derived key and IV are computed at construction and never change, so one
// instance can be shared across goroutines. Per-call failures are returned as
// errors wrapping ErrEncodingFailure or ErrCryptoBackendFailure; the codec never
// panics on caller input.
type SymmetricTextCodec struct {
	mode   codecDomain.Mode
	cipher Cipher
}

// NewSymmetricTextCodec builds a codec for mode keyed by secret.
//
// Returns an error wrapping ErrConfiguration if the mode is unsupported, the
// secret is empty, or the secret is shorter than the IV the mode requires.
func NewSymmetricTextCodec(secret []byte, mode codecDomain.Mode) (*SymmetricTextCodec, error) {
	return NewSymmetricTextCodecWithFactory(secret, mode, NewCipherFactory())
}

// NewSymmetricTextCodecWithFactory is NewSymmetricTextCodec with an explicit
// cipher factory.
func NewSymmetricTextCodecWithFactory(
	secret []byte,
	mode codecDomain.Mode,
	factory CipherFactory,
) (*SymmetricTextCodec, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", codecDomain.ErrUnsupportedMode, mode)
	}

	c, err := factory.CreateCipher(secret, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s cipher: %w", mode, err)
	}

	return &SymmetricTextCodec{mode: mode, cipher: c}, nil
}

// Mode returns the cipher mode of the codec.
func (s *SymmetricTextCodec) Mode() codecDomain.Mode {
	return s.mode
}

// Encrypt seals plaintext and returns the standard base64 encoding of the result.
func (s *SymmetricTextCodec) Encrypt(plaintext []byte) (string, error) {
	sealed, err := s.cipher.Seal(plaintext)
	if err != nil {
		return "", err
	}
	return strictBase64.EncodeToString(sealed), nil
}

// Decrypt decodes ciphertext as strict standard base64 and opens it.
func (s *SymmetricTextCodec) Decrypt(ciphertext string) ([]byte, error) {
	raw, err := strictBase64.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 ciphertext", codecDomain.ErrEncodingFailure)
	}
	return s.cipher.Open(raw)
}

// EncryptJSON marshals value to JSON and encrypts it.
func (s *SymmetricTextCodec) EncryptJSON(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("%w: %v", codecDomain.ErrEncodingFailure, err)
	}
	defer codecDomain.Zero(data)

	return s.Encrypt(data)
}

// DecryptJSON decrypts ciphertext and parses the plaintext as a single JSON value.
//
// Objects decode to map[string]any and arrays to []any. With associative set,
// numbers decode to json.Number; otherwise they decode to float64.
func (s *SymmetricTextCodec) DecryptJSON(ciphertext string, associative bool) (any, error) {
	plaintext, err := s.Decrypt(ciphertext)
	if err != nil {
		return nil, err
	}
	defer codecDomain.Zero(plaintext)

	dec := json.NewDecoder(bytes.NewReader(plaintext))
	if associative {
		dec.UseNumber()
	}

	var value any
	if err := decodeSingle(dec, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// DecryptJSONInto decrypts ciphertext and unmarshals the plaintext into v.
func (s *SymmetricTextCodec) DecryptJSONInto(ciphertext string, v any) error {
	plaintext, err := s.Decrypt(ciphertext)
	if err != nil {
		return err
	}
	defer codecDomain.Zero(plaintext)

	return decodeSingle(json.NewDecoder(bytes.NewReader(plaintext)), v)
}

// decodeSingle decodes exactly one JSON value and rejects trailing data.
func decodeSingle(dec *json.Decoder, v any) error {
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON plaintext: %v", codecDomain.ErrEncodingFailure, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data after JSON value", codecDomain.ErrEncodingFailure)
	}
	return nil
}
