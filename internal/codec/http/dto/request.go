// Package dto provides data transfer objects for the codec HTTP endpoints.
package dto

import (
	"encoding/base64"
	"encoding/json"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/textcodec/internal/validation"
)

// ciphertextOverhead covers what a mode adds to the plaintext: a full padding
// block for the legacy modes, nonce and tag for the authenticated ones.
const ciphertextOverhead = 64

// requestEnvelopeBytes is the allowance for JSON keys and whitespace around
// the largest field of a request.
const requestEnvelopeBytes = 1024

// MaxCiphertextLength returns the longest base64 ciphertext any mode produces
// for a plaintext of maxPlaintextBytes.
func MaxCiphertextLength(maxPlaintextBytes int) int {
	return base64.StdEncoding.EncodedLen(maxPlaintextBytes + ciphertextOverhead)
}

// MaxRequestBodyBytes bounds the body of every codec request.
func MaxRequestBodyBytes(maxPlaintextBytes int) int64 {
	return int64(MaxCiphertextLength(maxPlaintextBytes) + requestEnvelopeBytes)
}

// EncryptRequest carries the bytes to encrypt, base64 encoded so binary data
// survives JSON. An empty plaintext is valid.
type EncryptRequest struct {
	Plaintext string `json:"plaintext"`
}

// Validate checks the plaintext encoding and size.
func (r *EncryptRequest) Validate(maxPlaintextBytes int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Plaintext,
			customValidation.Base64,
			customValidation.MaxDecodedBytes(maxPlaintextBytes),
		),
	)
}

// DecryptRequest carries a ciphertext produced by the encrypt endpoint.
type DecryptRequest struct {
	Ciphertext string `json:"ciphertext"`
}

// Validate checks that a ciphertext was supplied and is no longer than any
// ciphertext of maxPlaintextBytes. Its encoding is checked by the codec so
// failures carry the codec error.
func (r *DecryptRequest) Validate(maxPlaintextBytes int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Ciphertext,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, MaxCiphertextLength(maxPlaintextBytes)),
		),
	)
}

// EncryptJSONRequest carries an arbitrary JSON value to encrypt.
type EncryptJSONRequest struct {
	Value json.RawMessage `json:"value"`
}

// Validate checks that a value was supplied and fits the size limit.
func (r *EncryptJSONRequest) Validate(maxPlaintextBytes int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			validation.Required,
			validation.Length(1, maxPlaintextBytes),
		),
	)
}

// DecryptJSONRequest carries a ciphertext produced by the encrypt-json endpoint.
// Associative keeps numbers exact (json.Number) in the decoded value.
type DecryptJSONRequest struct {
	Ciphertext  string `json:"ciphertext"`
	Associative bool   `json:"associative"`
}

// Validate checks that a ciphertext was supplied and fits the size limit.
func (r *DecryptJSONRequest) Validate(maxPlaintextBytes int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Ciphertext,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, MaxCiphertextLength(maxPlaintextBytes)),
		),
	)
}
