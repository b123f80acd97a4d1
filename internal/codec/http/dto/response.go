package dto

import (
	"encoding/base64"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
)

// CiphertextResponse is returned by the encrypt endpoints.
type CiphertextResponse struct {
	Ciphertext string `json:"ciphertext"`
	Mode       string `json:"mode"`
}

// PlaintextResponse is returned by the decrypt endpoint. Plaintext is base64 encoded.
// SECURITY: must be transmitted over HTTPS in production.
type PlaintextResponse struct {
	Plaintext string `json:"plaintext"`
	Mode      string `json:"mode"`
}

// ValueResponse is returned by the decrypt-json endpoint.
type ValueResponse struct {
	Value any    `json:"value"`
	Mode  string `json:"mode"`
}

// NewCiphertextResponse builds a CiphertextResponse.
func NewCiphertextResponse(ciphertext string, mode codecDomain.Mode) CiphertextResponse {
	return CiphertextResponse{Ciphertext: ciphertext, Mode: mode.String()}
}

// NewPlaintextResponse base64 encodes plaintext into a PlaintextResponse.
// The caller keeps ownership of plaintext and may zero it afterwards.
func NewPlaintextResponse(plaintext []byte, mode codecDomain.Mode) PlaintextResponse {
	return PlaintextResponse{
		Plaintext: base64.StdEncoding.EncodeToString(plaintext),
		Mode:      mode.String(),
	}
}

// NewValueResponse builds a ValueResponse.
func NewValueResponse(value any, mode codecDomain.Mode) ValueResponse {
	return ValueResponse{Value: value, Mode: mode.String()}
}
