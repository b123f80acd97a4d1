package service

import (
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
)

// ChaCha20Poly1305Cipher implements Cipher using ChaCha20-Poly1305. The envelope
// layout matches AESGCMCipher: nonce || ciphertext || tag. Preferred on hosts
// without AES-NI.
type ChaCha20Poly1305Cipher struct {
	aead cipher.AEAD
}

// NewChaCha20Poly1305 creates a new ChaCha20-Poly1305 cipher. The key must be
// exactly 32 bytes.
func NewChaCha20Poly1305(key []byte) (*ChaCha20Poly1305Cipher, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: failed to create ChaCha20-Poly1305 cipher: %v",
			codecDomain.ErrConfiguration,
			err,
		)
	}

	return &ChaCha20Poly1305Cipher{aead: aead}, nil
}

// Seal encrypts plaintext under a random nonce and prepends the nonce.
func (c *ChaCha20Poly1305Cipher) Seal(plaintext []byte) ([]byte, error) {
	return sealWithNonce(c.aead, plaintext)
}

// Open splits the nonce off the envelope and authenticates the remainder.
func (c *ChaCha20Poly1305Cipher) Open(envelope []byte) ([]byte, error) {
	return openWithNonce(c.aead, envelope)
}
