package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
)

// AESGCMCipher implements Cipher using AES-256-GCM.
//
// Every Seal draws a fresh 12-byte nonce from crypto/rand and returns
// nonce || ciphertext || tag, so the output is self-contained and encrypting the
// same plaintext twice yields different envelopes. Open verifies the 16-byte tag
// before returning any plaintext.
//
// Thread safety:
//
//	The cipher instance is stateless and safe for concurrent use from multiple
//	goroutines.
//
// Example usage:
//
//	c, err := NewAESGCM(codecDomain.DeriveAEADKey(secret))
//	if err != nil {
//	    return err
//	}
//	envelope, err := c.Seal([]byte("hello"))
//	plaintext, err := c.Open(envelope)
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher. The key must be exactly 32 bytes.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != codecDomain.KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes", codecDomain.ErrConfiguration, codecDomain.KeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create AES cipher: %v", codecDomain.ErrConfiguration, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create GCM: %v", codecDomain.ErrConfiguration, err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Seal encrypts plaintext under a random nonce and prepends the nonce.
func (a *AESGCMCipher) Seal(plaintext []byte) ([]byte, error) {
	return sealWithNonce(a.aead, plaintext)
}

// Open splits the nonce off the envelope and authenticates the remainder.
func (a *AESGCMCipher) Open(envelope []byte) ([]byte, error) {
	return openWithNonce(a.aead, envelope)
}

func sealWithNonce(aead cipher.AEAD, plaintext []byte) ([]byte, error) {
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%w: failed to generate nonce: %v", codecDomain.ErrCryptoBackendFailure, err)
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

func openWithNonce(aead cipher.AEAD, envelope []byte) ([]byte, error) {
	if len(envelope) < aead.NonceSize()+aead.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext too short", codecDomain.ErrCryptoBackendFailure)
	}

	nonce, sealed := envelope[:aead.NonceSize()], envelope[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: authentication failed", codecDomain.ErrCryptoBackendFailure)
	}
	return plaintext, nil
}
