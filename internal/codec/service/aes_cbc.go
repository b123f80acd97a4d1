package service

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
)

// AESCBCCipher implements Cipher with AES-256-CBC, PKCS#7 padding and an IV that
// is fixed at construction. Output is deterministic and unauthenticated.
type AESCBCCipher struct {
	block cipher.Block
	iv    []byte
}

// NewAESCBC creates an AES-256-CBC cipher with a fixed 16-byte IV.
func NewAESCBC(key, iv []byte) (*AESCBCCipher, error) {
	if len(key) != codecDomain.KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes", codecDomain.ErrConfiguration, codecDomain.KeySize)
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("%w: iv must be %d bytes", codecDomain.ErrConfiguration, aes.BlockSize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create AES cipher: %v", codecDomain.ErrConfiguration, err)
	}

	fixedIV := make([]byte, len(iv))
	copy(fixedIV, iv)

	return &AESCBCCipher{block: block, iv: fixedIV}, nil
}

// Seal pads and encrypts plaintext. The block mode is created per call since
// cipher.BlockMode carries chaining state.
func (a *AESCBCCipher) Seal(plaintext []byte) ([]byte, error) {
	padded := pkcs7Pad(plaintext, a.block.BlockSize())
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(a.block, a.iv).CryptBlocks(out, padded)
	return out, nil
}

// Open decrypts ciphertext and strips the padding.
func (a *AESCBCCipher) Open(ciphertext []byte) ([]byte, error) {
	bs := a.block.BlockSize()
	if len(ciphertext) == 0 || len(ciphertext)%bs != 0 {
		return nil, fmt.Errorf(
			"%w: ciphertext length %d is not a multiple of %d",
			codecDomain.ErrCryptoBackendFailure,
			len(ciphertext),
			bs,
		)
	}

	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(a.block, a.iv).CryptBlocks(out, ciphertext)
	return pkcs7Unpad(out, bs)
}
