package service

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
)

// AESECBCipher implements Cipher with AES-256 in electronic codebook mode and
// PKCS#7 padding.
//
// Each 16-byte block is encrypted independently with the same key, so output is
// deterministic and equal plaintext blocks give equal ciphertext blocks. There is
// no integrity protection: corrupted ciphertext either fails the padding check or
// silently decrypts to garbage.
type AESECBCipher struct {
	block cipher.Block
}

// NewAESECB creates an AES-256-ECB cipher. The key must be exactly 32 bytes.
func NewAESECB(key []byte) (*AESECBCipher, error) {
	if len(key) != codecDomain.KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes", codecDomain.ErrConfiguration, codecDomain.KeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create AES cipher: %v", codecDomain.ErrConfiguration, err)
	}

	return &AESECBCipher{block: block}, nil
}

// Seal pads plaintext and encrypts it block by block.
func (a *AESECBCipher) Seal(plaintext []byte) ([]byte, error) {
	bs := a.block.BlockSize()
	padded := pkcs7Pad(plaintext, bs)

	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += bs {
		a.block.Encrypt(out[i:i+bs], padded[i:i+bs])
	}
	return out, nil
}

// Open decrypts block by block and strips the padding.
func (a *AESECBCipher) Open(ciphertext []byte) ([]byte, error) {
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
	for i := 0; i < len(ciphertext); i += bs {
		a.block.Decrypt(out[i:i+bs], ciphertext[i:i+bs])
	}
	return pkcs7Unpad(out, bs)
}
