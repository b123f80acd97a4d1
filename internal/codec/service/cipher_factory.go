package service

import (
	"fmt"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
)

// CipherFactoryService implements CipherFactory.
type CipherFactoryService struct{}

// NewCipherFactory creates a new CipherFactoryService.
func NewCipherFactory() *CipherFactoryService {
	return &CipherFactoryService{}
}

// CreateCipher derives the key material for mode from secret and builds the
// cipher. Derived keys are zeroed once the cipher has expanded them.
func (f *CipherFactoryService) CreateCipher(secret []byte, mode codecDomain.Mode) (Cipher, error) {
	if len(secret) == 0 {
		return nil, codecDomain.ErrEmptySecret
	}

	var (
		c   Cipher
		err error
	)

	switch mode {
	case codecDomain.AES256ECB:
		key := codecDomain.DeriveLegacyKey(secret)
		defer codecDomain.Zero(key)
		c, err = NewAESECB(key)

	case codecDomain.AES256CBC:
		iv, ivErr := codecDomain.DeriveIV(secret, mode.IVSize())
		if ivErr != nil {
			return nil, ivErr
		}
		key := codecDomain.DeriveLegacyKey(secret)
		defer codecDomain.Zero(key)
		c, err = NewAESCBC(key, iv)

	case codecDomain.AES256GCM:
		key := codecDomain.DeriveAEADKey(secret)
		defer codecDomain.Zero(key)
		c, err = NewAESGCM(key)

	case codecDomain.ChaCha20Poly1305:
		key := codecDomain.DeriveAEADKey(secret)
		defer codecDomain.Zero(key)
		c, err = NewChaCha20Poly1305(key)

	default:
		return nil, fmt.Errorf("%w: %q", codecDomain.ErrUnsupportedMode, mode)
	}

	if err != nil {
		return nil, err
	}
	return c, nil
}
