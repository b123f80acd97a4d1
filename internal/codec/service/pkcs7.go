package service

import (
	"bytes"
	"fmt"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
)

// pkcs7Pad appends 1..blockSize bytes, each holding the pad length.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	copy(padded[len(data):], bytes.Repeat([]byte{byte(n)}, n))
	return padded
}

// pkcs7Unpad strips PKCS#7 padding, rejecting anything malformed.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: invalid padded length", codecDomain.ErrCryptoBackendFailure)
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("%w: bad padding", codecDomain.ErrCryptoBackendFailure)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: bad padding", codecDomain.ErrCryptoBackendFailure)
		}
	}

	return data[:len(data)-n], nil
}
