// Package mocks provides mock implementations of the codec use case for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
)

// MockCodecUseCase is a mock implementation of CodecUseCase for testing.
type MockCodecUseCase struct {
	mock.Mock
}

// Mode mocks the Mode method of CodecUseCase.
func (m *MockCodecUseCase) Mode() codecDomain.Mode {
	args := m.Called()
	return args.Get(0).(codecDomain.Mode)
}

// Encrypt mocks the Encrypt method of CodecUseCase.
func (m *MockCodecUseCase) Encrypt(ctx context.Context, plaintext []byte) (string, error) {
	args := m.Called(ctx, plaintext)
	return args.String(0), args.Error(1)
}

// Decrypt mocks the Decrypt method of CodecUseCase.
func (m *MockCodecUseCase) Decrypt(ctx context.Context, ciphertext string) ([]byte, error) {
	args := m.Called(ctx, ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// EncryptJSON mocks the EncryptJSON method of CodecUseCase.
func (m *MockCodecUseCase) EncryptJSON(ctx context.Context, value any) (string, error) {
	args := m.Called(ctx, value)
	return args.String(0), args.Error(1)
}

// DecryptJSON mocks the DecryptJSON method of CodecUseCase.
func (m *MockCodecUseCase) DecryptJSON(ctx context.Context, ciphertext string, associative bool) (any, error) {
	args := m.Called(ctx, ciphertext, associative)
	return args.Get(0), args.Error(1)
}
