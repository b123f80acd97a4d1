package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
	"github.com/allisson/textcodec/internal/codec/http/dto"
	codecService "github.com/allisson/textcodec/internal/codec/service"
	codecUseCase "github.com/allisson/textcodec/internal/codec/usecase"
	"github.com/allisson/textcodec/internal/codec/usecase/mocks"
	"github.com/allisson/textcodec/internal/httputil"
)

// setupTestHandler creates a handler with a mocked use case.
func setupTestHandler(t *testing.T) (*CodecHandler, *mocks.MockCodecUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockCodecUseCase{}
	mockUseCase.On("Mode").Return(codecDomain.AES256ECB).Maybe()
	t.Cleanup(func() { mockUseCase.AssertExpectations(t) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewCodecHandler(mockUseCase, 64, logger), mockUseCase
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestCodecHandler_EncryptHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Encrypt", mock.Anything, []byte("hello world")).
			Return("+0r4FUUB9eJ1gmyQogEMwg==", nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/codec/encrypt",
			dto.EncryptRequest{Plaintext: "aGVsbG8gd29ybGQ="})

		handler.EncryptHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody[dto.CiphertextResponse](t, w)
		assert.Equal(t, "+0r4FUUB9eJ1gmyQogEMwg==", resp.Ciphertext)
		assert.Equal(t, "aes-256-ecb", resp.Mode)
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/codec/encrypt", `{"plaintext":`)

		handler.EncryptHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_InvalidBase64", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/codec/encrypt",
			dto.EncryptRequest{Plaintext: "hello world"})

		handler.EncryptHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeBody[httputil.ErrorResponse](t, w)
		assert.Equal(t, "validation_error", resp.Error)
	})

	t.Run("Error_PlaintextTooLarge", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		large := make([]byte, 65)
		c, w := createTestContext(http.MethodPost, "/v1/codec/encrypt",
			map[string][]byte{"plaintext": large})

		handler.EncryptHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_UseCaseFailure", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Encrypt", mock.Anything, []byte("hello world")).
			Return("", fmt.Errorf("cipher: %w", codecDomain.ErrCryptoBackendFailure)).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/codec/encrypt",
			dto.EncryptRequest{Plaintext: "aGVsbG8gd29ybGQ="})

		handler.EncryptHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeBody[httputil.ErrorResponse](t, w)
		assert.Equal(t, "invalid_input", resp.Error)
	})
}

func TestCodecHandler_DecryptHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Decrypt", mock.Anything, "+0r4FUUB9eJ1gmyQogEMwg==").
			Return([]byte("hello world"), nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/codec/decrypt",
			dto.DecryptRequest{Ciphertext: "+0r4FUUB9eJ1gmyQogEMwg=="})

		handler.DecryptHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody[dto.PlaintextResponse](t, w)
		assert.Equal(t, "aGVsbG8gd29ybGQ=", resp.Plaintext)
	})

	t.Run("Error_MissingCiphertext", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/codec/decrypt", map[string]string{})

		handler.DecryptHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeBody[httputil.ErrorResponse](t, w)
		assert.Equal(t, "validation_error", resp.Error)
	})

	t.Run("Error_EncodingFailure", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Decrypt", mock.Anything, "not-base64!!").
			Return(nil, fmt.Errorf("%w: illegal base64 data", codecDomain.ErrEncodingFailure)).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/codec/decrypt",
			dto.DecryptRequest{Ciphertext: "not-base64!!"})

		handler.DecryptHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeBody[httputil.ErrorResponse](t, w)
		assert.Equal(t, "invalid_input", resp.Error)
	})
}

func TestCodecHandler_EncryptJSONHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("EncryptJSON", mock.Anything, json.RawMessage(`{"a":1}`)).
			Return("nd0RYweMauFl1IJBGC/3+w==", nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/codec/encrypt-json", `{"value":{"a":1}}`)

		handler.EncryptJSONHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody[dto.CiphertextResponse](t, w)
		assert.Equal(t, "nd0RYweMauFl1IJBGC/3+w==", resp.Ciphertext)
	})

	t.Run("Error_MissingValue", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/codec/encrypt-json", `{}`)

		handler.EncryptJSONHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestCodecHandler_DecryptJSONHandler(t *testing.T) {
	t.Run("Success_Associative", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("DecryptJSON", mock.Anything, "nd0RYweMauFl1IJBGC/3+w==", true).
			Return(map[string]any{"a": json.Number("1")}, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/codec/decrypt-json",
			dto.DecryptJSONRequest{Ciphertext: "nd0RYweMauFl1IJBGC/3+w==", Associative: true})

		handler.DecryptJSONHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"value":{"a":1},"mode":"aes-256-ecb"}`, w.Body.String())
	})

	t.Run("Error_InvalidJSONPlaintext", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("DecryptJSON", mock.Anything, "+0r4FUUB9eJ1gmyQogEMwg==", false).
			Return(nil, fmt.Errorf("%w: invalid JSON plaintext", codecDomain.ErrEncodingFailure)).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/codec/decrypt-json",
			dto.DecryptJSONRequest{Ciphertext: "+0r4FUUB9eJ1gmyQogEMwg=="})

		handler.DecryptJSONHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

// TestCodecHandler_RoundTrip drives the routes end to end with a real codec.
func TestCodecHandler_RoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)

	codec, err := codecService.NewSymmetricTextCodec([]byte("test-secret-001"), codecDomain.AES256ECB)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewCodecHandler(codecUseCase.NewCodecUseCase(codec, logger), 1024, logger)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/v1/codec"))

	do := func(path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	w := do("/v1/codec/encrypt", `{"plaintext":"aGVsbG8gd29ybGQ="}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ciphertext":"+0r4FUUB9eJ1gmyQogEMwg==","mode":"aes-256-ecb"}`, w.Body.String())

	w = do("/v1/codec/decrypt", `{"ciphertext":"+0r4FUUB9eJ1gmyQogEMwg=="}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"plaintext":"aGVsbG8gd29ybGQ=","mode":"aes-256-ecb"}`, w.Body.String())

	w = do("/v1/codec/encrypt-json", `{"value": {"a": 1}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ciphertext":"nd0RYweMauFl1IJBGC/3+w==","mode":"aes-256-ecb"}`, w.Body.String())

	w = do("/v1/codec/decrypt-json", `{"ciphertext":"nd0RYweMauFl1IJBGC/3+w==","associative":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"value":{"a":1},"mode":"aes-256-ecb"}`, w.Body.String())

	w = do("/v1/codec/decrypt", `{"ciphertext":"not-base64!!"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
