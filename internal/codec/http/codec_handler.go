// Package http provides HTTP handlers for the codec operations.
package http

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
	"github.com/allisson/textcodec/internal/codec/http/dto"
	codecUseCase "github.com/allisson/textcodec/internal/codec/usecase"
	"github.com/allisson/textcodec/internal/httputil"
	customValidation "github.com/allisson/textcodec/internal/validation"
)

// CodecHandler handles HTTP requests for the codec operations.
type CodecHandler struct {
	codecUseCase      codecUseCase.CodecUseCase
	maxPlaintextBytes int
	logger            *slog.Logger
}

// NewCodecHandler creates a codec handler. maxPlaintextBytes bounds the size of
// values accepted for encryption.
func NewCodecHandler(
	codecUseCase codecUseCase.CodecUseCase,
	maxPlaintextBytes int,
	logger *slog.Logger,
) *CodecHandler {
	return &CodecHandler{
		codecUseCase:      codecUseCase,
		maxPlaintextBytes: maxPlaintextBytes,
		logger:            logger,
	}
}

// EncryptHandler encrypts base64-encoded bytes.
// POST /v1/codec/encrypt - Returns 200 OK with the ciphertext.
func (h *CodecHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(h.maxPlaintextBytes); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Already validated as strict base64
	plaintext, _ := base64.StdEncoding.DecodeString(req.Plaintext)
	defer codecDomain.Zero(plaintext)

	ciphertext, err := h.codecUseCase.Encrypt(c.Request.Context(), plaintext)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewCiphertextResponse(ciphertext, h.codecUseCase.Mode()))
}

// DecryptHandler decrypts a ciphertext.
// POST /v1/codec/decrypt - Returns 200 OK with the base64-encoded plaintext.
func (h *CodecHandler) DecryptHandler(c *gin.Context) {
	var req dto.DecryptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(h.maxPlaintextBytes); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	plaintext, err := h.codecUseCase.Decrypt(c.Request.Context(), req.Ciphertext)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer codecDomain.Zero(plaintext)

	c.JSON(http.StatusOK, dto.NewPlaintextResponse(plaintext, h.codecUseCase.Mode()))
}

// EncryptJSONHandler encrypts an arbitrary JSON value.
// POST /v1/codec/encrypt-json - Returns 200 OK with the ciphertext.
func (h *CodecHandler) EncryptJSONHandler(c *gin.Context) {
	var req dto.EncryptJSONRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(h.maxPlaintextBytes); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ciphertext, err := h.codecUseCase.EncryptJSON(c.Request.Context(), req.Value)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewCiphertextResponse(ciphertext, h.codecUseCase.Mode()))
}

// DecryptJSONHandler decrypts a ciphertext holding a JSON value.
// POST /v1/codec/decrypt-json - Returns 200 OK with the decoded value.
func (h *CodecHandler) DecryptJSONHandler(c *gin.Context) {
	var req dto.DecryptJSONRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(h.maxPlaintextBytes); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	value, err := h.codecUseCase.DecryptJSON(c.Request.Context(), req.Ciphertext, req.Associative)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewValueResponse(value, h.codecUseCase.Mode()))
}

// RegisterRoutes mounts the codec endpoints on group.
func (h *CodecHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/encrypt", h.EncryptHandler)
	group.POST("/decrypt", h.DecryptHandler)
	group.POST("/encrypt-json", h.EncryptJSONHandler)
	group.POST("/decrypt-json", h.DecryptJSONHandler)
}
