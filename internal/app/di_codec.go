package app

import (
	"context"
	"fmt"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
	codecHTTP "github.com/allisson/textcodec/internal/codec/http"
	codecService "github.com/allisson/textcodec/internal/codec/service"
	codecUseCase "github.com/allisson/textcodec/internal/codec/usecase"
)

// KMSService returns the KMS service used to unwrap the codec secret.
func (c *Container) KMSService() codecService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = codecService.NewKMSService()
	})
	return c.kmsService
}

// Codec returns the symmetric text codec. Construction fails fast on a missing
// or unusable secret and on an unknown mode.
func (c *Container) Codec() (codecService.TextCodec, error) {
	c.codecInit.Do(func() {
		codec, err := c.initCodec()
		c.setInit("codec", err)
		c.codec = codec
	})
	if err := c.initError("codec"); err != nil {
		return nil, err
	}
	return c.codec, nil
}

// CodecUseCase returns the codec use case, decorated with metrics.
func (c *Container) CodecUseCase() (codecUseCase.CodecUseCase, error) {
	c.codecUseCaseInit.Do(func() {
		useCase, err := c.initCodecUseCase()
		c.setInit("codecUseCase", err)
		c.codecUseCase = useCase
	})
	if err := c.initError("codecUseCase"); err != nil {
		return nil, err
	}
	return c.codecUseCase, nil
}

// CodecHandler returns the HTTP handler for the codec endpoints.
func (c *Container) CodecHandler() (*codecHTTP.CodecHandler, error) {
	c.codecHandlerInit.Do(func() {
		handler, err := c.initCodecHandler()
		c.setInit("codecHandler", err)
		c.codecHandler = handler
	})
	if err := c.initError("codecHandler"); err != nil {
		return nil, err
	}
	return c.codecHandler, nil
}

func (c *Container) initCodec() (codecService.TextCodec, error) {
	mode, err := c.config.Mode()
	if err != nil {
		return nil, err
	}

	secret, err := codecService.LoadSecret(
		context.Background(),
		codecService.SecretSource{
			Value:     c.config.CodecSecret,
			KMSKeyURI: c.config.CodecSecretKMSKeyURI,
		},
		c.KMSService(),
		c.Logger(),
	)
	if err != nil {
		return nil, err
	}
	defer codecDomain.Zero(secret)

	codec, err := codecService.NewSymmetricTextCodec(secret, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to create codec: %w", err)
	}
	return codec, nil
}

func (c *Container) initCodecUseCase() (codecUseCase.CodecUseCase, error) {
	codec, err := c.Codec()
	if err != nil {
		return nil, err
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics: %w", err)
	}

	useCase := codecUseCase.NewCodecUseCase(codec, c.Logger())
	return codecUseCase.NewCodecUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initCodecHandler() (*codecHTTP.CodecHandler, error) {
	useCase, err := c.CodecUseCase()
	if err != nil {
		return nil, err
	}

	return codecHTTP.NewCodecHandler(useCase, c.config.CodecMaxPlaintextBytes, c.Logger()), nil
}
