package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/textcodec/cmd/app/commands"
	"github.com/allisson/textcodec/internal/app"
	codecUseCase "github.com/allisson/textcodec/internal/codec/usecase"
	"github.com/allisson/textcodec/internal/config"
)

// codecAction validates the configuration, builds the codec and hands it to run.
func codecAction(
	run func(ctx context.Context, cmd *cli.Command, container *app.Container, useCase codecUseCase.CodecUseCase) error,
) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg := config.Load()
		if err := commands.PrepareCLIConfig(cfg); err != nil {
			return err
		}

		container := app.NewContainer(cfg)
		defer func() { _ = container.Shutdown(ctx) }()

		useCase, err := container.CodecUseCase()
		if err != nil {
			return err
		}
		return run(ctx, cmd, container, useCase)
	}
}

func inputFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   usage + " (reads stdin when omitted)",
	}
}

func getCodecCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "encrypt",
			Usage: "Encrypt text with the configured codec secret",
			Flags: []cli.Flag{inputFlag("Plaintext to encrypt"), formatFlag()},
			Action: codecAction(
				func(ctx context.Context, cmd *cli.Command, c *app.Container, uc codecUseCase.CodecUseCase) error {
					return commands.RunEncrypt(ctx, uc, c.Logger(), commands.DefaultIO(),
						cmd.String("input"), cmd.String("format"))
				},
			),
		},
		{
			Name:  "decrypt",
			Usage: "Decrypt a base64 ciphertext",
			Flags: []cli.Flag{inputFlag("Ciphertext to decrypt"), formatFlag()},
			Action: codecAction(
				func(ctx context.Context, cmd *cli.Command, c *app.Container, uc codecUseCase.CodecUseCase) error {
					return commands.RunDecrypt(ctx, uc, c.Logger(), commands.DefaultIO(),
						cmd.String("input"), cmd.String("format"))
				},
			),
		},
		{
			Name:  "encrypt-json",
			Usage: "Encrypt a JSON document",
			Flags: []cli.Flag{inputFlag("JSON document to encrypt"), formatFlag()},
			Action: codecAction(
				func(ctx context.Context, cmd *cli.Command, c *app.Container, uc codecUseCase.CodecUseCase) error {
					return commands.RunEncryptJSON(ctx, uc, c.Logger(), commands.DefaultIO(),
						cmd.String("input"), cmd.String("format"))
				},
			),
		},
		{
			Name:  "decrypt-json",
			Usage: "Decrypt a ciphertext holding a JSON document",
			Flags: []cli.Flag{
				inputFlag("Ciphertext to decrypt"),
				&cli.BoolFlag{
					Name:    "associative",
					Aliases: []string{"a"},
					Usage:   "Keep numbers exact instead of converting them to floats",
				},
				formatFlag(),
			},
			Action: codecAction(
				func(ctx context.Context, cmd *cli.Command, c *app.Container, uc codecUseCase.CodecUseCase) error {
					return commands.RunDecryptJSON(ctx, uc, c.Logger(), commands.DefaultIO(),
						cmd.String("input"), cmd.Bool("associative"), cmd.String("format"))
				},
			),
		},
	}
}
