package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/textcodec/cmd/app/commands"
	"github.com/allisson/textcodec/internal/app"
	"github.com/allisson/textcodec/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "create-secret",
			Usage: "Generate a random codec secret, optionally wrapped with a KMS key",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "length",
					Aliases: []string{"l"},
					Value:   commands.DefaultSecretLength,
					Usage:   "Number of random bytes in the secret (minimum 16)",
				},
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Usage: "KMS key URI used to wrap the secret (e.g., gcpkms://..., awskms:///alias/..., base64key://...)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateSecret(
					ctx,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("length")),
					cmd.String("kms-key-uri"),
					cmd.String("format"),
				)
			},
		},
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}
