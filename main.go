package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/react-three/create/internal/commands"
	"github.com/react-three/create/internal/integrations"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func integrationFlags() []cli.Flag {
	flags := make([]cli.Flag, 0, len(integrations.Names()))
	for _, in := range integrations.Catalog() {
		flags = append(flags, &cli.BoolFlag{
			Name:  in.Name,
			Usage: in.Description,
		})
	}
	return flags
}

func createOptions(c *cli.Command) commands.CreateOptions {
	opts := commands.CreateOptions{
		Name:           c.Args().First(),
		Dir:            c.String("dir"),
		URL:            c.String("url"),
		ConfigPath:     c.String("config"),
		JavaScript:     c.Bool("js"),
		TypeScript:     c.Bool("ts"),
		Integrations:   map[string]bool{},
		PackageManager: c.String("package-manager"),
		SkipSetup:      c.Bool("skip-setup"),
		Yes:            c.Bool("yes"),
		Watch:          c.Bool("watch"),
	}
	for _, name := range integrations.Names() {
		if c.IsSet(name) {
			opts.Integrations[name] = c.Bool(name)
		}
	}
	return opts
}

func main() {
	ctrl := &commands.Controller{
		Flags: &commands.Flags{},
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := commands.LoadEnv(".env"); err != nil {
		log.Fatal().Err(err).Msg("failed to load environment")
	}

	app := &cli.Command{
		Name:    "create-react-three",
		Usage:   `Official CLI for creating React Three Fiber projects`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "warn",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			ctrl.Flags.LogLevel = level.String()
			log.Logger = log.Level(level)

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create a new React Three Fiber project",
				ArgsUsage: "[name]",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "url", Usage: "URL to load the create options from"},
					&cli.StringFlag{Name: "config", Usage: "path to a react-three.json options file"},
					&cli.StringFlag{Name: "dir", Usage: "directory to create the project in (defaults to the name)"},
					&cli.BoolFlag{Name: "js", Usage: "use javascript"},
					&cli.BoolFlag{Name: "ts", Usage: "use typescript (default)"},
					&cli.StringFlag{Name: "package-manager", Usage: "package manager to use (e.g. npm, yarn, pnpm)"},
					&cli.BoolFlag{Name: "skip-setup", Usage: "skip installing dependencies and starting the dev server"},
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "skip prompts and use default values"},
					&cli.BoolFlag{Name: "watch", Usage: "regenerate the project when the --config file changes"},
				}, integrationFlags()...),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Create(ctx, createOptions(c))
				},
			},
			{
				Name:  "serve",
				Usage: "Start the generator web backend",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "port", Usage: "port to listen on", Value: 8080, Sources: cli.EnvVars("PORT")},
					&cli.StringFlag{Name: "client-id", Usage: "GitHub OAuth App client id", Sources: cli.EnvVars("CLIENT_ID")},
					&cli.StringFlag{Name: "client-secret", Usage: "GitHub OAuth App client secret", Sources: cli.EnvVars("CLIENT_SECRET")},
					&cli.StringSliceFlag{Name: "allowed-origin", Usage: "origin allowed to call the API (default any)", Sources: cli.EnvVars("ALLOWED_ORIGINS")},
					&cli.StringSliceFlag{Name: "remote-host", Usage: "https host remote files in requests may be fetched from (default none)", Sources: cli.EnvVars("REMOTE_HOSTS")},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Serve(ctx, commands.ServeOptions{
						Port:           int(c.Int("port")),
						ClientID:       c.String("client-id"),
						ClientSecret:   c.String("client-secret"),
						AllowedOrigins: c.StringSlice("allowed-origin"),
					})
				},
			},
			{
				Name:  "schema",
				Usage: "Print the JSON Schema of the create options",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Schema(ctx, os.Stdout)
				},
			},
		},
	}

	ctx := context.Background()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run create-react-three")
	}
}
