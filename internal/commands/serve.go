package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/react-three/create/internal/publish"
	"github.com/react-three/create/internal/remote"
	"github.com/react-three/create/internal/serve"
	"golang.org/x/oauth2"
)

// Default port for serve
const defaultPort = 8080

// ServeOptions contains options for the serve command
type ServeOptions struct {
	Port           int
	ClientID       string
	ClientSecret   string
	AllowedOrigins []string
	RemoteHosts    []string
}

// LoadEnv reads variables from a .env file without overriding variables
// already set. A missing file is not an error.
func LoadEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func (c *Controller) Serve(ctx context.Context, opts ServeOptions) error {
	if opts.ClientID == "" || opts.ClientSecret == "" {
		return errors.New("a GitHub OAuth client id and secret are required")
	}
	port := opts.Port
	if port <= 0 {
		port = defaultPort
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := c.logger()
	client := remote.New(logger, remote.WithoutRedirects())
	server := serve.NewServer(serve.Config{
		Exchanger:      serve.NewOAuthExchanger(opts.ClientID, opts.ClientSecret, oauth2.Endpoint{}),
		Publisher:      publish.NewPublisher(publish.NewGitHub(), publish.NewGitPusher(), client, logger),
		Fetcher:        client,
		AllowedOrigins: opts.AllowedOrigins,
		RemoteHosts:    opts.RemoteHosts,
		Logger:         logger,
	})

	if err := server.Start(ctx, port); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info().Msg("serve shutdown complete")
	return nil
}
