// Package commands contains the CLI commands for the application
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/react-three/create/internal/project"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Flags struct {
	LogLevel string
}

type Controller struct {
	Flags *Flags
}

func (c *Controller) logger() zerolog.Logger {
	return log.Logger
}

func (c *Controller) Create(ctx context.Context, opts CreateOptions) error {
	return NewCreateCommand(c.logger()).Run(ctx, opts)
}

// Schema writes the JSON Schema of the options document to w.
func (c *Controller) Schema(ctx context.Context, w io.Writer) error {
	data, err := json.MarshalIndent(project.Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}
	return nil
}
