package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strings"
)

// SetupRunner installs dependencies and runs the dev server of a generated project
type SetupRunner interface {
	CheckInstalled(packageManager string) error
	Install(ctx context.Context, dir, packageManager string) error
	// Dev blocks until the dev server exits or ctx is done. onReady is called
	// once with the local URL the server prints.
	Dev(ctx context.Context, dir, packageManager string, onReady func(url string)) error
}

var (
	ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	devURL     = regexp.MustCompile(`:\s+(https?://\S+)`)
)

// devServerURL extracts the address from a line of dev server output.
func devServerURL(line string) (string, bool) {
	m := devURL.FindStringSubmatch(ansiEscape.ReplaceAllString(line, ""))
	if m == nil {
		return "", false
	}
	return m[1], true
}

type execSetupRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// command splits packageManager so custom commands like "bun --silent" work
func (r *execSetupRunner) command(ctx context.Context, dir, packageManager string, args ...string) (*exec.Cmd, error) {
	fields := strings.Fields(packageManager)
	if len(fields) == 0 {
		return nil, errors.New("package manager is empty")
	}
	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], args...)...)
	cmd.Dir = dir
	cmd.Stderr = r.stderr
	return cmd, nil
}

func (r *execSetupRunner) CheckInstalled(packageManager string) error {
	fields := strings.Fields(packageManager)
	if len(fields) == 0 {
		return errors.New("package manager is empty")
	}
	_, err := exec.LookPath(fields[0])
	return err
}

func (r *execSetupRunner) Install(ctx context.Context, dir, packageManager string) error {
	cmd, err := r.command(ctx, dir, packageManager, "install")
	if err != nil {
		return err
	}
	cmd.Stdout = r.stdout
	return cmd.Run()
}

func (r *execSetupRunner) Dev(ctx context.Context, dir, packageManager string, onReady func(url string)) error {
	cmd, err := r.command(ctx, dir, packageManager, "run", "dev")
	if err != nil {
		return err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to attach to dev server: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start dev server: %w", err)
	}

	ready := false
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Text()
		fmt.Fprintln(r.stdout, line)
		if url, ok := devServerURL(line); ok && !ready {
			ready = true
			onReady(url)
		}
	}

	if err := cmd.Wait(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("dev server exited: %w", err)
	}
	return nil
}
