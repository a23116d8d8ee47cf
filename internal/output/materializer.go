// Package output writes generated projects to a filesystem.
package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/react-three/create/internal/project"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

// ErrUnsafePath is returned for file paths that would be written outside
// the target directory.
var ErrUnsafePath = errors.New("path escapes the target directory")

// Fetcher downloads the content of remote files.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Materializer writes a FileMap below a directory. Text files are written
// as is; remote files are fetched first, concurrently.
type Materializer struct {
	fs          afero.Fs
	fetcher     Fetcher
	logger      zerolog.Logger
	concurrency int
}

// NewMaterializer creates a Materializer. fetcher may be nil when the file
// maps contain no remote files.
func NewMaterializer(fs afero.Fs, fetcher Fetcher, logger zerolog.Logger) *Materializer {
	return &Materializer{
		fs:          fs,
		fetcher:     fetcher,
		logger:      logger,
		concurrency: defaultConcurrency,
	}
}

// Write writes files below dir, creating parent directories as needed.
// Nothing is written if a path is unsafe or a remote file cannot be fetched.
func (m *Materializer) Write(ctx context.Context, dir string, files project.FileMap) error {
	if err := CheckPaths(files); err != nil {
		return err
	}
	paths := files.Paths()

	contents, err := m.resolve(ctx, files)
	if err != nil {
		return err
	}

	for _, path := range paths {
		target := filepath.Join(dir, filepath.FromSlash(path))
		if err := m.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
		if err := afero.WriteFile(m.fs, target, contents[path], 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	m.logger.Debug().Str("dir", dir).Int("files", len(paths)).Msg("project written")
	return nil
}

// Resolve returns the content of every file, fetching remote files.
func Resolve(ctx context.Context, fetcher Fetcher, files project.FileMap) (map[string][]byte, error) {
	m := &Materializer{fetcher: fetcher, concurrency: defaultConcurrency, logger: zerolog.Nop()}
	return m.resolve(ctx, files)
}

func (m *Materializer) resolve(ctx context.Context, files project.FileMap) (map[string][]byte, error) {
	contents := make(map[string][]byte, len(files))
	var mu sync.Mutex

	if m.fetcher == nil {
		for _, path := range files.Paths() {
			if files[path].IsRemote() {
				return nil, fmt.Errorf("failed to fetch %s: no fetcher configured", path)
			}
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for _, path := range files.Paths() {
		file := files[path]
		if !file.IsRemote() {
			mu.Lock()
			contents[path] = []byte(file.Content)
			mu.Unlock()
			continue
		}
		g.Go(func() error {
			data, err := m.fetcher.Fetch(ctx, file.URL)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", path, err)
			}
			mu.Lock()
			contents[path] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return contents, nil
}

// CheckPaths fails with ErrUnsafePath when a path of files is empty,
// absolute or climbs above the directory the files are written to.
func CheckPaths(files project.FileMap) error {
	for _, path := range files.Paths() {
		if err := checkPath(path); err != nil {
			return err
		}
	}
	return nil
}

func checkPath(path string) error {
	if path == "" || filepath.IsAbs(path) || strings.HasPrefix(path, "/") || strings.Contains(path, "\\") {
		return fmt.Errorf("%w: %q", ErrUnsafePath, path)
	}
	cleaned := filepath.ToSlash(filepath.Clean(filepath.FromSlash(path)))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("%w: %q", ErrUnsafePath, path)
	}
	return nil
}

// EnsureEmpty fails if dir exists and contains files.
func EnsureEmpty(fs afero.Fs, dir string) error {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("directory %s already exists and is not empty", dir)
	}
	return nil
}
