package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/react-three/create/internal/config"
	"github.com/react-three/create/internal/engine"
	"github.com/react-three/create/internal/integrations"
	"github.com/react-three/create/internal/output"
	"github.com/react-three/create/internal/project"
	"github.com/react-three/create/internal/remote"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

const watchDebounce = 200 * time.Millisecond

// CreateOptions are the flags of the create command
type CreateOptions struct {
	Name       string
	Dir        string
	URL        string
	ConfigPath string

	JavaScript bool
	TypeScript bool
	// Integrations holds the integration flags that were set explicitly
	Integrations map[string]bool

	PackageManager string
	SkipSetup      bool
	Yes            bool
	Watch          bool
}

// interactive reports whether nothing but the name was given on the command line
func (o CreateOptions) interactive() bool {
	return !o.Yes && o.URL == "" && o.ConfigPath == "" &&
		!o.JavaScript && !o.TypeScript && len(o.Integrations) == 0 &&
		o.PackageManager == "" && !o.SkipSetup && !o.Watch
}

// OptionsLoader fetches an options document from a URL
type OptionsLoader interface {
	LoadOptions(ctx context.Context, url string) (*project.Options, error)
}

type CreateCommand struct {
	loader    OptionsLoader
	fetcher   output.Fetcher
	fs        afero.Fs
	setup     SetupRunner
	generator *engine.Engine
	out       io.Writer
	logger    zerolog.Logger
	// For testing: if set, skip prompting
	testAnswers *promptAnswers
}

func NewCreateCommand(logger zerolog.Logger) *CreateCommand {
	client := remote.New(logger)
	return &CreateCommand{
		loader:    client,
		fetcher:   client,
		fs:        afero.NewOsFs(),
		setup:     &execSetupRunner{stdout: os.Stdout, stderr: os.Stderr},
		generator: engine.New(logger),
		out:       os.Stdout,
		logger:    logger,
	}
}

func (cc *CreateCommand) Run(ctx context.Context, opts CreateOptions) error {
	return cc.RunWithOptions(ctx, opts)
}

func (cc *CreateCommand) RunWithOptions(ctx context.Context, opts CreateOptions, teaOpts ...tea.ProgramOption) error {
	if opts.Watch && opts.ConfigPath == "" {
		return errors.New("--watch requires --config")
	}

	genOpts, err := cc.resolveOptions(ctx, opts, teaOpts...)
	if err != nil {
		return err
	}
	if err := project.Validate(genOpts); err != nil {
		return err
	}

	dir := opts.Dir
	if dir == "" {
		dir = genOpts.ProjectName()
	}
	if err := output.EnsureEmpty(cc.fs, dir); err != nil {
		return err
	}

	suppressed := integrations.Suppressed(genOpts)
	for _, name := range sortedKeys(suppressed) {
		printWarning(cc.out, suppressed[name])
	}
	if err := cc.generate(ctx, dir, genOpts); err != nil {
		return err
	}
	printSuccess(cc.out, fmt.Sprintf("Created %s in %s", genOpts.ProjectName(), dir))

	pm := genOpts.PackageManagerOrDefault()
	if genOpts.SkipSetup {
		printNextSteps(cc.out, dir, pm)
		if opts.Watch {
			return cc.watch(ctx, opts, dir)
		}
		return nil
	}

	if err := cc.setup.CheckInstalled(pm); err != nil {
		return fmt.Errorf("%s is not installed: %w", pm, err)
	}
	if err := cc.setup.Install(ctx, dir, pm); err != nil {
		return fmt.Errorf("failed to install dependencies: %w", err)
	}
	printSuccess(cc.out, "Dependencies installed")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return cc.setup.Dev(ctx, dir, pm, func(url string) {
			printSuccess(cc.out, "Development server running at "+url)
		})
	})
	if opts.Watch {
		g.Go(func() error { return cc.watch(ctx, opts, dir) })
	}
	return g.Wait()
}

// resolveOptions builds the generation options from the selected source,
// then lets explicit flags override them. Without a source or prompts the
// nearest react-three.json is used when there is one.
func (cc *CreateCommand) resolveOptions(ctx context.Context, opts CreateOptions, teaOpts ...tea.ProgramOption) (*project.Options, error) {
	base := &project.Options{}
	var err error
	switch {
	case opts.URL != "":
		base, err = cc.loader.LoadOptions(ctx, opts.URL)
		if remote.IsNotFound(err) {
			return nil, fmt.Errorf("no create options found at %s", opts.URL)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load options from %s: %w", opts.URL, err)
		}
		cc.logger.Info().Str("url", opts.URL).Msg("create options loaded")
	case opts.ConfigPath != "":
		base, err = config.LoadOptionsFromPath(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
	case opts.interactive():
		base, err = cc.promptOptions(opts.Name, teaOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to get create options: %w", err)
		}
	default:
		found, root, findErr := config.LoadOptions()
		switch {
		case findErr == nil:
			base = found
			cc.logger.Info().Str("dir", root).Msg("create options found")
		case !errors.Is(findErr, config.ErrNotFound):
			return nil, findErr
		}
	}

	overrides := project.Options{
		Name:           opts.Name,
		PackageManager: opts.PackageManager,
		SkipSetup:      opts.SkipSetup,
	}
	switch {
	case opts.JavaScript:
		overrides.Language = project.LanguageJavaScript
	case opts.TypeScript:
		overrides.Language = project.LanguageTypeScript
	}

	merged, err := config.Overlay(base, overrides)
	if err != nil {
		return nil, err
	}
	// integration flags replace the whole slot, options included
	for name, on := range opts.Integrations {
		if err := integrations.SetEnabled(merged, name, on); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

func (cc *CreateCommand) generate(ctx context.Context, dir string, opts *project.Options) error {
	files, err := cc.generator.Generate(*opts)
	if err != nil {
		return fmt.Errorf("failed to generate project: %w", err)
	}
	return output.NewMaterializer(cc.fs, cc.fetcher, cc.logger).Write(ctx, dir, files)
}

// watch regenerates the project into dir whenever the options file changes.
func (cc *CreateCommand) watch(ctx context.Context, opts CreateOptions, dir string) error {
	configPath, err := filepath.Abs(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", opts.ConfigPath, err)
	}

	regenerate := func(paths []string) {
		cc.logger.Debug().Strs("paths", paths).Msg("options changed")
		genOpts, err := cc.resolveOptions(ctx, opts)
		if err == nil {
			err = project.Validate(genOpts)
		}
		if err == nil {
			err = cc.generate(ctx, dir, genOpts)
		}
		if err != nil {
			cc.logger.Error().Err(err).Msg("failed to regenerate project")
			printWarning(cc.out, err.Error())
			return
		}
		printSuccess(cc.out, "Regenerated "+dir)
	}

	exclude := []string{"node_modules", ".git", filepath.Base(dir)}
	w, err := output.NewWatcher([]string{filepath.Base(configPath)}, exclude, watchDebounce, cc.logger, regenerate)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.AddDirectory(filepath.Dir(configPath)); err != nil {
		return err
	}
	printSuccess(cc.out, "Watching "+opts.ConfigPath+" for changes")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
