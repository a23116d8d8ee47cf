package commands

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/react-three/create/internal/integrations"
	"github.com/react-three/create/internal/project"
)

const customPackageManager = "custom"

// promptIntegrations are offered in the form, all preselected. The example
// scene and the Pages workflow stay on unless turned off by flag.
var promptIntegrations = []struct{ title, name string }{
	{"Drei", integrations.NameDrei},
	{"Handle", integrations.NameHandle},
	{"Leva", integrations.NameLeva},
	{"Postprocessing", integrations.NamePostprocessing},
	{"Rapier", integrations.NameRapier},
	{"XR", integrations.NameXR},
	{"UIKit", integrations.NameUikit},
	{"Offscreen", integrations.NameOffscreen},
	{"Zustand", integrations.NameZustand},
	{"Koota", integrations.NameKoota},
	{"Triplex", integrations.NameTriplex},
}

type promptAnswers struct {
	Name                 string
	PackageManager       string
	CustomPackageManager string
	SkipSetup            bool
	Language             string
	Integrations         []string
}

// options converts the answers into generation options. Integrations left
// unselected stay absent rather than disabled.
func (a *promptAnswers) options() (*project.Options, error) {
	opts := &project.Options{
		Name:           a.Name,
		Language:       project.Language(a.Language),
		PackageManager: a.PackageManager,
		SkipSetup:      a.SkipSetup,
	}
	if a.PackageManager == customPackageManager {
		opts.PackageManager = a.CustomPackageManager
	}
	for _, in := range promptIntegrations {
		if !slices.Contains(a.Integrations, in.name) {
			continue
		}
		if err := integrations.SetEnabled(opts, in.name, true); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

func (cc *CreateCommand) promptOptions(name string, opts ...tea.ProgramOption) (*project.Options, error) {
	if cc.testAnswers != nil {
		return cc.testAnswers.options()
	}

	answers := &promptAnswers{
		Name:           name,
		PackageManager: project.DefaultPackageManager,
		Language:       string(project.LanguageTypeScript),
	}
	form := cc.createForm(answers, name == "")

	if len(opts) > 0 {
		// For testing: run with provided options
		program := tea.NewProgram(form, opts...)
		if _, err := program.Run(); err != nil {
			return nil, err
		}
	} else {
		if err := form.Run(); err != nil {
			return nil, err
		}
	}

	return answers.options()
}

func (cc *CreateCommand) createForm(a *promptAnswers, askName bool) *huh.Form {
	if askName {
		a.Name = project.DefaultName
	}

	integrationOptions := make([]huh.Option[string], len(promptIntegrations))
	for i, in := range promptIntegrations {
		integrationOptions[i] = huh.NewOption(in.title, in.name).Selected(true)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What is your project named?").
				Value(&a.Name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("project name is required")
					}
					if _, err := cc.fs.Stat(s); err == nil {
						return fmt.Errorf("directory %s already exists", s)
					}
					return nil
				}),
		).WithHideFunc(func() bool { return !askName }),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which package manager would you like to use?").
				Options(
					huh.NewOption("npm", "npm"),
					huh.NewOption("yarn", "yarn"),
					huh.NewOption("pnpm", "pnpm"),
					huh.NewOption("Other (custom)", customPackageManager),
				).
				Value(&a.PackageManager),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Enter your package manager command:").
				Value(&a.CustomPackageManager).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("package manager command is required")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return a.PackageManager != customPackageManager }),

		huh.NewGroup(
			huh.NewConfirm().
				Title("Skip automatic setup?").
				Description("Skips installing dependencies and starting the dev server").
				Value(&a.SkipSetup),

			huh.NewSelect[string]().
				Title("Which language would you like to use?").
				Options(
					huh.NewOption("TypeScript", string(project.LanguageTypeScript)),
					huh.NewOption("JavaScript", string(project.LanguageJavaScript)),
				).
				Value(&a.Language),

			huh.NewMultiSelect[string]().
				Title("Which integrations would you like to include?").
				Options(integrationOptions...).
				Value(&a.Integrations),
		),
	)
}
