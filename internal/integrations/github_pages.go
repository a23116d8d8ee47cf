package integrations

import (
	"fmt"

	"github.com/react-three/create/internal/project"
)

// GithubPagesWorkflowPath is where the deployment workflow is written.
const GithubPagesWorkflowPath = ".github/workflows/gh-pages.yml"

// GithubPages adds a workflow deploying the build to GitHub Pages. The
// workflow installs with npm, so it is skipped for other package managers.
func GithubPages(g project.Generator, slot project.Slot[project.GithubPagesOptions]) error {
	if !slot.Active(true) {
		return nil
	}
	opts := g.Options()
	if opts.PackageManagerOrDefault() != project.DefaultPackageManager {
		return nil
	}

	workflow, err := render("gh-pages.yml.tmpl", map[string]any{
		"Branch":      "main",
		"NodeVersion": 20,
	})
	if err != nil {
		return err
	}
	g.AddFile(GithubPagesWorkflowPath, project.TextFile(workflow))

	g.Inject(project.LocationReadmeStart, "A github pages deployment action is configured.")
	if opts.GithubUserName != "" && opts.GithubRepoName != "" {
		address := fmt.Sprintf("%s.github.io/%s", opts.GithubUserName, opts.GithubRepoName)
		g.Inject(project.LocationReadmeStart,
			fmt.Sprintf("Your app will be published at [%s](https://%s) once the github action is finished.", address, address))
	}
	return nil
}
