package publish

import (
	"context"
	"fmt"
	"path"
	"sort"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"
)

const (
	defaultBranch = "main"
	commitMessage = "initial commit"
)

// GitPusher commits files into a fresh in-memory repository and pushes it.
// Every push gets its own filesystem and object storage.
type GitPusher struct {
	branch string
	now    func() time.Time
}

// NewGitPusher creates a pusher committing to the main branch.
func NewGitPusher() *GitPusher {
	return &GitPusher{branch: defaultBranch, now: time.Now}
}

// Push commits files as author and pushes the branch to remoteURL. An empty
// token pushes without credentials.
func (p *GitPusher) Push(ctx context.Context, remoteURL string, author Account, token string, files map[string][]byte) error {
	fs := memfs.New()
	branch := plumbing.NewBranchReferenceName(p.branch)
	repo, err := git.InitWithOptions(memory.NewStorage(), fs, git.InitOptions{DefaultBranch: branch})
	if err != nil {
		return fmt.Errorf("failed to init repository: %w", err)
	}

	paths := make([]string, 0, len(files))
	for name := range files {
		paths = append(paths, name)
	}
	sort.Strings(paths)

	for _, name := range paths {
		if dir := path.Dir(name); dir != "." {
			if err := fs.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory for %s: %w", name, err)
			}
		}
		if err := util.WriteFile(fs, name, files[name], 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}
	for _, name := range paths {
		if _, err := wt.Add(name); err != nil {
			return fmt.Errorf("failed to stage %s: %w", name, err)
		}
	}

	_, err = wt.Commit(commitMessage, &git.CommitOptions{
		Author: &object.Signature{Name: author.DisplayName(), Email: author.CommitEmail(), When: p.now()},
	})
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	if _, err := repo.CreateRemote(&gitconfig.RemoteConfig{Name: git.DefaultRemoteName, URLs: []string{remoteURL}}); err != nil {
		return fmt.Errorf("failed to add remote: %w", err)
	}

	push := &git.PushOptions{
		RemoteName: git.DefaultRemoteName,
		RefSpecs:   []gitconfig.RefSpec{gitconfig.RefSpec(fmt.Sprintf("%s:%s", branch, branch))},
	}
	if token != "" {
		push.Auth = &http.BasicAuth{Username: author.Login, Password: token}
	}
	if err := repo.PushContext(ctx, push); err != nil {
		return fmt.Errorf("failed to push: %w", err)
	}
	return nil
}
