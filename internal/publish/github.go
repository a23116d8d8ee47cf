package publish

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

const repositoryDescription = "react-three app created using react-three.org"

// GitHub creates repositories through the GitHub REST API.
type GitHub struct {
	baseURL *url.URL
}

// GitHubOption configures a GitHub host.
type GitHubOption func(*GitHub)

// WithBaseURL points the client at another API root, e.g. GitHub Enterprise.
func WithBaseURL(u *url.URL) GitHubOption {
	return func(g *GitHub) {
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		g.baseURL = u
	}
}

// NewGitHub creates a GitHub host.
func NewGitHub(opts ...GitHubOption) *GitHub {
	g := &GitHub{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *GitHub) client(ctx context.Context, token string) *github.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: strings.TrimSpace(token)})
	client := github.NewClient(oauth2.NewClient(ctx, ts))
	if g.baseURL != nil {
		client.BaseURL = g.baseURL
	}
	return client
}

// AuthenticatedUser returns the account owning token.
func (g *GitHub) AuthenticatedUser(ctx context.Context, token string) (Account, error) {
	user, _, err := g.client(ctx, token).Users.Get(ctx, "")
	if err != nil {
		return Account{}, fmt.Errorf("failed to get authenticated user: %w", err)
	}
	return Account{
		Login: user.GetLogin(),
		Name:  user.GetName(),
		Email: user.GetEmail(),
	}, nil
}

// CreateRepository creates a public, empty repository for the token owner.
func (g *GitHub) CreateRepository(ctx context.Context, token, name string) (Repository, error) {
	repo, _, err := g.client(ctx, token).Repositories.Create(ctx, "", &github.Repository{
		Name:        github.Ptr(name),
		Description: github.Ptr(repositoryDescription),
		Private:     github.Ptr(false),
		AutoInit:    github.Ptr(false),
	})
	if err != nil {
		return Repository{}, fmt.Errorf("failed to create repository %s: %w", name, err)
	}
	return Repository{
		HTMLURL:  repo.GetHTMLURL(),
		CloneURL: repo.GetCloneURL(),
	}, nil
}
