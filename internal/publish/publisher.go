// Package publish pushes generated projects to new GitHub repositories.
package publish

import (
	"context"
	"errors"
	"fmt"

	"github.com/react-three/create/internal/output"
	"github.com/react-three/create/internal/project"
	"github.com/rs/zerolog"
)

// ErrNoFiles is returned when there is nothing to publish.
var ErrNoFiles = errors.New("no files to publish")

// Account is the identity commits are authored with.
type Account struct {
	Login string
	Name  string
	Email string
}

// DisplayName returns the account name, falling back to the login.
func (a Account) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Login
}

// CommitEmail returns the public email, falling back to the no-reply address.
func (a Account) CommitEmail() string {
	if a.Email != "" {
		return a.Email
	}
	return a.Login + "@users.noreply.github.com"
}

// Repository is a created remote repository.
type Repository struct {
	HTMLURL  string
	CloneURL string
}

// RepositoryHost looks up accounts and creates repositories.
type RepositoryHost interface {
	AuthenticatedUser(ctx context.Context, token string) (Account, error)
	CreateRepository(ctx context.Context, token, name string) (Repository, error)
}

// Pusher commits files and pushes them to a remote.
type Pusher interface {
	Push(ctx context.Context, remoteURL string, author Account, token string, files map[string][]byte) error
}

// Publisher creates a repository and pushes a generated project to it.
type Publisher struct {
	host    RepositoryHost
	pusher  Pusher
	fetcher output.Fetcher
	logger  zerolog.Logger
}

// NewPublisher creates a Publisher.
func NewPublisher(host RepositoryHost, pusher Pusher, fetcher output.Fetcher, logger zerolog.Logger) *Publisher {
	return &Publisher{host: host, pusher: pusher, fetcher: fetcher, logger: logger}
}

// Publish creates the repository name for the owner of token, pushes files
// as the initial commit and returns the repository's web address.
func (p *Publisher) Publish(ctx context.Context, name string, files project.FileMap, token string) (string, error) {
	if len(files) == 0 {
		return "", ErrNoFiles
	}
	if err := output.CheckPaths(files); err != nil {
		return "", err
	}

	contents, err := output.Resolve(ctx, p.fetcher, files)
	if err != nil {
		return "", err
	}

	account, err := p.host.AuthenticatedUser(ctx, token)
	if err != nil {
		return "", err
	}

	repo, err := p.host.CreateRepository(ctx, token, name)
	if err != nil {
		return "", err
	}
	logger := p.logger.With().Str("repository", repo.HTMLURL).Str("user", account.Login).Logger()
	logger.Info().Msg("repository created")

	remote := repo.CloneURL
	if remote == "" {
		remote = repo.HTMLURL
	}
	if err := p.pusher.Push(ctx, remote, account, token, contents); err != nil {
		return "", fmt.Errorf("failed to publish %s: %w", name, err)
	}

	logger.Info().Int("files", len(contents)).Msg("project published")
	return repo.HTMLURL, nil
}
