package serve

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// OAuthExchanger exchanges GitHub OAuth App authorization codes.
type OAuthExchanger struct {
	config oauth2.Config
}

// NewOAuthExchanger creates an exchanger for the OAuth App identified by
// clientID and clientSecret. A zero endpoint selects github.com.
func NewOAuthExchanger(clientID, clientSecret string, endpoint oauth2.Endpoint) *OAuthExchanger {
	if endpoint.TokenURL == "" {
		endpoint = github.Endpoint
	}
	return &OAuthExchanger{config: oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     endpoint,
		Scopes:       []string{"public_repo"},
	}}
}

// Exchange returns the access token granted for code.
func (e *OAuthExchanger) Exchange(ctx context.Context, code string) (string, error) {
	token, err := e.config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange code: %w", err)
	}
	if token.AccessToken == "" {
		return "", errors.New("failed to exchange code: empty access token")
	}
	return token.AccessToken, nil
}
