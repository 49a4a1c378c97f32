// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/Deepak7704/100xSWE/internal/config"
)

// NewInstallationClient creates a GitHub client authenticated as a GitHub
// App installation, for deployments where a personal access token is not
// an option. It returns the client together with the raw installation
// token; git pushes reuse the token for HTTPS auth.
func NewInstallationClient(ctx context.Context, cfg *config.GitHubConfig, logger *slog.Logger) (Client, string, error) {
	logger.Info("creating GitHub installation client", "installation_id", cfg.InstallationID)

	privateKey, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read private key from %s: %w", cfg.PrivateKeyPath, err)
	}

	// The apps transport talks to the GitHub App API (e.g. to mint
	// installation tokens).
	appTransport, err := ghinstallation.NewAppsTransport(http.DefaultTransport, cfg.AppID, privateKey)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create GitHub App transport: %w", err)
	}
	appClient := github.NewClient(&http.Client{Transport: appTransport})

	token, _, err := appClient.Apps.CreateInstallationToken(ctx, cfg.InstallationID, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create installation token for installation ID %d: %w", cfg.InstallationID, err)
	}
	if token.GetToken() == "" {
		return nil, "", fmt.Errorf("received an empty installation token")
	}
	logger.Info("successfully created installation token", "installation_id", cfg.InstallationID, "expires_at", token.GetExpiresAt())

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token.GetToken()})
	tc := oauth2.NewClient(ctx, ts)
	installationClient := github.NewClient(tc)

	return NewGitHubClient(installationClient, logger), token.GetToken(), nil
}
