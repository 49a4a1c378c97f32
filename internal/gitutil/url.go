package gitutil

import (
	"fmt"
	"regexp"
	"strings"
)

var repoURLRegex = regexp.MustCompile(`github\.com[:/]([^/]+)/([^/]+?)(?:\.git)?$`)

// ParseRepoURL extracts the owner and repository name from a GitHub URL.
// Supported formats:
//
//	https://github.com/{owner}/{repo}
//	https://github.com/{owner}/{repo}.git
//	git@github.com:{owner}/{repo}.git
func ParseRepoURL(repoURL string) (owner, repo string, err error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(repoURL), "/")

	matches := repoURLRegex.FindStringSubmatch(trimmed)
	if len(matches) != 3 {
		return "", "", fmt.Errorf("invalid repository URL format: %s", repoURL)
	}

	owner = matches[1]
	repo = matches[2]
	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository URL format: %s", repoURL)
	}
	return owner, repo, nil
}
