package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v73/github"
)

// InputFromPush normalizes a raw GitHub push event into a JobInput. It acts
// as an anti-corruption layer: the incoming payload is checked for the data
// the queue requires before anything downstream sees it.
func InputFromPush(event *github.PushEvent) (*JobInput, error) {
	repo := event.GetRepo()
	if repo == nil || repo.GetFullName() == "" {
		return nil, &ValidationError{Field: "repository", Reason: "information is missing from the event"}
	}

	in := &JobInput{
		Kind:      JobKindWebhookPush,
		ProjectID: repo.GetFullName(),
		RepoURL:   repo.GetCloneURL(),
		RepoID:    repo.GetID(),
		Branch:    strings.TrimPrefix(event.GetRef(), "refs/heads/"),
		Trigger:   TriggerWebhook,
		Event:     "push",
		Pusher:    event.GetPusher().GetName(),
		Commits:   len(event.Commits),
		Timestamp: time.Now().UTC(),
	}
	return in, in.Validate()
}

// InputFromPullRequest normalizes a pull_request event. Callers decide which
// actions warrant a job; this constructor only validates and maps fields.
func InputFromPullRequest(event *github.PullRequestEvent) (*JobInput, error) {
	repo := event.GetRepo()
	if repo == nil || repo.GetFullName() == "" {
		return nil, &ValidationError{Field: "repository", Reason: "information is missing from the event"}
	}

	number := event.GetNumber()
	if number <= 0 {
		number = event.GetPullRequest().GetNumber()
	}

	in := &JobInput{
		Kind:      JobKindWebhookPR,
		ProjectID: fmt.Sprintf("%s/pr-%d", repo.GetFullName(), number),
		RepoURL:   repo.GetCloneURL(),
		RepoID:    repo.GetID(),
		Branch:    event.GetPullRequest().GetHead().GetRef(),
		Trigger:   TriggerWebhook,
		Event:     "pull_request",
		PRNumber:  number,
		Action:    event.GetAction(),
		Timestamp: time.Now().UTC(),
	}
	return in, in.Validate()
}
