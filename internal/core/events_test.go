package core

import (
	"testing"

	"github.com/google/go-github/v73/github"
)

func pushEvent(fullName, ref string, commits int) *github.PushEvent {
	heads := make([]*github.HeadCommit, commits)
	for i := range heads {
		heads[i] = &github.HeadCommit{ID: github.Ptr("abc")}
	}
	return &github.PushEvent{
		Ref: github.Ptr(ref),
		Repo: &github.PushEventRepository{
			ID:       github.Ptr(int64(42)),
			FullName: github.Ptr(fullName),
			CloneURL: github.Ptr("https://github.com/" + fullName + ".git"),
		},
		Pusher:  &github.CommitAuthor{Name: github.Ptr("octocat")},
		Commits: heads,
	}
}

func TestInputFromPush(t *testing.T) {
	in, err := InputFromPush(pushEvent("acme/widget", "refs/heads/main", 3))
	if err != nil {
		t.Fatalf("InputFromPush() error = %v", err)
	}
	if in.Kind != JobKindWebhookPush {
		t.Errorf("Kind = %s, want %s", in.Kind, JobKindWebhookPush)
	}
	if in.ProjectID != "acme/widget" {
		t.Errorf("ProjectID = %q, want acme/widget", in.ProjectID)
	}
	if in.Branch != "main" {
		t.Errorf("Branch = %q, want main (ref prefix stripped)", in.Branch)
	}
	if in.Trigger != TriggerWebhook {
		t.Errorf("Trigger = %q, want webhook", in.Trigger)
	}
	if in.Pusher != "octocat" {
		t.Errorf("Pusher = %q, want octocat", in.Pusher)
	}
	if in.Commits != 3 {
		t.Errorf("Commits = %d, want 3", in.Commits)
	}
	if in.RepoID != 42 {
		t.Errorf("RepoID = %d, want 42", in.RepoID)
	}
}

func TestInputFromPushMissingRepo(t *testing.T) {
	_, err := InputFromPush(&github.PushEvent{Ref: github.Ptr("refs/heads/main")})
	if err == nil {
		t.Fatal("InputFromPush() with no repository should error")
	}
}

func TestInputFromPullRequest(t *testing.T) {
	event := &github.PullRequestEvent{
		Action: github.Ptr("opened"),
		Number: github.Ptr(7),
		Repo: &github.Repository{
			ID:       github.Ptr(int64(42)),
			FullName: github.Ptr("acme/widget"),
			CloneURL: github.Ptr("https://github.com/acme/widget.git"),
		},
		PullRequest: &github.PullRequest{
			Number: github.Ptr(7),
			Head:   &github.PullRequestBranch{Ref: github.Ptr("feature/tweak")},
		},
	}

	in, err := InputFromPullRequest(event)
	if err != nil {
		t.Fatalf("InputFromPullRequest() error = %v", err)
	}
	if in.ProjectID != "acme/widget/pr-7" {
		t.Errorf("ProjectID = %q, want acme/widget/pr-7", in.ProjectID)
	}
	if in.Branch != "feature/tweak" {
		t.Errorf("Branch = %q, want feature/tweak (head ref)", in.Branch)
	}
	if in.PRNumber != 7 || in.Action != "opened" {
		t.Errorf("PRNumber/Action = %d/%q, want 7/opened", in.PRNumber, in.Action)
	}
}
