package webhook

import (
	"fmt"
	"log/slog"

	"github.com/google/go-github/v73/github"

	"github.com/Deepak7704/100xSWE/internal/core"
)

// Classification is the ingestor's verdict on one delivery. Input is non-nil
// only when the delivery warrants a job; otherwise Message explains the ack.
type Classification struct {
	Event   string
	Input   *core.JobInput
	Message string
}

// Ingestor parses webhook deliveries and derives job inputs from the ones
// that carry actionable work. It performs no deduplication: two deliveries
// for the same branch produce two independent jobs.
type Ingestor struct {
	logger *slog.Logger
}

func NewIngestor(logger *slog.Logger) *Ingestor {
	return &Ingestor{logger: logger}
}

// Classify maps a delivery to a Classification by event type. Push events
// always enqueue. Pull request events enqueue only for the opened and
// synchronize actions. Ping and repository events are acknowledged without
// work, as is any event type the service does not handle.
func (i *Ingestor) Classify(eventType string, payload []byte) (*Classification, error) {
	parsed, err := github.ParseWebHook(eventType, payload)
	if err != nil {
		return nil, &core.ValidationError{Field: "payload", Reason: fmt.Sprintf("could not be parsed: %v", err)}
	}

	switch event := parsed.(type) {
	case *github.PushEvent:
		input, err := core.InputFromPush(event)
		if err != nil {
			return nil, err
		}
		return &Classification{Event: "push", Input: input, Message: "Push event queued"}, nil

	case *github.PullRequestEvent:
		action := event.GetAction()
		if action != "opened" && action != "synchronize" {
			i.logger.Debug("ignoring pull_request action", "action", action)
			return &Classification{Event: "pull_request", Message: fmt.Sprintf("Pull request %s acknowledged", action)}, nil
		}
		input, err := core.InputFromPullRequest(event)
		if err != nil {
			return nil, err
		}
		return &Classification{Event: "pull_request", Input: input, Message: "Pull request event queued"}, nil

	case *github.PingEvent:
		return &Classification{Event: "ping", Message: "pong"}, nil

	case *github.RepositoryEvent:
		return &Classification{Event: "repository", Message: "Repository event acknowledged"}, nil

	default:
		i.logger.Debug("ignoring unhandled event type", "event", eventType)
		return &Classification{Event: eventType, Message: "Event ignored"}, nil
	}
}
