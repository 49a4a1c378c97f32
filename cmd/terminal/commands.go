package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/Deepak7704/100xSWE/internal/client"
)

const pollInterval = time.Second

func submitCmd(api *client.Client, repoURL, task string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		reply, err := api.Submit(ctx, repoURL, task)
		if err != nil {
			return submittedMsg{err: err}
		}
		return submittedMsg{jobID: reply.JobID}
	}
}

func fetchStatusCmd(api *client.Client, jobID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		status, err := api.Status(ctx, jobID)
		return statusMsg{status: status, err: err}
	}
}

func pollCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

// renderOutcomeCmd builds the completion card as markdown and renders it for
// the terminal.
func renderOutcomeCmd(status *client.JobStatus, task string, width int) tea.Cmd {
	return func() tea.Msg {
		var b strings.Builder
		b.WriteString("# Pull request opened\n\n")
		if task != "" {
			fmt.Fprintf(&b, "> %s\n\n", task)
		}
		if status.Result != nil {
			fmt.Fprintf(&b, "Review and merge [pull request #%d](%s).\n",
				status.Result.PRNumber, status.Result.PRURL)
		}

		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return outcomeRenderedMsg{err: err}
		}
		out, err := renderer.Render(b.String())
		if err != nil {
			return outcomeRenderedMsg{err: err}
		}
		return outcomeRenderedMsg{content: out}
	}
}
