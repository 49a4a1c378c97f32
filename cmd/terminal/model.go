package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Deepak7704/100xSWE/internal/client"
	"github.com/Deepak7704/100xSWE/internal/core"
)

const asciiLogo = `
╔════════════════════════════════════════════════════════════════╗
║                                                                ║
║     ██╗ ██████╗  ██████╗ ██╗  ██╗███████╗██╗    ██╗███████╗    ║
║    ███║██╔═████╗██╔═████╗╚██╗██╔╝██╔════╝██║    ██║██╔════╝    ║
║    ╚██║██║██╔██║██║██╔██║ ╚███╔╝ ███████╗██║ █╗ ██║█████╗      ║
║     ██║████╔╝██║████╔╝██║ ██╔██╗ ╚════██║██║███╗██║██╔══╝      ║
║     ██║╚██████╔╝╚██████╔╝██╔╝ ██╗███████║╚███╔███╔╝███████╗    ║
║     ╚═╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚══════╝ ╚══╝╚══╝ ╚══════╝    ║
║                                                                ║
║              AUTONOMOUS PULL REQUEST ENGINE v1.0.              ║
║                                                                ║
╚════════════════════════════════════════════════════════════════╝
`

// stage is one user-visible pipeline step, keyed by the progress checkpoint
// that marks it finished.
type stage struct {
	threshold int
	label     string
}

var stages = []stage{
	{10, "Fork repository"},
	{20, "Provision sandbox"},
	{30, "Clone fork"},
	{40, "Discover candidate files"},
	{60, "Read code context"},
	{70, "Generate changes"},
	{80, "Apply file operations"},
	{90, "Commit and push"},
	{100, "Open pull request"},
}

type model struct {
	styles styles
	api    *client.Client

	// Request being watched. repoURL and task are empty when attaching to
	// an already submitted job.
	repoURL string
	task    string
	jobID   string

	spinner  spinner.Model
	progress progress.Model

	status  *client.JobStatus
	outcome string
	err     error
	width   int
}

func initialModel(theme ThemeName, api *client.Client, repoURL, task, jobID string) *model {
	styles := GetTheme(theme)

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = styles.stageActive

	pr := progress.New(progress.WithDefaultGradient())

	return &model{
		styles:   styles,
		api:      api,
		repoURL:  repoURL,
		task:     task,
		jobID:    jobID,
		spinner:  sp,
		progress: pr,
		width:    80,
	}
}

func (m *model) Init() tea.Cmd {
	if m.jobID == "" {
		return tea.Batch(m.spinner.Tick, submitCmd(m.api, m.repoURL, m.task))
	}
	return tea.Batch(m.spinner.Tick, fetchStatusCmd(m.api, m.jobID))
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		barWidth := msg.Width - 8
		if barWidth > 60 {
			barWidth = 60
		}
		if barWidth > 0 {
			m.progress.Width = barWidth
		}

	case submittedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.jobID = msg.jobID
		return m, fetchStatusCmd(m.api, m.jobID)

	case statusMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = msg.status
		switch m.status.State {
		case core.JobStateCompleted:
			return m, renderOutcomeCmd(m.status, m.task, m.contentWidth())
		case core.JobStateFailed:
			return m, nil
		default:
			return m, pollCmd()
		}

	case pollTickMsg:
		return m, fetchStatusCmd(m.api, m.jobID)

	case outcomeRenderedMsg:
		if msg.err != nil {
			// Fall back to the bare link when the renderer is unavailable.
			if m.status != nil && m.status.Result != nil {
				m.outcome = m.status.Result.PRURL
			}
			return m, nil
		}
		m.outcome = msg.content
		return m, nil

	case spinner.TickMsg:
		if m.finished() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *model) View() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.logo.Render(asciiLogo) + "\n")

	if m.repoURL != "" {
		b.WriteString(s.label.Render("  Repo  ") + s.value.Render(m.repoURL) + "\n")
	}
	if m.task != "" {
		b.WriteString(s.label.Render("  Task  ") + s.value.Render(m.task) + "\n")
	}
	if m.jobID != "" {
		b.WriteString(s.label.Render("  Job   ") + s.value.Render(m.jobID) + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(s.error.Render("  ✗ "+m.err.Error()) + "\n")
	case m.jobID == "":
		b.WriteString("  " + m.spinner.View() + " Submitting change request...\n")
	case m.status == nil:
		b.WriteString("  " + m.spinner.View() + " Fetching status...\n")
	default:
		b.WriteString("  " + m.progress.ViewAs(m.percent()) + "\n\n")
		b.WriteString(m.stageList())
		if m.status.State == core.JobStateFailed {
			b.WriteString("\n" + s.error.Render("  ✗ "+m.status.FailedReason) + "\n")
		}
	}

	if m.outcome != "" {
		b.WriteString(s.outcome.Render(strings.TrimRight(m.outcome, "\n")) + "\n")
	}

	b.WriteString(s.help.Render("  press q to quit"))
	return s.app.Render(b.String())
}

func (m *model) stageList() string {
	var b strings.Builder

	done := 0
	if m.status != nil {
		done = m.status.Progress
	}
	failed := m.status != nil && m.status.State == core.JobStateFailed

	activeSeen := false
	for _, st := range stages {
		switch {
		case done >= st.threshold:
			b.WriteString(m.styles.stageDone.Render("  ✓ "+st.label) + "\n")
		case !activeSeen && failed:
			b.WriteString(m.styles.error.Render("  ✗ "+st.label) + "\n")
			activeSeen = true
		case !activeSeen:
			b.WriteString(m.styles.stageActive.Render("  "+m.spinner.View()+" "+st.label) + "\n")
			activeSeen = true
		default:
			b.WriteString(m.styles.stagePending.Render("  ○ "+st.label) + "\n")
		}
	}
	return b.String()
}

func (m *model) percent() float64 {
	if m.status == nil {
		return 0
	}
	return float64(m.status.Progress) / 100
}

func (m *model) finished() bool {
	return m.err != nil || (m.status != nil && m.status.Done())
}

func (m *model) contentWidth() int {
	w := m.width - 10
	if w < 20 {
		w = 20
	}
	if w > 80 {
		w = 80
	}
	return w
}
