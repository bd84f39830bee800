package controller

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "perlver.dev/pkg/perlver/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI with a Bubble Tea pager for results that overflow the
// terminal. Short output is printed directly.
type TUI struct {
	cmd    *cobra.Command
	output *os.File
}

// NewTUI creates a new TUI writing to output.
func NewTUI(cmd *cobra.Command, output *os.File) *TUI {
	return &TUI{cmd: cmd, output: output}
}

// DisplayAudit renders the audit table, paging it when it does not fit on
// screen.
func (t *TUI) DisplayAudit(ctx context.Context, report m.AuditReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content := renderAuditTable(report)

	if !t.needsPager(content) {
		t.cmd.Print(content)
		return nil
	}

	model := pagerModel{
		title:   fmt.Sprintf("perlver audit · %d files", len(report.Files)),
		content: content,
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplayMarkers prints the markers for one file; marker listings are short
// and never paged.
func (t *TUI) DisplayMarkers(ctx context.Context, path m.Path, markers []m.Marker, err error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.cmd.Print(renderMarkers(path, markers, err))

	return nil
}

func (t *TUI) needsPager(content string) bool {
	_, height, err := term.GetSize(int(t.output.Fd()))
	if err != nil || height <= 0 {
		return false
	}

	return strings.Count(content, "\n") >= height
}

// pagerModel is the Bubble Tea model wrapping the rendered table in a
// viewport.
type pagerModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

func (p pagerModel) Init() tea.Cmd {
	return nil
}

func (p pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return p, tea.Quit
		}

	case tea.WindowSizeMsg:
		chrome := lipgloss.Height(p.headerView()) + lipgloss.Height(p.footerView())

		if !p.ready {
			p.viewport = viewport.New(msg.Width, msg.Height-chrome)
			p.viewport.SetContent(p.content)
			p.ready = true
		} else {
			p.viewport.Width = msg.Width
			p.viewport.Height = msg.Height - chrome
		}
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)

	return p, cmd
}

func (p pagerModel) View() string {
	if !p.ready {
		return "\n  loading..."
	}

	return fmt.Sprintf("%s\n%s\n%s", p.headerView(), p.viewport.View(), p.footerView())
}

func (p pagerModel) headerView() string {
	return titleStyle.Render(p.title)
}

func (p pagerModel) footerView() string {
	percent := fmt.Sprintf("%3.0f%%", p.viewport.ScrollPercent()*100)

	return helpStyle.Render(fmt.Sprintf(" %s · j/k scroll · q quit", percent))
}
