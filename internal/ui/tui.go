// Package ui provides the terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/app"
	"github.com/nibzard/todolist-go/internal/logging"
	"github.com/nibzard/todolist-go/internal/todo"
)

// DefaultTitle is shown above the list.
const DefaultTitle = "To-Do List"

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	altScreen bool
	title     string
	renderer  *lipgloss.Renderer
}

// WithAltScreen selects whether the TUI takes over the whole terminal.
func WithAltScreen(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.altScreen = enabled
	}
}

// WithTitle replaces the heading.
func WithTitle(title string) TUIOption {
	return func(c *tuiConfig) {
		if title != "" {
			c.title = title
		}
	}
}

func newTUIConfig(opts []TUIOption) *tuiConfig {
	c := &tuiConfig{
		altScreen: true,
		title:     DefaultTitle,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.renderer == nil {
		c.renderer = lipgloss.DefaultRenderer()
	}
	return c
}

// RunTUI runs the interactive list until the user quits or ctx ends.
func RunTUI(ctx context.Context, session *app.Session, logger *log.Logger, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	c := newTUIConfig(opts)
	model := newTUIModel(session, logger, c)

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(model, programOpts...)
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

type styles struct {
	title    lipgloss.Style
	done     lipgloss.Style
	selected lipgloss.Style
	faint    lipgloss.Style
	notice   lipgloss.Style
	modal    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:    r.NewStyle().Bold(true),
		done:     r.NewStyle().Strikethrough(true).Faint(true),
		selected: r.NewStyle().Bold(true),
		faint:    r.NewStyle().Faint(true),
		notice:   r.NewStyle().Foreground(lipgloss.Color("3")),
		modal: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("1")).
			Padding(0, 2),
	}
}

type tuiModel struct {
	session *app.Session
	logger  *log.Logger
	title   string
	styles  styles

	input   textinput.Model
	focus   focusArea
	cursor  int
	warning string // blocking; must be dismissed
	notice  string // non-blocking
}

func newTUIModel(session *app.Session, logger *log.Logger, c *tuiConfig) *tuiModel {
	if logger == nil {
		logger = logging.Discard()
	}

	ti := textinput.New()
	ti.Placeholder = "Enter a new task"
	ti.Prompt = "> "
	ti.Width = 40
	ti.SetValue(session.Pending())
	ti.Focus()

	return &tuiModel{
		session: session,
		logger:  logger,
		title:   c.title,
		styles:  newStyles(c.renderer),
		input:   ti,
		focus:   focusInput,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-len(m.input.Prompt)-2, 10)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.warning != "" {
			return m.updateWarning(msg)
		}
		if m.focus == focusList {
			return m.updateList(msg)
		}
		return m.updateInput(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateWarning handles keys while the warning is open. Everything except
// the dismiss keys is swallowed.
func (m *tuiModel) updateWarning(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ", "space":
		m.warning = ""
	}
	return m, nil
}

func (m *tuiModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.submit()
		return m, nil
	case "esc":
		return m, tea.Quit
	case "tab", "down":
		if m.session.Len() > 0 {
			m.focusList()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetPending(m.input.Value())
	return m, cmd
}

func (m *tuiModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := m.session.Len() - 1
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < last {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(last, 0)
	case " ", "space", "x":
		m.handleResult(m.session.Toggle(m.cursor))
	case "d", "delete":
		m.handleResult(m.session.Delete(m.cursor))
		m.clampCursor()
		if m.session.Len() == 0 {
			return m, m.focusInput()
		}
	case "tab", "a", "i":
		return m, m.focusInput()
	}
	return m, nil
}

// submit adds the pending input as a new task.
func (m *tuiModel) submit() {
	m.session.SetPending(m.input.Value())
	err := m.session.AddPending()
	m.input.SetValue(m.session.Pending())
	m.handleResult(err)
	if err == nil || isPersistError(err) {
		m.cursor = m.session.Len() - 1
	}
}

// handleResult maps an operation result onto the warning and notice lines.
func (m *tuiModel) handleResult(err error) {
	switch {
	case err == nil:
		m.notice = ""
	case todo.IsValidation(err):
		m.warning = warningText(err)
	case isPersistError(err):
		m.notice = "Not saved: " + errors.Unwrap(err).Error()
	case errors.Is(err, todo.ErrIndexOutOfRange):
		m.logger.Debug("ignored out of range index", "err", err)
	default:
		m.notice = err.Error()
	}
}

func (m *tuiModel) focusInput() tea.Cmd {
	m.focus = focusInput
	return m.input.Focus()
}

func (m *tuiModel) focusList() {
	m.focus = focusList
	m.input.Blur()
	m.clampCursor()
}

func (m *tuiModel) clampCursor() {
	n := m.session.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func isPersistError(err error) bool {
	var pe *app.PersistError
	return errors.As(err, &pe)
}

func warningText(err error) string {
	switch {
	case errors.Is(err, todo.ErrEmptyText):
		return "Please enter a task"
	case errors.Is(err, todo.ErrDuplicateText):
		return "Task already exists"
	}
	return err.Error()
}

func (m *tuiModel) View() string {
	var b strings.Builder
	m.writeTitle(&b)

	if m.warning != "" {
		m.writeWarning(&b)
		return b.String()
	}

	m.writeInput(&b)
	m.writeTasks(&b)
	m.writeSummary(&b)
	m.writeFooter(&b)
	return b.String()
}

func (m *tuiModel) writeTitle(b *strings.Builder) {
	b.WriteString(m.styles.title.Render(m.title) + "\n")
	b.WriteString(strings.Repeat("=", lipgloss.Width(m.title)) + "\n\n")
}

func (m *tuiModel) writeWarning(b *strings.Builder) {
	b.WriteString(m.styles.modal.Render(m.warning + "\n\n" + m.styles.faint.Render("enter: OK")))
	b.WriteString("\n")
}

func (m *tuiModel) writeInput(b *strings.Builder) {
	b.WriteString(m.input.View())
	b.WriteString("  " + m.styles.faint.Render("[Add Task]") + "\n")
	if m.notice != "" {
		b.WriteString(m.styles.notice.Render(m.notice) + "\n")
	}
	b.WriteString("\n")
}

func (m *tuiModel) writeTasks(b *strings.Builder) {
	tasks := m.session.Tasks()
	if len(tasks) == 0 {
		b.WriteString("  No tasks yet.\n\n")
		return
	}
	for i, task := range tasks {
		selected := m.focus == focusList && i == m.cursor
		b.WriteString(m.formatTask(task, selected))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (m *tuiModel) formatTask(t todo.Task, selected bool) string {
	marker := " "
	if selected {
		marker = ">"
	}
	check := "[ ]"
	text := t.Text
	if t.IsComplete {
		check = "[x]"
		text = m.styles.done.Render(text)
	}
	line := fmt.Sprintf("%s %s %s  %s", marker, check, text, m.styles.faint.Render("[Delete]"))
	if selected {
		return m.styles.selected.Render(line)
	}
	return line
}

func (m *tuiModel) writeSummary(b *strings.Builder) {
	open, done := m.session.Counts()
	b.WriteString(fmt.Sprintf("%d open, %d done\n\n", open, done))
}

func (m *tuiModel) writeFooter(b *strings.Builder) {
	var help string
	if m.focus == focusList {
		help = "j/k move | space toggle | d delete | tab new task | q quit"
	} else {
		help = "enter add | tab list | esc quit"
	}
	b.WriteString(m.styles.faint.Render(help) + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
