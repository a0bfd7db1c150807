// Package repl implements the interactive formula editor: every keystroke
// re-parses the input and shows either the canonical rendering or the
// error with its snippet.
package repl

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yaklabco/formulint/internal/ui/pretty"
	"github.com/yaklabco/formulint/pkg/fxast"
	"github.com/yaklabco/formulint/pkg/parser"
)

const (
	prompt         = "fx> "
	historyVisible = 12
	inputCharLimit = 4096
)

// Entry is a committed line in the history pane.
type Entry struct {
	Source   string
	Rendered string
	OK       bool
}

// Model is the bubbletea model for the REPL.
type Model struct {
	input    textinput.Model
	styles   *pretty.Styles
	maxDepth int
	history  []Entry
	quitting bool
}

// New creates a REPL model. maxDepth is passed to the parser as is.
func New(styles *pretty.Styles, maxDepth int) Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = "type a formula, enter to commit, esc to quit"
	input.CharLimit = inputCharLimit
	input.Focus()

	return Model{
		input:    input,
		styles:   styles,
		maxDepth: maxDepth,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.commit()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-len(prompt)-1, 0)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) commit() {
	source := m.input.Value()
	if strings.TrimSpace(source) == "" {
		return
	}

	rendered, ok := m.render(source)
	m.history = append(m.history, Entry{Source: source, Rendered: rendered, OK: ok})
	m.input.Reset()
}

// render parses source and returns the canonical form on success or the
// formatted error on failure.
func (m Model) render(source string) (string, bool) {
	result := parser.Parse(source, parser.WithMaxDepth(m.maxDepth))
	if !result.Success() {
		return strings.TrimSuffix(m.styles.FormatParseError(source, result.Err), "\n"), false
	}
	return m.styles.Success.Render("= ") + fxast.String(result.AST), true
}

// Preview returns the live rendering of the current input.
func (m Model) Preview() string {
	source := m.input.Value()
	if strings.TrimSpace(source) == "" {
		return ""
	}
	rendered, _ := m.render(source)
	return rendered
}

// History returns the committed entries, oldest first.
func (m Model) History() []Entry {
	return m.history
}

// Value returns the current input line.
func (m Model) Value() string {
	return m.input.Value()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var builder strings.Builder

	start := max(len(m.history)-historyVisible, 0)
	for _, entry := range m.history[start:] {
		builder.WriteString(m.styles.Dim.Render(prompt) + entry.Source + "\n")
		builder.WriteString(entry.Rendered + "\n")
	}
	if len(m.history) > 0 {
		builder.WriteString("\n")
	}

	builder.WriteString(m.input.View())
	builder.WriteString("\n")

	if preview := m.Preview(); preview != "" {
		builder.WriteString(preview)
		builder.WriteString("\n")
	}

	return builder.String()
}
