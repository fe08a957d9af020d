// Package repl is an interactive terminal front end for the evaluator,
// grounded on the teacher pack's bubbletea-based REPL
// (mgomes-vibescript/cmd/vibes/repl.go): a textinput.Model driving a
// persistent evaluation environment, styled with lipgloss, run through
// bubbletea's Model/Update/View loop. Mython's indentation-sensitive
// grammar means a single line rarely stands on its own, so input is
// buffered across Enter presses and submitted for evaluation on a blank
// line, rather than evaluated line-by-line as in the teacher's REPL.
package repl

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mythonlang/mython/pkg/compiler/lexer"
	"github.com/mythonlang/mython/pkg/compiler/parser"
	"github.com/mythonlang/mython/pkg/core/value"
	"github.com/mythonlang/mython/pkg/evaluator"
)

var (
	accentColor  = lipgloss.Color("#3B82F6")
	successColor = lipgloss.Color("#10B981")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")

	promptStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(successColor)
	errorStyle  = lipgloss.NewStyle().Foreground(errorColor)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	headerStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Padding(0, 1)
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type keyMap struct {
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	Enter key.Binding
}

var keys = keyMap{
	CtrlC: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	CtrlD: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "quit")),
	CtrlL: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit line")),
}

type model struct {
	textInput   textinput.Model
	scope       *value.Scope
	pending     []string
	history     []historyEntry
	width       int
	height      int
	quitting    bool
	initialized bool
}

func newModel() model {
	ti := textinput.New()
	ti.Placeholder = "type a line, blank line to run..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "mython> "

	return model{
		textInput: ti,
		scope:     value.NewScope(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = nil
			return m, nil

		case key.Matches(msg, keys.Enter):
			line := m.textInput.Value()
			m.textInput.SetValue("")
			if strings.TrimSpace(line) == "" && len(m.pending) > 0 {
				src := strings.Join(m.pending, "\n") + "\n"
				m.pending = nil
				output, isErr := m.evaluate(src)
				m.history = append(m.history, historyEntry{input: src, output: output, isErr: isErr})
				return m, nil
			}
			if strings.TrimSpace(line) == "" {
				return m, nil
			}
			m.pending = append(m.pending, line)
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *model) evaluate(src string) (string, bool) {
	tokens, err := lexer.NewScanner([]byte(src)).Run()
	if err != nil {
		return err.Error(), true
	}
	root, err := parser.NewParser(tokens).Parse()
	if err != nil {
		return err.Error(), true
	}
	var out bytes.Buffer
	_, err = evaluator.RunInScope(root, m.scope, &out, evaluator.DefaultStepBudget)
	if err != nil {
		return err.Error(), true
	}
	if out.Len() == 0 {
		return "(no output)", false
	}
	return strings.TrimSuffix(out.String(), "\n"), false
}

func (m model) View() string {
	if !m.initialized {
		return "Loading..."
	}
	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Mython REPL") + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("-", min(m.width-2, 60))) + "\n\n")

	for _, entry := range m.history {
		for _, line := range strings.Split(strings.TrimRight(entry.input, "\n"), "\n") {
			b.WriteString(mutedStyle.Render("  > "+line) + "\n")
		}
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("x "+entry.output) + "\n\n")
		} else {
			b.WriteString("  " + resultStyle.Render(entry.output) + "\n\n")
		}
	}

	for _, line := range m.pending {
		b.WriteString(mutedStyle.Render("  | "+line) + "\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")
	b.WriteString(mutedStyle.Render("ctrl+l clear  ctrl+c quit"))
	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Run starts the interactive REPL loop.
func Run() error {
	p := tea.NewProgram(newModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
