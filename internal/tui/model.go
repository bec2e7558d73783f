// Package tui provides the Bubble Tea typing test.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typesprint/internal/diff"
	"github.com/verte-zerg/typesprint/internal/session"
	"github.com/verte-zerg/typesprint/internal/stats"
)

const idlePrompt = "Press enter to begin!"

var (
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	overflowStyle    = incorrectStyle.Strikethrough(true)
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	resultsBoxStyle  = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A")).
				Padding(0, 2).
				MarginTop(1)
	resultLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	resultValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model implements tea.Model and session.Presenter. The controller it owns
// calls back into the presenter methods from inside Update.
type Model struct {
	ctrl *session.Controller

	input textinput.Model
	bar   progress.Model
	help  help.Model
	keys  keyMap

	width  int
	height int

	sentence     []rune
	statuses     []diff.Status
	inputEnabled bool
	results      *stats.Result
	label        string
}

// NewModel returns an idle typing test drawing sentences from picker.
func NewModel(picker session.Picker, opts ...session.Option) *Model {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "type the sentence above"

	m := &Model{
		input: in,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:  help.New(),
		keys:  newKeyMap(),
	}
	m.ctrl = session.NewController(picker, m, opts...)
	m.ctrl.Reset()
	return m
}

// Session returns the current session state.
func (m *Model) Session() session.Session {
	return m.ctrl.Session()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Start):
			m.ctrl.Start()
			return m, textinput.Blink
		}
		if !m.inputEnabled {
			return m, nil
		}
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if value := m.input.Value(); value != before {
			m.ctrl.Input(value)
		}
		return m, cmd
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{titleStyle.Render("typesprint"), ""}
	if len(m.sentence) == 0 {
		sections = append(sections, pendingStyle.Render(idlePrompt))
	} else {
		sections = append(sections, m.renderSentence(), "", m.input.View(), m.bar.ViewAs(m.progress()))
	}
	if m.results != nil {
		sections = append(sections, renderResults(*m.results))
	}
	sections = append(sections, "", m.help.View(m.keys))
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Render implements session.Presenter.
func (m *Model) Render(sentence string) {
	m.sentence = []rune(sentence)
	m.statuses = make([]diff.Status, len(m.sentence))
	m.input.Reset()
}

// UpdateCharacterStatus implements session.Presenter.
func (m *Model) UpdateCharacterStatus(index int, status diff.Status) {
	if index < 0 || index >= len(m.statuses) {
		return
	}
	m.statuses[index] = status
}

// SetInputEnabled implements session.Presenter.
func (m *Model) SetInputEnabled(enabled bool) {
	m.inputEnabled = enabled
	if enabled {
		m.input.Focus()
		return
	}
	m.input.Blur()
}

// ShowResults implements session.Presenter.
func (m *Model) ShowResults(res stats.Result) {
	m.results = &res
}

// HideResults implements session.Presenter.
func (m *Model) HideResults() {
	m.results = nil
}

// SetButtonLabel implements session.Presenter.
func (m *Model) SetButtonLabel(label string) {
	m.label = label
	m.keys.setStartLabel(label)
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	w := int(float64(m.width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) resize() {
	w := m.contentWidth()
	m.bar.Width = w
	m.input.Width = w - lipgloss.Width(m.input.Prompt) - 1
	m.help.Width = w
}

func (m *Model) typed() []rune {
	return []rune(m.input.Value())
}

func (m *Model) cursorIndex() int {
	n := len(m.typed())
	if !m.inputEnabled || n >= len(m.sentence) {
		return -1
	}
	return n
}

func (m *Model) progress() float64 {
	if len(m.sentence) == 0 {
		return 0
	}
	p := float64(len(m.typed())) / float64(len(m.sentence))
	if p > 1 {
		return 1
	}
	return p
}

func (m *Model) renderSentence() string {
	var overflow []rune
	if typed := m.typed(); len(typed) > len(m.sentence) {
		overflow = typed[len(m.sentence):]
	}
	runes := buildStyledRunes(m.sentence, m.statuses, overflow, m.cursorIndex())
	return renderLines(wrapLines(runes, m.contentWidth()))
}

func renderResults(res stats.Result) string {
	rows := []string{
		fmt.Sprintf("%s %s", resultLabelStyle.Render("WPM:"), resultValueStyle.Render(fmt.Sprintf("%d", res.WPM))),
		fmt.Sprintf("%s %s", resultLabelStyle.Render("Accuracy:"), resultValueStyle.Render(fmt.Sprintf("%d%%", res.Accuracy))),
		fmt.Sprintf("%s %s", resultLabelStyle.Render("Time:"), resultValueStyle.Render(fmt.Sprintf("%.1fs", res.Elapsed.Seconds()))),
	}
	return resultsBoxStyle.Render(strings.Join(rows, "\n"))
}
