// Package tui provides terminal user interface components for den.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/denlabs/den/internal/health"
	"github.com/denlabs/den/internal/identity"
	"github.com/denlabs/den/internal/runtime"
	"github.com/denlabs/den/internal/sandbox"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionAttach
	ActionStart
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action  Action
	Sandbox *sandbox.Info
}

// sandboxItem implements list.Item for sandbox display
type sandboxItem struct {
	info   sandbox.Info
	uptime string
}

func (i sandboxItem) Title() string {
	return i.info.Identity.Slug
}

func (i sandboxItem) Description() string {
	statusIcon := "●"
	switch i.info.Status {
	case runtime.StatusRunning:
		statusIcon = "✓"
	case runtime.StatusStopped:
		statusIcon = "●"
	default:
		statusIcon = "○"
	}

	return fmt.Sprintf("%s %s | %s | :%d | %s",
		statusIcon,
		i.info.Identity.Variant,
		i.uptime,
		i.info.Identity.Port(identity.ServiceCodeServer),
		truncateSource(i.info.Identity.RawSource, 30),
	)
}

func (i sandboxItem) FilterValue() string {
	return i.info.Identity.Slug
}

func truncateSource(source string, maxLen int) string {
	if len(source) <= maxLen {
		return source
	}
	return "..." + source[len(source)-maxLen+3:]
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the sandbox picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new sandbox picker
func NewPicker(infos []sandbox.Info) Model {
	items := make([]list.Item, len(infos))
	for i, info := range infos {
		uptime := "stopped"
		if info.Status == runtime.StatusRunning {
			uptime = health.Since(info.StartedAt)
		}
		items[i] = sandboxItem{
			info:   info,
			uptime: uptime,
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "den - Select Sandbox"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{
		list: l,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(sandboxItem); ok {
				info := item.info
				m.result = PickerResult{
					Action:  ActionAttach,
					Sandbox: &info,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "s":
			if item, ok := m.list.SelectedItem().(sandboxItem); ok {
				info := item.info
				m.result = PickerResult{
					Action:  ActionStart,
					Sandbox: &info,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Attach  [s] Start  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive sandbox picker
func RunPicker(infos []sandbox.Info) (PickerResult, error) {
	if len(infos) == 0 {
		return PickerResult{Action: ActionNone}, nil
	}

	m := NewPicker(infos)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimplePicker is a non-interactive fallback that just lists sandboxes
func SimplePicker(infos []sandbox.Info) string {
	var sb strings.Builder

	sb.WriteString("den - Sandboxes\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(infos) == 0 {
		sb.WriteString("No sandboxes found.\n")
		sb.WriteString("Create one with: den up [source]\n")
		return sb.String()
	}

	for i, info := range infos {
		statusIcon := "●"
		if info.Status == runtime.StatusRunning {
			statusIcon = "✓"
		}

		sb.WriteString(fmt.Sprintf("%d. %s %s (%s)\n",
			i+1, statusIcon, info.Identity.Slug, info.Identity.Variant))
		sb.WriteString(fmt.Sprintf("   Port: %d | Source: %s\n\n",
			info.Identity.Port(identity.ServiceCodeServer),
			truncateSource(info.Identity.RawSource, 40)))
	}

	return sb.String()
}
