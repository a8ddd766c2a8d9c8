// Package tui renders the resolution inspector: a small bubbletea app that
// shows the three loader sources, their search locations, and lets the user
// probe a resource name to see which source shadows the others.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/strata/internal/module"
	"github.com/kingrea/strata/internal/source"
)

// Inspector is the slice of the launch environment the TUI reads. All calls
// are safe for concurrent readers, so the app can probe on every keystroke.
type Inspector interface {
	System() source.Source
	EarlyExtension() source.Source
	Runtime() source.Source
	FindLoaderFor(resourceName string) (source.Source, error)
}

// App is the inspector model.
type App struct {
	inspector Inspector
	registry  *module.Registry

	input       textinput.Model
	probeResult string
}

// NewApp builds the inspector over an environment and an optional registry.
func NewApp(inspector Inspector, registry *module.Registry) *App {
	input := textinput.New()
	input.Placeholder = "community/review.go"
	input.Prompt = "probe> "
	input.CharLimit = 256
	input.Focus()
	return &App{
		inspector: inspector,
		registry:  registry,
		input:     input,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		case "enter":
			a.probe(a.input.Value())
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) probe(name string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		a.probeResult = ""
		return
	}
	src, err := a.inspector.FindLoaderFor(trimmed)
	if err != nil {
		a.probeResult = fmt.Sprintf("✗ %s not found on any loader", trimmed)
		return
	}
	a.probeResult = fmt.Sprintf("✓ %s ← %s", trimmed, src.Name())
}

// View implements tea.Model.
func (a *App) View() string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		MarginBottom(1).
		Render("⬡ STRATA · resolution inspector")

	sources := lipgloss.JoinVertical(lipgloss.Left,
		a.renderSource("runtime", a.inspector.Runtime()),
		a.renderSource("early-extension", a.inspector.EarlyExtension()),
		a.renderSource("system", a.inspector.System()),
	)
	sourcesBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(sources)

	sections := []string{header, sourcesBox}
	if modulesBox := a.renderModules(); modulesBox != "" {
		sections = append(sections, modulesBox)
	}
	sections = append(sections, a.renderProbe())
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render("Enter → probe resource    Esc → quit")
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

// renderSource shows one resolution tier. Tiers are listed in shadowing
// order, runtime first.
func (a *App) renderSource(tier string, src source.Source) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		Render(tier)
	if src == nil {
		note := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("not captured yet")
		return fmt.Sprintf("%s  %s", title, note)
	}
	lines := []string{fmt.Sprintf("%s  (%s)", title, src.Name())}
	if enum, ok := src.(source.Enumerator); ok {
		for _, loc := range enum.Locations() {
			lines = append(lines, "  • "+loc)
		}
	} else {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Render("  locations not enumerable"))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderModules() string {
	if a.registry == nil {
		return ""
	}
	ids := a.registry.IDs()
	if len(ids) == 0 {
		return ""
	}
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("Modules (%d)", len(ids)))
	body := "  " + strings.Join(ids, "\n  ")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(title + "\n" + body)
}

func (a *App) renderProbe() string {
	lines := []string{a.input.View()}
	if a.probeResult != "" {
		lines = append(lines, a.probeResult)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
