// ABOUTME: Navigation menu listing the views the session may open
// ABOUTME: A huh select over guard routes, embedded as a bubbletea model

package menu

import (
	"fmt"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/guard"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// RouteSelectedMsg is sent when the user picks a view
type RouteSelectedMsg struct {
	Path string
}

// CancelledMsg is sent when the menu is dismissed
type CancelledMsg struct{}

type option struct {
	label string
	path  string
	admin bool
}

// Menu lists the routes visible to a session
type Menu struct {
	options  []option
	selected string
	form     *huh.Form
}

// New builds the menu for state, preselecting current when it is listed
func New(state session.State, current string) *Menu {
	m := &Menu{selected: guard.HomePath}
	for _, r := range guard.Visible(state) {
		m.options = append(m.options, option{label: r.Title, path: r.Path, admin: r.Level == guard.Admin})
		if r.Path == guard.Normalize(current) {
			m.selected = r.Path
		}
	}
	return m
}

// Options returns the listed paths in order
func (m *Menu) Options() []string {
	paths := make([]string, len(m.options))
	for i, opt := range m.options {
		paths[i] = opt.path
	}
	return paths
}

// Selected returns the highlighted path
func (m *Menu) Selected() string {
	return m.selected
}

func (m *Menu) buildForm() *huh.Form {
	var options []huh.Option[string]
	for _, opt := range m.options {
		label := opt.label
		if opt.admin {
			label = fmt.Sprintf("%s (admin)", label)
		}
		options = append(options, huh.NewOption(label, opt.path))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Go to").
				Options(options...).
				Value(&m.selected),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	if m.form == nil {
		m.form = m.buildForm()
	}
	return m.form.Init()
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.form = m.buildForm()
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return m, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		path := m.selected
		return m, func() tea.Msg { return RouteSelectedMsg{Path: path} }
	}

	return m, cmd
}

// View implements tea.Model
func (m *Menu) View() string {
	if m.form == nil {
		m.form = m.buildForm()
	}
	return m.form.View()
}
