// ABOUTME: Multi-step form flow as a bubbletea model
// ABOUTME: Uses huh forms with visual progress indicator for step navigation

package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/icons"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Kind names the form so the app knows what to do with the result
type Kind string

const (
	KindLogin        Kind = "login"
	KindRegister     Kind = "register"
	KindProfile      Kind = "profile"
	KindInventory    Kind = "inventory"
	KindShoppingList Kind = "shopping-list"
	KindShoppingItem Kind = "shopping-item"
	KindRecipe       Kind = "recipe"
	KindMealSlot     Kind = "meal-slot"
	KindFamily       Kind = "family"
	KindMember       Kind = "member"
	KindCategory     Kind = "category"
	KindUser         Kind = "user"
	KindReject       Kind = "reject"
)

// Values are the submitted answers keyed by field
type Values map[string]string

// Int returns the value parsed as an integer, or 0
func (v Values) Int(key string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(v[key]))
	return n
}

// Lines splits a multi-line answer, dropping blank lines
func (v Values) Lines(key string) []string {
	var out []string
	for _, line := range strings.Split(v[key], "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// List splits a comma separated answer
func (v Values) List(key string) []string {
	var out []string
	for _, part := range strings.Split(v[key], ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// CompleteMsg is sent when the last step is submitted
type CompleteMsg struct {
	Kind   Kind
	Target int // id of the record being edited, 0 for new ones
	Values Values
}

// CancelledMsg is sent when the wizard is cancelled
type CancelledMsg struct {
	Kind Kind
}

type step struct {
	name        string
	title       string
	description string
	fields      []huh.Field
}

// Wizard manages a multi-step form flow as a bubbletea model
type Wizard struct {
	kind   Kind
	target int
	steps  []step
	values map[string]*string
	form   *huh.Form
	step   int
	width  int
}

func newWizard(kind Kind, target int) *Wizard {
	return &Wizard{kind: kind, target: target, values: make(map[string]*string), step: 1}
}

// bind allocates the string a field writes into
func (w *Wizard) bind(key, initial string) *string {
	v := initial
	w.values[key] = &v
	return &v
}

func (w *Wizard) addStep(name, title, description string, fields ...huh.Field) {
	w.steps = append(w.steps, step{name: name, title: title, description: description, fields: fields})
}

func (w *Wizard) buildForm() *huh.Form {
	s := w.steps[w.step-1]
	title := s.title
	if len(w.steps) > 1 {
		title = fmt.Sprintf("Step %d: %s", w.step, s.title)
	}
	return huh.NewForm(
		huh.NewGroup(s.fields...).Title(title).Description(s.description),
	).WithTheme(createTheme())
}

// createTheme returns the huh theme used by every grocery form
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	green := lipgloss.Color("#10B981")
	greenLight := lipgloss.Color("#34D399")
	amber := lipgloss.Color("#F59E0B")
	gray := lipgloss.Color("#9CA3AF")
	grayLight := lipgloss.Color("#E5E7EB")
	red := lipgloss.Color("#F87171")
	slate := lipgloss.Color("#334155")

	t.Group.Title = lipgloss.NewStyle().
		Foreground(green).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(green)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(greenLight).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(green).
		SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().
		Foreground(grayLight)
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(green).
		Bold(true)
	t.Focused.NextIndicator = lipgloss.NewStyle().
		Foreground(green).
		MarginLeft(1).
		SetString("→")
	t.Focused.PrevIndicator = lipgloss.NewStyle().
		Foreground(green).
		MarginRight(1).
		SetString("←")

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(green)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(green)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(grayLight)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(amber).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(gray).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)
	t.Blurred.SelectSelector = lipgloss.NewStyle().
		Foreground(gray).
		SetString("  ")
	t.Blurred.Option = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

// Kind returns which form this is
func (w *Wizard) Kind() Kind {
	return w.kind
}

// Steps returns the number of steps
func (w *Wizard) Steps() int {
	return len(w.steps)
}

// Step returns the current 1-based step
func (w *Wizard) Step() int {
	return w.step
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	if w.form == nil {
		w.form = w.buildForm()
	}
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if w.form == nil {
		w.form = w.buildForm()
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			kind := w.kind
			return w, func() tea.Msg { return CancelledMsg{Kind: kind} }
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	if w.step < len(w.steps) {
		w.step++
		w.form = w.buildForm()
		return w, w.form.Init()
	}

	msg := CompleteMsg{Kind: w.kind, Target: w.target, Values: w.Values()}
	return w, func() tea.Msg { return msg }
}

// Values copies the current answers
func (w *Wizard) Values() Values {
	out := make(Values, len(w.values))
	for k, v := range w.values {
		out[k] = strings.TrimSpace(*v)
	}
	return out
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// View implements tea.Model
func (w *Wizard) View() string {
	if w.form == nil {
		w.form = w.buildForm()
	}
	var sb strings.Builder

	if len(w.steps) > 1 {
		sb.WriteString(w.renderProgress())
		sb.WriteString("\n\n")
	}
	sb.WriteString(w.form.View())

	return sb.String()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	// w.width is already the frame width minus one
	width := w.width - 1
	if width < 60 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	var steps []string
	for i, s := range w.steps {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		switch {
		case stepNum < w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		case stepNum == w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(s.name)))
	}

	stepsLine := strings.Join(steps, "    ")

	// "│  " + bar + " │" is 5 columns of chrome
	barWidth := width - 5
	filledWidth := (w.step * barWidth) / len(w.steps)
	emptyWidth := barWidth - filledWidth

	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", emptyWidth))

	styledTitle := titleStyle.Render("Progress")
	titleWidth := lipgloss.Width("Progress")

	topFillWidth := max(0, width-5-titleWidth)
	topBorder := "┌─ " + styledTitle + " " + strings.Repeat("─", topFillWidth) + "┐"

	stepsPadding := max(0, width-4-lipgloss.Width(stepsLine))
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │"

	progressLinePadded := "│  " + filledBar + emptyBar + " │"

	bottomBorder := "└" + strings.Repeat("─", width-2) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsLinePadded,
		progressLinePadded,
		bottomBorder,
	}, "\n"))
}
