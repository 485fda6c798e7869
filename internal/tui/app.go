// Package tui renders the task list and routes key events to the store.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskpad/internal/config"
	"taskpad/internal/store"
)

// App ties the store to the terminal view.
type App struct {
	ctx   context.Context
	store *store.TaskStore
	cfg   config.Config

	state       appState
	modal       modalState
	alertText   string
	input       textinput.Model
	filterInput textinput.Model
	tasks       []store.Task
	filterQuery string
	cursor      int
	status      string
}

type appState string

const (
	viewList   appState = "list"
	viewInput  appState = "input"
	viewFilter appState = "filter"
)

type modalState string

const (
	modalNone  modalState = ""
	modalAlert modalState = "alert"
)

func New(ctx context.Context, cfg config.Config, taskStore *store.TaskStore) *App {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "What needs doing?"

	filterInput := textinput.New()
	filterInput.Prompt = "/ "

	return &App{
		ctx:         ctx,
		store:       taskStore,
		cfg:         cfg,
		state:       viewList,
		input:       input,
		filterInput: filterInput,
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadTasks()
}

func (a *App) loadTasks() tea.Cmd {
	return func() tea.Msg {
		if err := a.store.Load(a.ctx); err != nil {
			return errMsg{err}
		}
		return tasksMsg{tasks: a.store.Tasks()}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		switch a.state {
		case viewInput:
			return a.handleInputKey(m)
		case viewFilter:
			return a.handleFilterKey(m)
		default:
			return a.handleListKey(m)
		}
	case tasksMsg:
		a.tasks = m.tasks
		if m.note != "" {
			a.status = m.note
		}
		a.clampCursor()
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleListKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "a", "i":
		a.state = viewInput
		a.status = ""
		a.input.SetValue("")
		return a, a.input.Focus()
	case "/":
		a.state = viewFilter
		a.filterInput.SetValue(a.filterQuery)
		return a, a.filterInput.Focus()
	case "esc":
		if a.filterQuery != "" {
			a.filterQuery = ""
			a.clampCursor()
		}
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.visible())-1 {
			a.cursor++
		}
	case " ", "enter":
		if t, ok := a.selected(); ok {
			return a, a.toggleCmd(t.ID)
		}
	case "d", "x", "backspace", "delete":
		if t, ok := a.selected(); ok {
			return a, a.deleteCmd(t.ID)
		}
	case "v":
		a.cfg.UI.ShowCompleted = !a.cfg.UI.ShowCompleted
		a.clampCursor()
		return a, a.savePrefsCmd()
	}
	return a, nil
}

// handleInputKey is the form submit handler: empty or whitespace-only text
// raises the blocking alert and adds nothing; otherwise the task is added,
// persisted, and the field cleared for the next entry.
func (a *App) handleInputKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyEsc:
		a.state = viewList
		a.input.Blur()
		return a, nil
	case tea.KeyEnter:
		text := a.input.Value()
		if strings.TrimSpace(text) == "" {
			a.modal = modalAlert
			a.alertText = "Please enter a task description."
			return a, nil
		}
		a.input.SetValue("")
		return a, a.addCmd(text)
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	return a, cmd
}

func (a *App) handleFilterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyEsc:
		a.state = viewList
		a.filterQuery = ""
		a.filterInput.Blur()
		a.clampCursor()
		return a, nil
	case tea.KeyEnter:
		a.state = viewList
		a.filterInput.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(m)
	a.filterQuery = a.filterInput.Value()
	a.clampCursor()
	return a, cmd
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "enter", "esc", " ":
		a.modal = modalNone
		a.alertText = ""
	case "ctrl+c":
		return a, tea.Quit
	}
	return a, nil
}

// commands
func (a *App) addCmd(text string) tea.Cmd {
	return func() tea.Msg {
		if _, err := a.store.Add(a.ctx, text); err != nil {
			return errMsg{err}
		}
		return tasksMsg{tasks: a.store.Tasks(), note: "task added"}
	}
}

func (a *App) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := a.store.Toggle(a.ctx, id); err != nil {
			return errMsg{err}
		}
		return tasksMsg{tasks: a.store.Tasks()}
	}
}

func (a *App) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := a.store.Delete(a.ctx, id); err != nil {
			return errMsg{err}
		}
		return tasksMsg{tasks: a.store.Tasks(), note: "task deleted"}
	}
}

func (a *App) savePrefsCmd() tea.Cmd {
	cfg := a.cfg
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return errMsg{err}
		}
		if cfg.UI.ShowCompleted {
			return tasksMsg{tasks: a.store.Tasks(), note: "showing completed"}
		}
		return tasksMsg{tasks: a.store.Tasks(), note: "hiding completed"}
	}
}

// visible applies the active filter and the show-completed preference.
func (a *App) visible() []store.Task {
	tasks := store.Filter(a.tasks, a.filterQuery)
	if a.cfg.UI.ShowCompleted {
		return tasks
	}
	var out []store.Task
	for _, t := range tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

func (a *App) selected() (store.Task, bool) {
	tasks := a.visible()
	if len(tasks) == 0 || a.cursor < 0 || a.cursor >= len(tasks) {
		return store.Task{}, false
	}
	return tasks[a.cursor], true
}

func (a *App) clampCursor() {
	n := len(a.visible())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) View() string {
	body := a.renderList()
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	return body
}

func (a *App) renderList() string {
	title := titleStyle.Render("Taskpad")
	out := title + "\n"

	tasks := a.visible()
	done := 0
	for _, t := range a.tasks {
		if t.Completed {
			done++
		}
	}

	if len(tasks) == 0 {
		if a.filterQuery != "" {
			out += dimStyle.Render("  (no tasks match the filter)") + "\n"
		} else {
			out += dimStyle.Render("  (no tasks yet - press a to add one)") + "\n"
		}
	}
	for i, t := range tasks {
		marker := " "
		if i == a.cursor && a.state != viewInput {
			marker = "▶"
		}
		check := a.cfg.UI.UncheckedGlyph
		desc := t.Description
		if t.Completed {
			check = a.cfg.UI.CheckedGlyph
			desc = doneStyle.Render(desc)
		}
		out += fmt.Sprintf("%s %s %s\n", marker, check, desc)
	}

	out += dimStyle.Render(fmt.Sprintf("%d tasks, %d done", len(a.tasks), done)) + "\n"

	switch a.state {
	case viewInput:
		out += "\n" + a.input.View() + "\n"
		out += "[enter] Add  [esc] Back"
	case viewFilter:
		out += "\n" + a.filterInput.View() + "\n"
		out += "[enter] Apply  [esc] Clear"
	default:
		if a.filterQuery != "" {
			out += "\nfilter: " + a.filterQuery + "  [esc] Clear\n"
		}
		out += "\n[a] Add  [space] Toggle  [d] Delete  [/] Filter  [v] Show/hide done  [j/k] Move  [q] Quit"
	}
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderModal() string {
	return alertStyle.Render(titleStyle.Render("Alert") + "\n" + a.alertText + "\n[enter] OK")
}

// messages
type tasksMsg struct {
	tasks []store.Task
	note  string
}

type errMsg struct{ error }

// styles
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	doneStyle  = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	alertStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)
