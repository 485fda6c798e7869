package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"taskpad/internal/config"
	"taskpad/internal/database"
	"taskpad/internal/database/repository"
	"taskpad/internal/store"
)

func newTestApp(t *testing.T) (*App, *store.TaskStore, context.Context) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	taskStore := store.New(repository.NewSnapshotRepo(db))
	cfg := config.Config{
		UI: config.UIConfig{CheckedGlyph: "[x]", UncheckedGlyph: "[ ]", ShowCompleted: true},
	}
	app := New(ctx, cfg, taskStore)

	// run the initial load the way the program runner would
	msg := app.Init()()
	_, _ = app.Update(msg)

	return app, taskStore, ctx
}

// drive feeds messages through Update, executing any returned command once
// and feeding its result back, like the program runner does.
func drive(a *App, msgs ...tea.Msg) {
	for _, msg := range msgs {
		_, cmd := a.Update(msg)
		for cmd != nil {
			next := cmd()
			if next == nil {
				break
			}
			_, cmd = a.Update(next)
		}
	}
}

func keyRunes(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAddFlow(t *testing.T) {
	t.Parallel()
	app, taskStore, _ := newTestApp(t)

	drive(app, keyRunes("a"))
	require.Equal(t, viewInput, app.state)

	drive(app, keyRunes("Buy milk"), tea.KeyMsg{Type: tea.KeyEnter})

	tasks := taskStore.Tasks()
	require.Len(t, tasks, 1)
	require.Equal(t, "Buy milk", tasks[0].Description)
	require.False(t, tasks[0].Completed)

	// incremental add keeps the form open with a cleared field
	require.Equal(t, viewInput, app.state)
	require.Empty(t, app.input.Value())

	drive(app, tea.KeyMsg{Type: tea.KeyEsc})
	require.Contains(t, app.View(), "[ ] Buy milk")
}

func TestEmptySubmitShowsAlert(t *testing.T) {
	t.Parallel()
	app, taskStore, _ := newTestApp(t)

	drive(app, keyRunes("a"), tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, modalAlert, app.modal)
	require.Contains(t, app.View(), "Please enter a task description.")
	require.Equal(t, 0, taskStore.Len())

	// the alert blocks input until dismissed
	drive(app, keyRunes("x"))
	require.Equal(t, modalAlert, app.modal)
	require.Equal(t, 0, taskStore.Len())

	drive(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, modalNone, app.modal)

	// whitespace-only input is rejected the same way
	drive(app, keyRunes("   "), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, modalAlert, app.modal)
	require.Equal(t, 0, taskStore.Len())
}

func TestToggleAndDelete(t *testing.T) {
	t.Parallel()
	app, taskStore, ctx := newTestApp(t)

	_, err := taskStore.Add(ctx, "first")
	require.NoError(t, err)
	_, err = taskStore.Add(ctx, "second")
	require.NoError(t, err)
	drive(app, tasksMsg{tasks: taskStore.Tasks()})

	// space toggles the task under the cursor
	drive(app, tea.KeyMsg{Type: tea.KeySpace})
	tasks := taskStore.Tasks()
	require.True(t, tasks[0].Completed)
	require.Contains(t, app.View(), "[x]")

	// toggling again restores it
	drive(app, tea.KeyMsg{Type: tea.KeySpace})
	require.False(t, taskStore.Tasks()[0].Completed)

	// d deletes the selected task and the rest keep their order
	drive(app, keyRunes("d"))
	tasks = taskStore.Tasks()
	require.Len(t, tasks, 1)
	require.Equal(t, "second", tasks[0].Description)
	require.NotContains(t, app.View(), "first")
}

func TestFilterNarrowsList(t *testing.T) {
	t.Parallel()
	app, taskStore, ctx := newTestApp(t)

	_, err := taskStore.Add(ctx, "Buy milk")
	require.NoError(t, err)
	_, err = taskStore.Add(ctx, "Call plumber")
	require.NoError(t, err)
	drive(app, tasksMsg{tasks: taskStore.Tasks()})

	drive(app, keyRunes("/"), keyRunes("buy"), tea.KeyMsg{Type: tea.KeyEnter})

	view := app.View()
	require.Contains(t, view, "Buy milk")
	require.NotContains(t, view, "Call plumber")

	// esc clears the filter
	drive(app, tea.KeyMsg{Type: tea.KeyEsc})
	require.Contains(t, app.View(), "Call plumber")
}

func TestShowHideCompleted(t *testing.T) {
	t.Setenv("TASKPAD_CONFIG", filepath.Join(t.TempDir(), "config.toml"))
	app, taskStore, ctx := newTestApp(t)

	_, err := taskStore.Add(ctx, "done task")
	require.NoError(t, err)
	done := taskStore.Tasks()[0]
	require.NoError(t, taskStore.Toggle(ctx, done.ID))
	_, err = taskStore.Add(ctx, "open task")
	require.NoError(t, err)
	drive(app, tasksMsg{tasks: taskStore.Tasks()})

	drive(app, keyRunes("v"))
	view := app.View()
	require.NotContains(t, view, "done task")
	require.Contains(t, view, "open task")

	// the preference was written to the config file
	saved, err := config.Load()
	require.NoError(t, err)
	require.False(t, saved.UI.ShowCompleted)

	drive(app, keyRunes("v"))
	require.Contains(t, app.View(), "done task")
}

func TestDeleteOnEmptyListIsNoop(t *testing.T) {
	t.Parallel()
	app, taskStore, _ := newTestApp(t)

	drive(app, keyRunes("d"), tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, 0, taskStore.Len())
	require.Contains(t, app.View(), "no tasks yet")
}
