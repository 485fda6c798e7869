// Package store holds the in-memory task list and its synchronization
// with the snapshot storage backend.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// SnapshotKey is the single storage key the full task list lives under.
const SnapshotKey = "tasks"

// ErrEmptyDescription is returned when adding a task with no text.
var ErrEmptyDescription = errors.New("task description is empty")

// Task is a to-do entry. IDs are assigned at creation and are the only
// handle used for toggle/delete, so tasks with identical text stay
// distinguishable. The isCompleted JSON name matches stored snapshots
// written before IDs existed.
type Task struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"isCompleted"`
}

// Snapshots is the storage a TaskStore persists through.
type Snapshots interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// TaskStore owns the ordered task sequence. Every mutation rewrites the
// full snapshot under the lock, so the stored value always equals the
// in-memory list. Methods are safe for concurrent use; the TUI runs
// mutations on command goroutines.
type TaskStore struct {
	snapshots Snapshots

	mu    sync.Mutex
	tasks []Task
}

func New(snapshots Snapshots) *TaskStore {
	return &TaskStore{snapshots: snapshots}
}

// Load restores the task list from the snapshot. A missing snapshot or one
// that fails to decode yields an empty list, not an error. Entries from
// older snapshots that carry no ID are assigned one, and the repaired
// snapshot is written back so later loads are stable.
func (s *TaskStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = nil

	data, err := s.snapshots.Get(ctx, SnapshotKey)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil // corrupt snapshot reads as empty
	}

	assigned := false
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = uuid.NewString()
			assigned = true
		}
	}
	s.tasks = tasks
	if assigned {
		return s.persist(ctx)
	}
	return nil
}

// Tasks returns a copy of the sequence in insertion order.
func (s *TaskStore) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *TaskStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Get returns the task with the given ID.
func (s *TaskStore) Get(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Add appends a new uncompleted task and persists. Empty or
// whitespace-only descriptions are rejected with ErrEmptyDescription and
// leave both the list and the snapshot untouched.
func (s *TaskStore) Add(ctx context.Context, description string) (Task, error) {
	if strings.TrimSpace(description) == "" {
		return Task{}, ErrEmptyDescription
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := Task{ID: uuid.NewString(), Description: description, Completed: false}
	s.tasks = append(s.tasks, t)
	return t, s.persist(ctx)
}

// Toggle flips the completion flag of the task with the given ID and
// persists. Unknown IDs are a silent no-op.
func (s *TaskStore) Toggle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			return s.persist(ctx)
		}
	}
	return nil
}

// Delete removes the task with the given ID, keeping the relative order of
// the rest, and persists. Unknown IDs are a silent no-op.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// Persist overwrites the stored snapshot with the full serialized list.
func (s *TaskStore) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx)
}

// persist is Persist with the lock already held, so mutate-and-write is
// one atomic step.
func (s *TaskStore) persist(ctx context.Context) error {
	tasks := s.tasks
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return s.snapshots.Put(ctx, SnapshotKey, data)
}
