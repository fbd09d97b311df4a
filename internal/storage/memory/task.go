package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/agalitsyn/taskdash/internal/model"
)

// TaskStorage keeps tasks in insertion order. Returned tasks are copies, so
// callers cannot mutate stored records without going through UpdateTask.
type TaskStorage struct {
	mu    sync.RWMutex
	tasks []model.Task
	index map[string]int
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{index: make(map[string]int)}
}

func (s *TaskStorage) CreateTask(_ context.Context, task *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[task.ID]; ok {
		return fmt.Errorf("could not create task %s: %w", task.ID, model.ErrTaskExists)
	}
	s.index[task.ID] = len(s.tasks)
	s.tasks = append(s.tasks, task.Clone())
	return nil
}

func (s *TaskStorage) UpdateTask(_ context.Context, task *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[task.ID]
	if !ok {
		return fmt.Errorf("could not update task %s: %w", task.ID, model.ErrTaskNotFound)
	}
	s.tasks[i] = task.Clone()
	return nil
}

func (s *TaskStorage) FetchTaskByID(_ context.Context, id string) (*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return nil, model.ErrTaskNotFound
	}
	task := s.tasks[i].Clone()
	return &task, nil
}

func (s *TaskStorage) FetchTasks(_ context.Context) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		tasks[i] = t.Clone()
	}
	return tasks, nil
}
