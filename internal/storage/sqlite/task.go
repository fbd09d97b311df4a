package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agalitsyn/taskdash/internal/model"
)

type TaskStorage struct {
	db *sql.DB
}

func NewTaskStorage(db *sql.DB) *TaskStorage {
	return &TaskStorage{db: db}
}

const taskColumns = `id, description, status, owner, category, project, initiative, tags, priority,
	status_update, desired_outcome, estimate_minutes, start_date, due_date, scheduled_time,
	duration_minutes, actual_minutes, progress, dependencies`

func (s *TaskStorage) CreateTask(ctx context.Context, task *model.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	exists, err := s.taskExists(ctx, task.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("could not create task %s: %w", task.ID, model.ErrTaskExists)
	}

	_, err = s.db.ExecContext(ctx, query,
		task.ID,
		task.Description,
		string(task.Status),
		task.Owner,
		task.Category,
		task.Project,
		task.Initiative,
		strings.Join(task.Tags, ","),
		string(task.Priority),
		task.StatusUpdate,
		task.DesiredOutcome,
		task.EstimateMinutes,
		nullDate(task.StartDate),
		nullDate(task.DueDate),
		task.ScheduledTime,
		task.DurationMinutes,
		task.ActualMinutes,
		task.Progress,
		strings.Join(task.Dependencies, ","),
	)
	if err != nil {
		return fmt.Errorf("could not create task: %w", err)
	}
	return nil
}

func (s *TaskStorage) UpdateTask(ctx context.Context, task *model.Task) error {
	query := `
		UPDATE tasks
		SET description = ?, status = ?, owner = ?, category = ?, project = ?, initiative = ?, tags = ?,
			priority = ?, status_update = ?, desired_outcome = ?, estimate_minutes = ?, start_date = ?,
			due_date = ?, scheduled_time = ?, duration_minutes = ?, actual_minutes = ?, progress = ?,
			dependencies = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		task.Description,
		string(task.Status),
		task.Owner,
		task.Category,
		task.Project,
		task.Initiative,
		strings.Join(task.Tags, ","),
		string(task.Priority),
		task.StatusUpdate,
		task.DesiredOutcome,
		task.EstimateMinutes,
		nullDate(task.StartDate),
		nullDate(task.DueDate),
		task.ScheduledTime,
		task.DurationMinutes,
		task.ActualMinutes,
		task.Progress,
		strings.Join(task.Dependencies, ","),
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("could not update task %s: %w", task.ID, model.ErrTaskNotFound)
	}
	return nil
}

// FetchTasks returns tasks in insertion order.
func (s *TaskStorage) FetchTasks(ctx context.Context) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY rowid ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not fetch tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate tasks: %w", err)
	}

	return tasks, nil
}

func (s *TaskStorage) FetchTaskByID(ctx context.Context, id string) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskStorage) taskExists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT COUNT(*) FROM tasks WHERE id = ?`
	var count int
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return false, fmt.Errorf("could not check task: %w", err)
	}
	return count > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*model.Task, error) {
	var (
		task               model.Task
		status, priority   string
		tags, dependencies string
		startDate, dueDate sql.NullString
	)

	err := row.Scan(
		&task.ID,
		&task.Description,
		&status,
		&task.Owner,
		&task.Category,
		&task.Project,
		&task.Initiative,
		&tags,
		&priority,
		&task.StatusUpdate,
		&task.DesiredOutcome,
		&task.EstimateMinutes,
		&startDate,
		&dueDate,
		&task.ScheduledTime,
		&task.DurationMinutes,
		&task.ActualMinutes,
		&task.Progress,
		&dependencies,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("could not scan task: %w", err)
	}

	task.Status = model.TaskStatus(status)
	task.Priority = model.Priority(priority)
	task.Tags = model.SplitList(tags)
	task.Dependencies = model.SplitList(dependencies)
	if startDate.Valid {
		task.StartDate, _ = model.ParseDate(startDate.String)
	}
	if dueDate.Valid {
		task.DueDate, _ = model.ParseDate(dueDate.String)
	}

	return &task, nil
}

func nullDate(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339), Valid: true}
}
