package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slok/tisk/internal/log"
	"github.com/slok/tisk/internal/model"
	"github.com/slok/tisk/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.Repository. Every
// repository method is a single statement or transaction, so each chain
// effect commits atomically.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// SaveTask inserts or replaces the full record of a task, notes included,
// in one transaction.
func (r *Repository) SaveTask(ctx context.Context, t model.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // Rollback is safe to call after Commit

	query := `
		INSERT INTO tasks (id, title, priority, status, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			priority = excluded.priority,
			status = excluded.status,
			created_at = excluded.created_at
	`
	_, err = tx.ExecContext(ctx, query, t.ID, t.Title, t.Priority, t.Status, t.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("could not upsert task: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE task_id = ?`, t.ID); err != nil {
		return fmt.Errorf("could not replace notes: %w", err)
	}

	insertNote := `INSERT INTO notes (id, task_id, position, body, created_at) VALUES (?, ?, ?, ?, ?)`
	for i, n := range t.Notes {
		if _, err := tx.ExecContext(ctx, insertNote, n.ID, t.ID, i+1, n.Body, n.CreatedAt.Unix()); err != nil {
			return fmt.Errorf("could not insert note: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Saved task %d with %d notes", t.ID, len(t.Notes))
	return nil
}

// GetTask retrieves a task by ID.
func (r *Repository) GetTask(ctx context.Context, id model.TaskID) (*model.Task, error) {
	query := `SELECT id, title, priority, status, created_at FROM tasks WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	task, err := r.scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %d: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query task: %w", err)
	}

	notes, err := r.taskNotes(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Notes = notes

	return &task, nil
}

// ListTasks returns all tasks with their notes.
func (r *Repository) ListTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, priority, status, created_at FROM tasks ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	index := map[model.TaskID]int{}
	for rows.Next() {
		task, err := r.scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		index[task.ID] = len(tasks)
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	noteRows, err := r.db.QueryContext(ctx, `SELECT task_id, id, body, created_at FROM notes ORDER BY task_id ASC, position ASC`)
	if err != nil {
		return nil, fmt.Errorf("could not query notes: %w", err)
	}
	defer noteRows.Close()

	for noteRows.Next() {
		var taskID model.TaskID
		var n model.Note
		var createdAt int64
		if err := noteRows.Scan(&taskID, &n.ID, &n.Body, &createdAt); err != nil {
			return nil, fmt.Errorf("could not scan note row: %w", err)
		}
		n.CreatedAt = timeFromUnix(createdAt)
		if i, ok := index[taskID]; ok {
			tasks[i].Notes = append(tasks[i].Notes, n)
		}
	}
	if err := noteRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating note rows: %w", err)
	}

	return tasks, nil
}

// CloseTask marks a task as closed.
func (r *Repository) CloseTask(ctx context.Context, id model.TaskID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE tasks SET status = ? WHERE id = ?`, model.TaskStatusClosed, id)
	if err != nil {
		return fmt.Errorf("could not close task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task %d: %w", id, model.ErrNotFound)
	}

	r.logger.Debugf("Closed task %d", id)
	return nil
}

// AppendNote appends a note at the end of a task's note sequence.
func (r *Repository) AppendNote(ctx context.Context, id model.TaskID, n model.Note) error {
	query := `
		INSERT INTO notes (id, task_id, position, body, created_at)
		SELECT ?, ?, COALESCE(MAX(position), 0) + 1, ?, ?
		FROM notes WHERE task_id = ?
	`
	_, err := r.db.ExecContext(ctx, query, n.ID, id, n.Body, n.CreatedAt.Unix(), id)
	if err != nil {
		if isForeignKeyErr(err) {
			return fmt.Errorf("task %d: %w", id, model.ErrNotFound)
		}
		return fmt.Errorf("could not insert note: %w", err)
	}

	r.logger.Debugf("Appended note to task %d", id)
	return nil
}

// SetCheckout sets the checked-out task pointer (last write wins).
func (r *Repository) SetCheckout(ctx context.Context, id model.TaskID) error {
	query := `
		INSERT INTO checkout (id, task_id) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET task_id = excluded.task_id
	`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isForeignKeyErr(err) {
			return fmt.Errorf("task %d: %w", id, model.ErrNotFound)
		}
		return fmt.Errorf("could not set checkout: %w", err)
	}

	r.logger.Debugf("Checked out task %d", id)
	return nil
}

// ClearCheckout clears the checked-out task pointer. Clearing an already
// clear pointer is not an error.
func (r *Repository) ClearCheckout(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM checkout WHERE id = 1`); err != nil {
		return fmt.Errorf("could not clear checkout: %w", err)
	}

	r.logger.Debugf("Cleared checkout")
	return nil
}

// GetCheckout returns the checked-out task ID.
func (r *Repository) GetCheckout(ctx context.Context) (*model.TaskID, error) {
	var id model.TaskID
	err := r.db.QueryRowContext(ctx, `SELECT task_id FROM checkout WHERE id = 1`).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("checkout: %w", model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query checkout: %w", err)
	}

	return &id, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *Repository) scanTask(s scanner) (model.Task, error) {
	var t model.Task
	var createdAt int64

	err := s.Scan(&t.ID, &t.Title, &t.Priority, &t.Status, &createdAt)
	if err != nil {
		return model.Task{}, err
	}
	t.CreatedAt = timeFromUnix(createdAt)

	return t, nil
}

func (r *Repository) taskNotes(ctx context.Context, id model.TaskID) ([]model.Note, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, body, created_at FROM notes WHERE task_id = ? ORDER BY position ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("could not query notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		var createdAt int64
		if err := rows.Scan(&n.ID, &n.Body, &createdAt); err != nil {
			return nil, fmt.Errorf("could not scan note row: %w", err)
		}
		n.CreatedAt = timeFromUnix(createdAt)
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating note rows: %w", err)
	}

	return notes, nil
}

func isForeignKeyErr(err error) bool {
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func timeFromUnix(unix int64) time.Time { return time.Unix(unix, 0).UTC() }
