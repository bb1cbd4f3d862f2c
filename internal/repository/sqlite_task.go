package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dogeja/blueprint/internal/db"
	"github.com/dogeja/blueprint/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, report_id, title, description, category, priority,
		progress_rate, status, estimated_min, actual_min, goal_id, order_index,
		created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	conn db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo. The conn may be a *sql.DB
// or a transaction-scoped DBTX.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{conn: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (id, report_id, title, description, category, priority,
		progress_rate, status, estimated_min, actual_min, goal_id, order_index,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		t.ID,
		t.ReportID,
		t.Title,
		t.Description,
		string(t.Category),
		t.Priority,
		t.ProgressRate,
		string(t.Status),
		t.EstimatedMin,
		t.ActualMin,
		nullableStrToValue(t.GoalID),
		t.OrderIndex,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)
	return r.scanTask(row)
}

func (r *SQLiteTaskRepo) ListByReport(ctx context.Context, reportID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE report_id = ?
		ORDER BY order_index, created_at`
	rows, err := r.conn.QueryContext(ctx, query, reportID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by report: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListIncompleteByReport(ctx context.Context, reportID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE report_id = ? AND progress_rate < 100 AND status != 'cancelled'
		ORDER BY order_index, created_at`
	rows, err := r.conn.QueryContext(ctx, query, reportID)
	if err != nil {
		return nil, fmt.Errorf("listing incomplete tasks: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET title = ?, description = ?, category = ?, priority = ?,
		progress_rate = ?, status = ?, estimated_min = ?, actual_min = ?, goal_id = ?,
		order_index = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		t.Title,
		t.Description,
		string(t.Category),
		t.Priority,
		t.ProgressRate,
		string(t.Status),
		t.EstimatedMin,
		t.ActualMin,
		nullableStrToValue(t.GoalID),
		t.OrderIndex,
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) SetOrderIndex(ctx context.Context, id string, orderIndex int) error {
	query := `UPDATE tasks SET order_index = ?, updated_at = ? WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, orderIndex, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("setting task order: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	_, err := r.conn.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) StatsByDateRange(ctx context.Context, from, to string) ([]TaskDayStats, error) {
	query := `SELECT r.date, r.id, r.condition,
			COUNT(t.id),
			COALESCE(SUM(CASE WHEN t.progress_rate >= 100 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(t.actual_min), 0)
		FROM daily_reports r
		LEFT JOIN tasks t ON t.report_id = r.id AND t.status != 'cancelled'
		WHERE r.date BETWEEN ? AND ?
		GROUP BY r.id
		ORDER BY r.date`
	rows, err := r.conn.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying task day stats: %w", err)
	}
	defer rows.Close()

	var stats []TaskDayStats
	for rows.Next() {
		var s TaskDayStats
		if err := rows.Scan(&s.Date, &s.ReportID, &s.Condition, &s.Total, &s.Completed, &s.ActualMin); err != nil {
			return nil, fmt.Errorf("scanning task day stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task day stats: %w", err)
	}
	return stats, nil
}

// scanTask scans a single task from a *sql.Row.
func (r *SQLiteTaskRepo) scanTask(row *sql.Row) (*domain.Task, error) {
	var t domain.Task
	var categoryStr, statusStr, createdAtStr, updatedAtStr string
	var goalIDStr sql.NullString

	err := row.Scan(
		&t.ID, &t.ReportID, &t.Title, &t.Description, &categoryStr, &t.Priority,
		&t.ProgressRate, &statusStr, &t.EstimatedMin, &t.ActualMin, &goalIDStr,
		&t.OrderIndex, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	return populateTask(&t, categoryStr, statusStr, goalIDStr, createdAtStr, updatedAtStr)
}

// scanTasks scans multiple tasks from *sql.Rows.
func (r *SQLiteTaskRepo) scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		var categoryStr, statusStr, createdAtStr, updatedAtStr string
		var goalIDStr sql.NullString

		err := rows.Scan(
			&t.ID, &t.ReportID, &t.Title, &t.Description, &categoryStr, &t.Priority,
			&t.ProgressRate, &statusStr, &t.EstimatedMin, &t.ActualMin, &goalIDStr,
			&t.OrderIndex, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}

		task, err := populateTask(&t, categoryStr, statusStr, goalIDStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// populateTask fills in parsed fields on a Task after scanning raw values.
func populateTask(t *domain.Task, categoryStr, statusStr string, goalIDStr sql.NullString, createdAtStr, updatedAtStr string) (*domain.Task, error) {
	t.Category = domain.TaskCategory(categoryStr)
	t.Status = domain.TaskStatus(statusStr)
	t.GoalID = strFromNullable(goalIDStr)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return t, nil
}
