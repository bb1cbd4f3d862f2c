package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dogeja/blueprint/internal/db"
	"github.com/dogeja/blueprint/internal/domain"
)

const goalColumns = `id, parent_id, title, description, period, target_date, status, progress_rate, created_at, updated_at`

// SQLiteGoalRepo implements GoalRepo using a SQLite database.
type SQLiteGoalRepo struct {
	conn db.DBTX
}

// NewSQLiteGoalRepo creates a new SQLiteGoalRepo.
func NewSQLiteGoalRepo(conn db.DBTX) *SQLiteGoalRepo {
	return &SQLiteGoalRepo{conn: conn}
}

func (r *SQLiteGoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	query := `INSERT INTO goals (id, parent_id, title, description, period, target_date, status, progress_rate, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		g.ID,
		nullableStrToValue(g.ParentID),
		g.Title,
		g.Description,
		string(g.Period),
		nullableTimeToString(g.TargetDate, dateLayout),
		string(g.Status),
		g.ProgressRate,
		g.CreatedAt.Format(time.RFC3339),
		g.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

func (r *SQLiteGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)
	return r.scanGoal(row)
}

func (r *SQLiteGoalRepo) List(ctx context.Context, includeClosed bool) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals ORDER BY created_at`
	if !includeClosed {
		query = `SELECT ` + goalColumns + ` FROM goals WHERE status = 'active' ORDER BY created_at`
	}
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()
	return r.scanGoals(rows)
}

func (r *SQLiteGoalRepo) ListRoots(ctx context.Context) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE parent_id IS NULL ORDER BY created_at`
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing root goals: %w", err)
	}
	defer rows.Close()
	return r.scanGoals(rows)
}

func (r *SQLiteGoalRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE parent_id = ? ORDER BY created_at`
	rows, err := r.conn.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing child goals: %w", err)
	}
	defer rows.Close()
	return r.scanGoals(rows)
}

func (r *SQLiteGoalRepo) Update(ctx context.Context, g *domain.Goal) error {
	query := `UPDATE goals SET parent_id = ?, title = ?, description = ?, period = ?,
		target_date = ?, status = ?, progress_rate = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		nullableStrToValue(g.ParentID),
		g.Title,
		g.Description,
		string(g.Period),
		nullableTimeToString(g.TargetDate, dateLayout),
		string(g.Status),
		g.ProgressRate,
		g.UpdatedAt.Format(time.RFC3339),
		g.ID,
	)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}
	return nil
}

func (r *SQLiteGoalRepo) Delete(ctx context.Context, id string) error {
	// Children are re-parented to NULL by the schema's ON DELETE SET NULL.
	_, err := r.conn.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	return nil
}

// scanGoal scans a single goal from a *sql.Row.
func (r *SQLiteGoalRepo) scanGoal(row *sql.Row) (*domain.Goal, error) {
	var g domain.Goal
	var periodStr, statusStr, createdAtStr, updatedAtStr string
	var parentIDStr, targetDateStr sql.NullString

	err := row.Scan(
		&g.ID, &parentIDStr, &g.Title, &g.Description, &periodStr,
		&targetDateStr, &statusStr, &g.ProgressRate, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("goal: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning goal: %w", err)
	}

	return populateGoal(&g, periodStr, statusStr, parentIDStr, targetDateStr, createdAtStr, updatedAtStr)
}

// scanGoals scans multiple goals from *sql.Rows.
func (r *SQLiteGoalRepo) scanGoals(rows *sql.Rows) ([]*domain.Goal, error) {
	var goals []*domain.Goal
	for rows.Next() {
		var g domain.Goal
		var periodStr, statusStr, createdAtStr, updatedAtStr string
		var parentIDStr, targetDateStr sql.NullString

		err := rows.Scan(
			&g.ID, &parentIDStr, &g.Title, &g.Description, &periodStr,
			&targetDateStr, &statusStr, &g.ProgressRate, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning goal row: %w", err)
		}

		goal, err := populateGoal(&g, periodStr, statusStr, parentIDStr, targetDateStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}
	return goals, nil
}

func populateGoal(g *domain.Goal, periodStr, statusStr string, parentIDStr, targetDateStr sql.NullString, createdAtStr, updatedAtStr string) (*domain.Goal, error) {
	g.Period = domain.GoalPeriod(periodStr)
	g.Status = domain.GoalStatus(statusStr)
	g.ParentID = strFromNullable(parentIDStr)
	g.TargetDate = parseNullableTime(targetDateStr, dateLayout)

	var parseErr error
	g.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	g.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return g, nil
}
