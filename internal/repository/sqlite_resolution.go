package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dogeja/blueprint/internal/db"
	"github.com/dogeja/blueprint/internal/domain"
)

// SQLiteResolutionRepo implements ResolutionRepo using a SQLite database.
// One row per date; the row is the durable "already handled" marker that
// keeps the carry-over prompt from re-appearing for a resolved date.
type SQLiteResolutionRepo struct {
	conn db.DBTX
}

// NewSQLiteResolutionRepo creates a new SQLiteResolutionRepo.
func NewSQLiteResolutionRepo(conn db.DBTX) *SQLiteResolutionRepo {
	return &SQLiteResolutionRepo{conn: conn}
}

func (r *SQLiteResolutionRepo) Get(ctx context.Context, date string) (*domain.CarryOverResolution, error) {
	query := `SELECT date, outcome, moved_count, resolved_at FROM carryover_resolutions WHERE date = ?`
	row := r.conn.QueryRowContext(ctx, query, date)

	var res domain.CarryOverResolution
	var outcomeStr, resolvedAtStr string
	err := row.Scan(&res.Date, &outcomeStr, &res.MovedCount, &resolvedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("carry-over resolution: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning carry-over resolution: %w", err)
	}

	res.Outcome = domain.ResolutionOutcome(outcomeStr)
	res.ResolvedAt, err = time.Parse(time.RFC3339, resolvedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing resolved_at: %w", err)
	}
	return &res, nil
}

func (r *SQLiteResolutionRepo) ListByDateRange(ctx context.Context, from, to string) ([]*domain.CarryOverResolution, error) {
	query := `SELECT date, outcome, moved_count, resolved_at FROM carryover_resolutions
		WHERE date BETWEEN ? AND ? ORDER BY date`
	rows, err := r.conn.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing carry-over resolutions: %w", err)
	}
	defer rows.Close()

	var resolutions []*domain.CarryOverResolution
	for rows.Next() {
		var res domain.CarryOverResolution
		var outcomeStr, resolvedAtStr string
		if err := rows.Scan(&res.Date, &outcomeStr, &res.MovedCount, &resolvedAtStr); err != nil {
			return nil, fmt.Errorf("scanning carry-over resolution row: %w", err)
		}
		res.Outcome = domain.ResolutionOutcome(outcomeStr)
		res.ResolvedAt, err = time.Parse(time.RFC3339, resolvedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing resolved_at: %w", err)
		}
		resolutions = append(resolutions, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating carry-over resolutions: %w", err)
	}
	return resolutions, nil
}

func (r *SQLiteResolutionRepo) Upsert(ctx context.Context, res *domain.CarryOverResolution) error {
	query := `INSERT INTO carryover_resolutions (date, outcome, moved_count, resolved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET outcome = excluded.outcome,
			moved_count = excluded.moved_count, resolved_at = excluded.resolved_at`
	_, err := r.conn.ExecContext(ctx, query,
		res.Date,
		string(res.Outcome),
		res.MovedCount,
		res.ResolvedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting carry-over resolution: %w", err)
	}
	return nil
}
