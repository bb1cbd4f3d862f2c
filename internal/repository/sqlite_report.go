package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dogeja/blueprint/internal/db"
	"github.com/dogeja/blueprint/internal/domain"
)

const reportColumns = `id, date, condition, work_start, work_end, location, created_at, updated_at`

// SQLiteReportRepo implements ReportRepo using a SQLite database.
type SQLiteReportRepo struct {
	conn db.DBTX
}

// NewSQLiteReportRepo creates a new SQLiteReportRepo. The conn may be a
// *sql.DB or a transaction-scoped DBTX.
func NewSQLiteReportRepo(conn db.DBTX) *SQLiteReportRepo {
	return &SQLiteReportRepo{conn: conn}
}

func (r *SQLiteReportRepo) Create(ctx context.Context, rep *domain.DailyReport) error {
	query := `INSERT INTO daily_reports (id, date, condition, work_start, work_end, location, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		rep.ID,
		rep.Date,
		rep.Condition,
		rep.WorkStart,
		rep.WorkEnd,
		rep.Location,
		rep.CreatedAt.Format(time.RFC3339),
		rep.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting daily report: %w", err)
	}
	return nil
}

func (r *SQLiteReportRepo) GetByID(ctx context.Context, id string) (*domain.DailyReport, error) {
	query := `SELECT ` + reportColumns + ` FROM daily_reports WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)
	return r.scanReport(row)
}

func (r *SQLiteReportRepo) GetByDate(ctx context.Context, date string) (*domain.DailyReport, error) {
	query := `SELECT ` + reportColumns + ` FROM daily_reports WHERE date = ?`
	row := r.conn.QueryRowContext(ctx, query, date)
	return r.scanReport(row)
}

func (r *SQLiteReportRepo) ListByDateRange(ctx context.Context, from, to string) ([]*domain.DailyReport, error) {
	query := `SELECT ` + reportColumns + ` FROM daily_reports WHERE date BETWEEN ? AND ? ORDER BY date`
	rows, err := r.conn.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing daily reports: %w", err)
	}
	defer rows.Close()

	var reports []*domain.DailyReport
	for rows.Next() {
		rep, err := r.scanReportFromRows(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily reports: %w", err)
	}
	return reports, nil
}

func (r *SQLiteReportRepo) Update(ctx context.Context, rep *domain.DailyReport) error {
	query := `UPDATE daily_reports SET condition = ?, work_start = ?, work_end = ?, location = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		rep.Condition,
		rep.WorkStart,
		rep.WorkEnd,
		rep.Location,
		rep.UpdatedAt.Format(time.RFC3339),
		rep.ID,
	)
	if err != nil {
		return fmt.Errorf("updating daily report: %w", err)
	}
	return nil
}

func (r *SQLiteReportRepo) Delete(ctx context.Context, id string) error {
	_, err := r.conn.ExecContext(ctx, `DELETE FROM daily_reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting daily report: %w", err)
	}
	return nil
}

// scanReport scans a single report row from a *sql.Row.
func (r *SQLiteReportRepo) scanReport(row *sql.Row) (*domain.DailyReport, error) {
	var rep domain.DailyReport
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&rep.ID, &rep.Date, &rep.Condition,
		&rep.WorkStart, &rep.WorkEnd, &rep.Location,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("daily report: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning daily report: %w", err)
	}

	if err := parseReportTimes(&rep, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &rep, nil
}

// scanReportFromRows scans a single report row from *sql.Rows.
func (r *SQLiteReportRepo) scanReportFromRows(rows *sql.Rows) (*domain.DailyReport, error) {
	var rep domain.DailyReport
	var createdAtStr, updatedAtStr string

	err := rows.Scan(
		&rep.ID, &rep.Date, &rep.Condition,
		&rep.WorkStart, &rep.WorkEnd, &rep.Location,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning daily report row: %w", err)
	}

	if err := parseReportTimes(&rep, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &rep, nil
}

func parseReportTimes(rep *domain.DailyReport, createdAtStr, updatedAtStr string) error {
	var parseErr error
	rep.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return fmt.Errorf("parsing created_at: %w", parseErr)
	}
	rep.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return nil
}
