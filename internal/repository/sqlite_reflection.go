package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dogeja/blueprint/internal/db"
	"github.com/dogeja/blueprint/internal/domain"
)

// SQLiteReflectionRepo implements ReflectionRepo using a SQLite database.
type SQLiteReflectionRepo struct {
	conn db.DBTX
}

// NewSQLiteReflectionRepo creates a new SQLiteReflectionRepo.
func NewSQLiteReflectionRepo(conn db.DBTX) *SQLiteReflectionRepo {
	return &SQLiteReflectionRepo{conn: conn}
}

func (r *SQLiteReflectionRepo) Create(ctx context.Context, ref *domain.Reflection) error {
	query := `INSERT INTO reflections (id, report_id, content, mood, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		ref.ID,
		ref.ReportID,
		ref.Content,
		ref.Mood,
		ref.CreatedAt.Format(time.RFC3339),
		ref.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting reflection: %w", err)
	}
	return nil
}

func (r *SQLiteReflectionRepo) GetByID(ctx context.Context, id string) (*domain.Reflection, error) {
	query := `SELECT id, report_id, content, mood, created_at, updated_at FROM reflections WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	var ref domain.Reflection
	var createdAtStr, updatedAtStr string
	err := row.Scan(&ref.ID, &ref.ReportID, &ref.Content, &ref.Mood, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("reflection: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning reflection: %w", err)
	}
	if err := parseReflectionTimes(&ref, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *SQLiteReflectionRepo) ListByReport(ctx context.Context, reportID string) ([]*domain.Reflection, error) {
	query := `SELECT id, report_id, content, mood, created_at, updated_at
		FROM reflections WHERE report_id = ? ORDER BY created_at`
	rows, err := r.conn.QueryContext(ctx, query, reportID)
	if err != nil {
		return nil, fmt.Errorf("listing reflections: %w", err)
	}
	defer rows.Close()

	var refs []*domain.Reflection
	for rows.Next() {
		var ref domain.Reflection
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&ref.ID, &ref.ReportID, &ref.Content, &ref.Mood, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning reflection row: %w", err)
		}
		if err := parseReflectionTimes(&ref, createdAtStr, updatedAtStr); err != nil {
			return nil, err
		}
		refs = append(refs, &ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reflections: %w", err)
	}
	return refs, nil
}

func (r *SQLiteReflectionRepo) Update(ctx context.Context, ref *domain.Reflection) error {
	query := `UPDATE reflections SET content = ?, mood = ?, updated_at = ? WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		ref.Content,
		ref.Mood,
		ref.UpdatedAt.Format(time.RFC3339),
		ref.ID,
	)
	if err != nil {
		return fmt.Errorf("updating reflection: %w", err)
	}
	return nil
}

func (r *SQLiteReflectionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.conn.ExecContext(ctx, `DELETE FROM reflections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting reflection: %w", err)
	}
	return nil
}

func parseReflectionTimes(ref *domain.Reflection, createdAtStr, updatedAtStr string) error {
	var parseErr error
	ref.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return fmt.Errorf("parsing created_at: %w", parseErr)
	}
	ref.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return nil
}
