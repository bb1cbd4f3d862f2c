package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dogeja/blueprint/internal/db"
	"github.com/dogeja/blueprint/internal/domain"
)

// SQLitePhoneCallRepo implements PhoneCallRepo using a SQLite database.
type SQLitePhoneCallRepo struct {
	conn db.DBTX
}

// NewSQLitePhoneCallRepo creates a new SQLitePhoneCallRepo.
func NewSQLitePhoneCallRepo(conn db.DBTX) *SQLitePhoneCallRepo {
	return &SQLitePhoneCallRepo{conn: conn}
}

func (r *SQLitePhoneCallRepo) Create(ctx context.Context, c *domain.PhoneCall) error {
	query := `INSERT INTO phone_calls (id, report_id, caller, subject, memo, received_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		c.ID,
		c.ReportID,
		c.Caller,
		c.Subject,
		c.Memo,
		c.ReceivedAt.Format(time.RFC3339),
		c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting phone call: %w", err)
	}
	return nil
}

func (r *SQLitePhoneCallRepo) ListByReport(ctx context.Context, reportID string) ([]*domain.PhoneCall, error) {
	query := `SELECT id, report_id, caller, subject, memo, received_at, created_at
		FROM phone_calls WHERE report_id = ? ORDER BY received_at`
	rows, err := r.conn.QueryContext(ctx, query, reportID)
	if err != nil {
		return nil, fmt.Errorf("listing phone calls: %w", err)
	}
	defer rows.Close()

	var calls []*domain.PhoneCall
	for rows.Next() {
		var c domain.PhoneCall
		var receivedAtStr, createdAtStr string
		if err := rows.Scan(&c.ID, &c.ReportID, &c.Caller, &c.Subject, &c.Memo, &receivedAtStr, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning phone call row: %w", err)
		}
		var parseErr error
		c.ReceivedAt, parseErr = time.Parse(time.RFC3339, receivedAtStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing received_at: %w", parseErr)
		}
		c.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing created_at: %w", parseErr)
		}
		calls = append(calls, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phone calls: %w", err)
	}
	return calls, nil
}

func (r *SQLitePhoneCallRepo) Delete(ctx context.Context, id string) error {
	_, err := r.conn.ExecContext(ctx, `DELETE FROM phone_calls WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting phone call: %w", err)
	}
	return nil
}
