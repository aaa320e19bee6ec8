package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/tacka/internal/model"
)

// GetDashboardStats counts platform activity. The "my" counters are for userID.
func GetDashboardStats(ctx context.Context, db *sql.DB, userID int64) (*model.DashboardStats, error) {
	s := &model.DashboardStats{}
	err := db.QueryRowContext(ctx,
		`SELECT
		    COUNT(*) FILTER (WHERE type = 'lost' AND status = 'active'),
		    COUNT(*) FILTER (WHERE type = 'found' AND status = 'active'),
		    COUNT(*) FILTER (WHERE status = 'reunited'),
		    COUNT(*) FILTER (WHERE reporter_id = ?)
		 FROM reports`, userID,
	).Scan(&s.TotalLost, &s.TotalFound, &s.TotalReunited, &s.MyReports)
	if err != nil {
		return nil, fmt.Errorf("counting reports: %w", err)
	}

	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chats c JOIN reports r ON r.id = c.report_id
		 WHERE r.reporter_id = ? OR c.inquirer_id = ?`, userID, userID,
	).Scan(&s.MyMessages)
	if err != nil {
		return nil, fmt.Errorf("counting chats: %w", err)
	}
	return s, nil
}
