package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/tacka/internal/model"
)

// reportSelect reads reports with their reporter's username. Soft-deleted
// reporters keep their name on old reports.
const reportSelect = `SELECT r.id, r.type, r.name, r.species, r.breed, r.color, r.location, r.date,
	r.description, r.contact_info, r.reward, r.status, r.reporter_id, u.username, r.created_at
	FROM reports r JOIN users u ON u.id = r.reporter_id`

// CreateReport stores a finalized report with its images and returns the
// stored copy. The report is owned by r.ReporterID. A report without an ID
// gets a fresh one.
func CreateReport(ctx context.Context, db *sql.DB, r model.Report) (*model.Report, error) {
	if !r.Kind().Valid() {
		return nil, fmt.Errorf("creating report: unknown type %q", r.Kind())
	}
	if r.ReporterID == 0 {
		return nil, errors.New("creating report: reporter required")
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = model.StatusActive
	}

	var name, reward sql.NullString
	if l, ok := r.Details.(model.Lost); ok {
		name = sql.NullString{String: l.Name, Valid: true}
		reward = sql.NullString{String: l.Reward, Valid: l.Reward != ""}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reports (id, type, name, species, breed, color, location, date, description,
		                      contact_info, reward, status, reporter_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Kind(), name, r.Species, r.Breed, r.Color, r.Location, r.Date, r.Description,
		r.ContactInfo, reward, r.Status, r.ReporterID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating report: %w", err)
	}

	for i, ref := range r.Images {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO report_images (report_id, position, ref) VALUES (?, ?, ?)`,
			r.ID, i, ref,
		); err != nil {
			return nil, fmt.Errorf("adding report image: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing report: %w", err)
	}

	return GetReport(ctx, db, r.ID)
}

// GetReport returns a report by ID, or model.ErrNotFound.
func GetReport(ctx context.Context, db *sql.DB, id string) (*model.Report, error) {
	row := db.QueryRowContext(ctx, reportSelect+` WHERE r.id = ?`, id)
	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %q: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting report: %w", err)
	}

	images, err := reportImages(ctx, db, id)
	if err != nil {
		return nil, err
	}
	r.Images = images
	return r, nil
}

// ListReports returns reports in insertion order, optionally filtered by
// type and status.
func ListReports(ctx context.Context, db *sql.DB, kind model.Kind, status model.Status) ([]model.Report, error) {
	query := reportSelect + ` WHERE 1=1`
	var args []any

	if kind != "" {
		query += ` AND r.type = ?`
		args = append(args, kind)
	}
	if status != "" {
		query += ` AND r.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY r.seq`

	return listReports(ctx, db, query, args...)
}

// ListRecentReports returns the newest reports first.
func ListRecentReports(ctx context.Context, db *sql.DB, limit int) ([]model.Report, error) {
	return listReports(ctx, db, reportSelect+` ORDER BY r.seq DESC LIMIT ?`, limit)
}

func listReports(ctx context.Context, db *sql.DB, query string, args ...any) ([]model.Report, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}

	var reports []model.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		reports = append(reports, *r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	rows.Close()

	// Images are loaded after the cursor is closed; in-memory databases
	// only have one connection.
	for i := range reports {
		images, err := reportImages(ctx, db, reports[i].ID)
		if err != nil {
			return nil, err
		}
		reports[i].Images = images
	}
	return reports, nil
}

// SetReportStatus changes a report's status.
func SetReportStatus(ctx context.Context, db *sql.DB, id string, status model.Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}
	result, err := db.ExecContext(ctx,
		`UPDATE reports SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("updating report status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("report %q: %w", id, model.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(s scanner) (*model.Report, error) {
	var (
		r                   model.Report
		kind                model.Kind
		name, breed, reward sql.NullString
	)
	err := s.Scan(&r.ID, &kind, &name, &r.Species, &breed, &r.Color, &r.Location, &r.Date,
		&r.Description, &r.ContactInfo, &reward, &r.Status, &r.ReporterID, &r.Reporter, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	r.Breed = breed.String
	r.Details, err = model.NewDetails(kind, name.String, reward.String)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func reportImages(ctx context.Context, db *sql.DB, reportID string) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT ref FROM report_images WHERE report_id = ? ORDER BY position`, reportID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing report images: %w", err)
	}
	defer rows.Close()

	images := []string{}
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("scanning report image: %w", err)
		}
		images = append(images, ref)
	}
	return images, rows.Err()
}
