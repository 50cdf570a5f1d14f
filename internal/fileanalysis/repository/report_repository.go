package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/edupipe/antiplagiarism/internal/fileanalysis/models"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, reportID string) (*models.Report, error)
	GetByWorkID(ctx context.Context, workID string) ([]models.Report, error)
	ExistsConflictingHash(ctx context.Context, contentHash, studentID string) (bool, error)
	Ping(ctx context.Context) error
}

type reportRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewReportRepository(db *sql.DB, logger zerolog.Logger) ReportRepository {
	return &reportRepository{
		db:     db,
		logger: logger,
	}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (
			report_id, work_id, student_id, file_id,
			content_hash, is_plagiarism, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		report.ReportID,
		report.WorkID,
		report.StudentID,
		report.FileID,
		report.ContentHash,
		report.IsPlagiarism,
		report.CreatedAt.UTC().Format(models.TimeLayout),
	)

	return err
}

func (r *reportRepository) GetByID(ctx context.Context, reportID string) (*models.Report, error) {
	query := `
		SELECT report_id, work_id, student_id, file_id,
		       content_hash, is_plagiarism, created_at
		FROM reports
		WHERE report_id = $1
	`

	report, err := scanReport(r.db.QueryRowContext(ctx, query, reportID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return report, nil
}

func (r *reportRepository) GetByWorkID(ctx context.Context, workID string) ([]models.Report, error) {
	// created_at хранится фиксированной ширины, текстовый ASC == хронологический.
	query := `
		SELECT report_id, work_id, student_id, file_id,
		       content_hash, is_plagiarism, created_at
		FROM reports
		WHERE work_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, workID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]models.Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}

	return reports, rows.Err()
}

// ExistsConflictingHash проверяет, есть ли уже отчёт с тем же content_hash от
// другого студента. Проверка точечная, без блокировки: между ней и вставкой
// нового отчёта транзакции нет.
func (r *reportRepository) ExistsConflictingHash(ctx context.Context, contentHash, studentID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reports
			WHERE content_hash = $1 AND student_id <> $2
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, contentHash, studentID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *reportRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(row rowScanner) (*models.Report, error) {
	report := &models.Report{}
	var createdAt string

	err := row.Scan(
		&report.ReportID,
		&report.WorkID,
		&report.StudentID,
		&report.FileID,
		&report.ContentHash,
		&report.IsPlagiarism,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	ts, err := time.Parse(models.TimeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at %q: %w", createdAt, err)
	}
	report.CreatedAt = ts

	return report, nil
}
