package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/edupipe/antiplagiarism/internal/filestoring/models"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, fileID string) (*models.Submission, error)
	Ping(ctx context.Context) error
}

type submissionRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSubmissionRepository(db *sql.DB, logger zerolog.Logger) SubmissionRepository {
	return &submissionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	query := `
		INSERT INTO submissions (
			file_id, work_id, student_id, student_name,
			assignment_id, uploaded_at, storage_location
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		submission.FileID,
		submission.WorkID,
		submission.StudentID,
		submission.StudentName,
		submission.AssignmentID,
		submission.UploadedAt.UTC().Format(models.TimeLayout),
		submission.StorageLocation,
	)

	return err
}

func (r *submissionRepository) GetByID(ctx context.Context, fileID string) (*models.Submission, error) {
	query := `
		SELECT file_id, work_id, student_id, student_name,
		       assignment_id, uploaded_at, storage_location
		FROM submissions
		WHERE file_id = $1
	`

	submission := &models.Submission{}
	var uploadedAt string

	err := r.db.QueryRowContext(ctx, query, fileID).Scan(
		&submission.FileID,
		&submission.WorkID,
		&submission.StudentID,
		&submission.StudentName,
		&submission.AssignmentID,
		&uploadedAt,
		&submission.StorageLocation,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ts, err := time.Parse(models.TimeLayout, uploadedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse uploaded_at %q: %w", uploadedAt, err)
	}
	submission.UploadedAt = ts

	return submission, nil
}

func (r *submissionRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
