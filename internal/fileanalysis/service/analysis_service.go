package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edupipe/antiplagiarism/internal/fileanalysis/models"
	"github.com/edupipe/antiplagiarism/internal/fileanalysis/queue"
	"github.com/edupipe/antiplagiarism/internal/fileanalysis/repository"
	"github.com/edupipe/antiplagiarism/internal/fileanalysis/service/analyzer"
	"github.com/edupipe/antiplagiarism/internal/fileanalysis/service/integration"
)

const reportCreatedRoutingKey = "report.created"

type AnalysisService interface {
	Analyze(ctx context.Context, fileID, workID, studentID string) (*models.Report, error)
}

type analysisService struct {
	reportRepo repository.ReportRepository
	fileClient integration.FileClient
	publisher  queue.Publisher
	logger     zerolog.Logger
}

func NewAnalysisService(
	reportRepo repository.ReportRepository,
	fileClient integration.FileClient,
	publisher queue.Publisher,
	logger zerolog.Logger,
) AnalysisService {
	return &analysisService{
		reportRepo: reportRepo,
		fileClient: fileClient,
		publisher:  publisher,
		logger:     logger,
	}
}

// Analyze выполняет конвейер: текст → нормализация → отпечаток → проверка на
// совпадение с другими студентами → запись отчёта. Вердикт фиксируется на
// момент создания по уже записанным отчётам; запись — последний шаг, при любой
// более ранней ошибке в БД ничего не попадает.
func (s *analysisService) Analyze(ctx context.Context, fileID, workID, studentID string) (*models.Report, error) {
	fileID = strings.TrimSpace(fileID)
	workID = strings.TrimSpace(workID)
	studentID = strings.TrimSpace(studentID)

	if fileID == "" || workID == "" || studentID == "" {
		return nil, fmt.Errorf("%w: file_id, work_id and student_id are required", ErrValidation)
	}

	content, err := s.fileClient.GetFileContent(ctx, fileID)
	if err != nil {
		if errors.Is(err, integration.ErrFileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrFileService, err)
	}

	normalized := analyzer.Normalize(string(content))
	hash := analyzer.Fingerprint(normalized)

	plagiarism, err := s.reportRepo.ExistsConflictingHash(ctx, hash, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check conflicting hash: %w", err)
	}

	report := &models.Report{
		ReportID:     uuid.New().String(),
		WorkID:       workID,
		StudentID:    studentID,
		FileID:       fileID,
		ContentHash:  hash,
		IsPlagiarism: plagiarism,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	s.publishReportCreated(ctx, report)

	s.logger.Info().
		Str("report_id", report.ReportID).
		Str("work_id", workID).
		Str("student_id", studentID).
		Bool("plagiarism", plagiarism).
		Msg("Analysis completed")

	return report, nil
}

func (s *analysisService) publishReportCreated(ctx context.Context, report *models.Report) {
	event := models.ReportCreatedEvent{
		ReportID:     report.ReportID,
		WorkID:       report.WorkID,
		StudentID:    report.StudentID,
		FileID:       report.FileID,
		IsPlagiarism: report.IsPlagiarism,
		CreatedAt:    report.CreatedAt,
	}

	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to marshal report created event")
		return
	}

	if err := s.publisher.Publish(ctx, reportCreatedRoutingKey, body); err != nil {
		s.logger.Error().
			Err(err).
			Str("report_id", report.ReportID).
			Msg("Failed to publish report created event")
	}
}
