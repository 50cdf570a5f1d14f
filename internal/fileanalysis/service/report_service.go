package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edupipe/antiplagiarism/internal/fileanalysis/models"
	"github.com/edupipe/antiplagiarism/internal/fileanalysis/repository"
)

type ReportService interface {
	GetReport(ctx context.Context, reportID string) (*models.Report, error)
	GetReportsByWork(ctx context.Context, workID string) ([]models.Report, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
	logger     zerolog.Logger
}

func NewReportService(reportRepo repository.ReportRepository, logger zerolog.Logger) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		logger:     logger,
	}
}

func (s *reportService) GetReport(ctx context.Context, reportID string) (*models.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	if report == nil {
		return nil, ErrReportNotFound
	}

	return report, nil
}

// GetReportsByWork возвращает отчёты работы по возрастанию created_at.
// Работа без сдач — пустой список, не ошибка.
func (s *reportService) GetReportsByWork(ctx context.Context, workID string) ([]models.Report, error) {
	reports, err := s.reportRepo.GetByWorkID(ctx, workID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reports by work: %w", err)
	}

	return reports, nil
}
