package service

import (
	"context"

	"github.com/edupipe/antiplagiarism/internal/fileanalysis/models"
)

// Моки на функциональных полях: тест подставляет только то, что ему нужно.

type mockReportRepository struct {
	createFn                func(ctx context.Context, report *models.Report) error
	getByIDFn               func(ctx context.Context, reportID string) (*models.Report, error)
	getByWorkIDFn           func(ctx context.Context, workID string) ([]models.Report, error)
	existsConflictingHashFn func(ctx context.Context, contentHash, studentID string) (bool, error)

	createCalls int
}

func (m *mockReportRepository) Create(ctx context.Context, report *models.Report) error {
	m.createCalls++
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, report)
}

func (m *mockReportRepository) GetByID(ctx context.Context, reportID string) (*models.Report, error) {
	if m.getByIDFn == nil {
		return nil, nil
	}
	return m.getByIDFn(ctx, reportID)
}

func (m *mockReportRepository) GetByWorkID(ctx context.Context, workID string) ([]models.Report, error) {
	if m.getByWorkIDFn == nil {
		return []models.Report{}, nil
	}
	return m.getByWorkIDFn(ctx, workID)
}

func (m *mockReportRepository) ExistsConflictingHash(ctx context.Context, contentHash, studentID string) (bool, error) {
	if m.existsConflictingHashFn == nil {
		return false, nil
	}
	return m.existsConflictingHashFn(ctx, contentHash, studentID)
}

func (m *mockReportRepository) Ping(context.Context) error {
	return nil
}

type mockFileClient struct {
	getFileContentFn func(ctx context.Context, fileID string) ([]byte, error)

	calls int
}

func (m *mockFileClient) GetFileContent(ctx context.Context, fileID string) ([]byte, error) {
	m.calls++
	if m.getFileContentFn == nil {
		return nil, nil
	}
	return m.getFileContentFn(ctx, fileID)
}

type mockPublisher struct {
	publishFn func(ctx context.Context, routingKey string, body []byte) error

	calls int
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	m.calls++
	if m.publishFn == nil {
		return nil
	}
	return m.publishFn(ctx, routingKey, body)
}
