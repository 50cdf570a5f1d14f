package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/edupipe/antiplagiarism/internal/fileanalysis/models"
	"github.com/edupipe/antiplagiarism/internal/fileanalysis/service/analyzer"
	"github.com/edupipe/antiplagiarism/internal/fileanalysis/service/integration"
)

func newAnalysisService(repo *mockReportRepository, client *mockFileClient, pub *mockPublisher) AnalysisService {
	return NewAnalysisService(repo, client, pub, zerolog.Nop())
}

func TestAnalyzeValidation(t *testing.T) {
	repo := &mockReportRepository{}
	client := &mockFileClient{}

	svc := newAnalysisService(repo, client, &mockPublisher{})

	testCases := []struct {
		name      string
		fileID    string
		workID    string
		studentID string
	}{
		{name: "empty file id", fileID: "", workID: "hw-1", studentID: "s-1"},
		{name: "empty work id", fileID: "f-1", workID: "  ", studentID: "s-1"},
		{name: "empty student id", fileID: "f-1", workID: "hw-1", studentID: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Analyze(context.Background(), tc.fileID, tc.workID, tc.studentID)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}

	// Невалидный ввод не должен вызывать походов наружу и записей.
	if client.calls != 0 {
		t.Errorf("file client was called %d times on invalid input", client.calls)
	}
	if repo.createCalls != 0 {
		t.Errorf("repository Create was called %d times on invalid input", repo.createCalls)
	}
}

func TestAnalyzeFileNotFound(t *testing.T) {
	repo := &mockReportRepository{}
	client := &mockFileClient{
		getFileContentFn: func(ctx context.Context, fileID string) ([]byte, error) {
			return nil, integration.ErrFileNotFound
		},
	}

	svc := newAnalysisService(repo, client, &mockPublisher{})

	_, err := svc.Analyze(context.Background(), "missing", "hw-1", "s-1")
	if !errors.Is(err, integration.ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Error("report was created despite missing file")
	}
}

func TestAnalyzeFileServiceFailure(t *testing.T) {
	repo := &mockReportRepository{}
	client := &mockFileClient{
		getFileContentFn: func(ctx context.Context, fileID string) ([]byte, error) {
			return nil, &integration.UpstreamError{Status: 500, Body: "boom"}
		},
	}

	svc := newAnalysisService(repo, client, &mockPublisher{})

	_, err := svc.Analyze(context.Background(), "f-1", "hw-1", "s-1")
	if !errors.Is(err, ErrFileService) {
		t.Errorf("expected ErrFileService, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Error("report was created despite file service failure")
	}
}

func TestAnalyzeFirstSubmission(t *testing.T) {
	var created *models.Report

	repo := &mockReportRepository{
		createFn: func(ctx context.Context, report *models.Report) error {
			created = report
			return nil
		},
	}
	client := &mockFileClient{
		getFileContentFn: func(ctx context.Context, fileID string) ([]byte, error) {
			return []byte("Hello, World!"), nil
		},
	}

	svc := newAnalysisService(repo, client, &mockPublisher{})

	report, err := svc.Analyze(context.Background(), "f-1", "hw-1", "s-1")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if report.IsPlagiarism {
		t.Error("first submission flagged as plagiarism")
	}
	if created == nil {
		t.Fatal("report was not persisted")
	}

	wantHash := analyzer.Fingerprint(analyzer.Normalize("Hello, World!"))
	if created.ContentHash != wantHash {
		t.Errorf("content hash = %s, want %s", created.ContentHash, wantHash)
	}
	if created.ReportID == "" {
		t.Error("report id is empty")
	}
	if created.WorkID != "hw-1" || created.StudentID != "s-1" || created.FileID != "f-1" {
		t.Errorf("unexpected report identifiers: %+v", created)
	}
}

func TestAnalyzeConflictingHash(t *testing.T) {
	repo := &mockReportRepository{
		existsConflictingHashFn: func(ctx context.Context, contentHash, studentID string) (bool, error) {
			return true, nil
		},
	}
	client := &mockFileClient{
		getFileContentFn: func(ctx context.Context, fileID string) ([]byte, error) {
			return []byte("copied essay"), nil
		},
	}

	svc := newAnalysisService(repo, client, &mockPublisher{})

	report, err := svc.Analyze(context.Background(), "f-2", "hw-1", "s-2")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if !report.IsPlagiarism {
		t.Error("matching content from another student was not flagged")
	}
}

func TestAnalyzeSameStudentResubmission(t *testing.T) {
	// Повторная сдача того же студента совпадением не считается: репозиторий
	// обязан получить его studentId, чтобы исключить собственные отчёты.
	var gotStudentID string

	repo := &mockReportRepository{
		existsConflictingHashFn: func(ctx context.Context, contentHash, studentID string) (bool, error) {
			gotStudentID = studentID
			return false, nil
		},
	}
	client := &mockFileClient{
		getFileContentFn: func(ctx context.Context, fileID string) ([]byte, error) {
			return []byte("my own essay"), nil
		},
	}

	svc := newAnalysisService(repo, client, &mockPublisher{})

	report, err := svc.Analyze(context.Background(), "f-3", "hw-1", "s-1")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if report.IsPlagiarism {
		t.Error("resubmission was flagged as plagiarism")
	}
	if gotStudentID != "s-1" {
		t.Errorf("conflict check used student id %q, want %q", gotStudentID, "s-1")
	}
}

func TestAnalyzePublisherFailureIsNotFatal(t *testing.T) {
	repo := &mockReportRepository{}
	client := &mockFileClient{
		getFileContentFn: func(ctx context.Context, fileID string) ([]byte, error) {
			return []byte("essay"), nil
		},
	}
	pub := &mockPublisher{
		publishFn: func(ctx context.Context, routingKey string, body []byte) error {
			return errors.New("broker is down")
		},
	}

	svc := newAnalysisService(repo, client, pub)

	report, err := svc.Analyze(context.Background(), "f-1", "hw-1", "s-1")
	if err != nil {
		t.Fatalf("Analyze() error = %v, want nil despite publish failure", err)
	}
	if report == nil {
		t.Fatal("report is nil")
	}
	if pub.calls != 1 {
		t.Errorf("publisher calls = %d, want 1", pub.calls)
	}
}

func TestAnalyzeCreateFailure(t *testing.T) {
	repo := &mockReportRepository{
		createFn: func(ctx context.Context, report *models.Report) error {
			return errors.New("insert failed")
		},
	}
	client := &mockFileClient{
		getFileContentFn: func(ctx context.Context, fileID string) ([]byte, error) {
			return []byte("essay"), nil
		},
	}
	pub := &mockPublisher{}

	svc := newAnalysisService(repo, client, pub)

	if _, err := svc.Analyze(context.Background(), "f-1", "hw-1", "s-1"); err == nil {
		t.Fatal("expected error when Create fails")
	}
	if pub.calls != 0 {
		t.Error("event was published for a report that was not persisted")
	}
}
