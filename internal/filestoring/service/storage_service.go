package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edupipe/antiplagiarism/internal/filestoring/models"
	"github.com/edupipe/antiplagiarism/internal/filestoring/repository"
)

type StorageService interface {
	Save(ctx context.Context, fileName string, content []byte, studentID, studentName, assignmentID string) (*models.Submission, error)
	GetFile(ctx context.Context, fileID string) ([]byte, string, error)
	GetMeta(ctx context.Context, fileID string) (*models.Submission, error)
}

type storageService struct {
	submissionRepo repository.SubmissionRepository
	objectStorage  repository.ObjectStorage
	logger         zerolog.Logger
}

func NewStorageService(
	submissionRepo repository.SubmissionRepository,
	objectStorage repository.ObjectStorage,
	logger zerolog.Logger,
) StorageService {
	return &storageService{
		submissionRepo: submissionRepo,
		objectStorage:  objectStorage,
		logger:         logger,
	}
}

// Save кладёт байты в объектное хранилище и пишет строку submissions.
// workId совпадает с assignmentId: все сдачи одного задания группируются
// под одним идентификатором работы.
func (s *storageService) Save(ctx context.Context, fileName string, content []byte, studentID, studentName, assignmentID string) (*models.Submission, error) {
	if len(content) == 0 {
		return nil, ErrEmptyFile
	}

	if !strings.HasSuffix(strings.ToLower(fileName), ".txt") {
		return nil, ErrUnsupportedFile
	}

	studentID = strings.TrimSpace(studentID)
	assignmentID = strings.TrimSpace(assignmentID)
	if studentID == "" || assignmentID == "" {
		return nil, ErrMissingFields
	}

	fileID := uuid.New().String()
	objectName := fileID + "_" + fileName

	if err := s.objectStorage.Put(ctx, objectName, content); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	submission := &models.Submission{
		FileID:          fileID,
		WorkID:          assignmentID,
		StudentID:       studentID,
		StudentName:     strings.TrimSpace(studentName),
		AssignmentID:    assignmentID,
		UploadedAt:      time.Now().UTC(),
		StorageLocation: objectName,
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	s.logger.Info().
		Str("file_id", fileID).
		Str("work_id", submission.WorkID).
		Str("student_id", studentID).
		Int("size", len(content)).
		Msg("Submission stored")

	return submission, nil
}

// GetFile возвращает исходные байты и оригинальное имя файла.
func (s *storageService) GetFile(ctx context.Context, fileID string) ([]byte, string, error) {
	submission, err := s.submissionRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, "", ErrSubmissionNotFound
	}

	content, err := s.objectStorage.Get(ctx, submission.StorageLocation)
	if err != nil {
		if err == repository.ErrObjectNotFound {
			return nil, "", ErrSubmissionNotFound
		}
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}

	// Ключ объекта — "fileId_originalName".
	fileName := submission.StorageLocation
	if idx := strings.Index(fileName, "_"); idx >= 0 {
		fileName = fileName[idx+1:]
	}

	return content, fileName, nil
}

func (s *storageService) GetMeta(ctx context.Context, fileID string) (*models.Submission, error) {
	submission, err := s.submissionRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, ErrSubmissionNotFound
	}

	return submission, nil
}
