package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Report — типизированное представление ответа file-analysis. Гейтвей не
// интерпретирует поля, только переупаковывает их.
type Report struct {
	ReportID     string    `json:"report_id"`
	WorkID       string    `json:"work_id"`
	StudentID    string    `json:"student_id"`
	FileID       string    `json:"file_id"`
	ContentHash  string    `json:"content_hash"`
	IsPlagiarism bool      `json:"is_plagiarism"`
	CreatedAt    time.Time `json:"created_at"`
}

type WordCloud struct {
	URL string `json:"url"`
}

type SubmitResult struct {
	WorkID string `json:"work_id"`
	FileID string `json:"file_id"`
	Report Report `json:"report"`
}

type storedResult struct {
	FileID   string    `json:"file_id"`
	WorkID   string    `json:"work_id"`
	StoredAt time.Time `json:"stored_at"`
}

// Workflow — оркестратор двухшаговой саги "сохранить файл → создать отчёт".
// Состояния между запросами нет: только заранее сконфигурированные клиенты.
type Workflow interface {
	Submit(ctx context.Context, file io.Reader, fileName, studentName, assignmentName string) (*SubmitResult, error)
	ReportsForWork(ctx context.Context, workID string) ([]Report, error)
	WordCloudForReport(ctx context.Context, reportID string) (*WordCloud, error)
}

type submissionWorkflow struct {
	storingURL  string
	analysisURL string
	storing     *http.Client
	analysis    *http.Client
	logger      zerolog.Logger
}

func New(storingURL string, storingTimeout time.Duration, analysisURL string, analysisTimeout time.Duration, logger zerolog.Logger) Workflow {
	return &submissionWorkflow{
		storingURL:  strings.TrimRight(storingURL, "/"),
		analysisURL: strings.TrimRight(analysisURL, "/"),
		storing:     &http.Client{Timeout: storingTimeout},
		analysis:    &http.Client{Timeout: analysisTimeout},
		logger:      logger,
	}
}

// Submit валидирует ввод, затем последовательно: шаг 1 — файл в file-storing,
// шаг 2 — отчёт в file-analysis. Ретраев и компенсации нет: если шаг 2 упал,
// файл из шага 1 остаётся — вызывающий видит 503 и может отправить сдачу
// заново (появится второй файл).
func (w *submissionWorkflow) Submit(ctx context.Context, file io.Reader, fileName, studentName, assignmentName string) (*SubmitResult, error) {
	content, err := readFile(file)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: file is missing or empty", ErrValidation)
	}
	if !strings.HasSuffix(strings.ToLower(fileName), ".txt") {
		return nil, fmt.Errorf("%w: only .txt files are supported", ErrValidation)
	}

	studentName = strings.TrimSpace(studentName)
	if studentName == "" {
		return nil, fmt.Errorf("%w: student name is required", ErrValidation)
	}

	assignmentName = strings.TrimSpace(assignmentName)
	if assignmentName == "" {
		return nil, fmt.Errorf("%w: assignment name is required", ErrValidation)
	}

	// Личный кабинет не ведётся: каждой сдаче выдаётся свежий studentId,
	// а имя задания служит идентификатором задания и работы.
	studentID := uuid.New().String()
	assignmentID := assignmentName

	stored, err := w.storeFile(ctx, content, fileName, studentID, studentName, assignmentID)
	if err != nil {
		return nil, err
	}

	report, err := w.createReport(ctx, stored.FileID, stored.WorkID, studentID)
	if err != nil {
		return nil, err
	}

	return &SubmitResult{
		WorkID: stored.WorkID,
		FileID: stored.FileID,
		Report: *report,
	}, nil
}

func (w *submissionWorkflow) storeFile(ctx context.Context, content []byte, fileName, studentID, studentName, assignmentID string) (*storedResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	query := url.Values{}
	query.Set("studentId", studentID)
	query.Set("studentName", studentName)
	query.Set("assignmentId", assignmentID)

	uri := w.storingURL + "/files?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := w.storing.Do(req)
	if err != nil {
		return nil, &UpstreamError{Service: "file-storing", Body: err.Error()}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Service: "file-storing", Status: resp.StatusCode, Body: string(respBody)}
	}

	var stored storedResult
	if err := json.Unmarshal(respBody, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode file-storing response: %w", err)
	}

	w.logger.Debug().
		Str("file_id", stored.FileID).
		Str("work_id", stored.WorkID).
		Msg("File stored")

	return &stored, nil
}

func (w *submissionWorkflow) createReport(ctx context.Context, fileID, workID, studentID string) (*Report, error) {
	payload, err := json.Marshal(map[string]string{
		"file_id":    fileID,
		"work_id":    workID,
		"student_id": studentID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report request: %w", err)
	}

	uri := w.analysisURL + "/reports"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.analysis.Do(req)
	if err != nil {
		return nil, &UpstreamError{Service: "file-analysis", Body: err.Error()}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Service: "file-analysis", Status: resp.StatusCode, Body: string(respBody)}
	}

	var report Report
	if err := json.Unmarshal(respBody, &report); err != nil {
		return nil, fmt.Errorf("failed to decode file-analysis response: %w", err)
	}

	return &report, nil
}

// ReportsForWork — тонкая ретрансляция списка отчётов без переинтерпретации.
func (w *submissionWorkflow) ReportsForWork(ctx context.Context, workID string) ([]Report, error) {
	uri := fmt.Sprintf("%s/works/%s/reports", w.analysisURL, url.PathEscape(workID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := w.analysis.Do(req)
	if err != nil {
		return nil, &UpstreamError{Service: "file-analysis", Body: err.Error()}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Service: "file-analysis", Status: resp.StatusCode, Body: string(respBody)}
	}

	reports := make([]Report, 0)
	if err := json.Unmarshal(respBody, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode file-analysis response: %w", err)
	}

	return reports, nil
}

func (w *submissionWorkflow) WordCloudForReport(ctx context.Context, reportID string) (*WordCloud, error) {
	uri := fmt.Sprintf("%s/reports/%s/wordcloud", w.analysisURL, url.PathEscape(reportID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := w.analysis.Do(req)
	if err != nil {
		return nil, &UpstreamError{Service: "file-analysis", Body: err.Error()}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Service: "file-analysis", Status: resp.StatusCode, Body: string(respBody)}
	}

	var cloud WordCloud
	if err := json.Unmarshal(respBody, &cloud); err != nil {
		return nil, fmt.Errorf("failed to decode file-analysis response: %w", err)
	}

	return &cloud, nil
}

func readFile(file io.Reader) ([]byte, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: file is missing or empty", ErrValidation)
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return content, nil
}
