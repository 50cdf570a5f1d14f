package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// Тестовые дублёры коллабораторов: httptest-серверы со счётчиками запросов.

func newStoringServer(t *testing.T, hits *int32, status int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)

		if r.Method != http.MethodPost || r.URL.Path != "/files" {
			t.Errorf("unexpected request to file-storing: %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("studentId") == "" {
			t.Error("studentId query parameter is missing")
		}
		if r.URL.Query().Get("assignmentId") == "" {
			t.Error("assignmentId query parameter is missing")
		}

		if status != http.StatusCreated {
			w.WriteHeader(status)
			w.Write([]byte(`{"error":"Internal Server Error"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"file_id":   "f-1",
			"work_id":   r.URL.Query().Get("assignmentId"),
			"stored_at": time.Now().UTC(),
		})
	}))
}

func newAnalysisServer(t *testing.T, hits *int32, status int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)

		if r.Method != http.MethodPost || r.URL.Path != "/reports" {
			t.Errorf("unexpected request to file-analysis: %s %s", r.Method, r.URL.Path)
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode report request: %v", err)
		}
		if req["file_id"] == "" || req["work_id"] == "" || req["student_id"] == "" {
			t.Errorf("incomplete report request: %v", req)
		}

		if status != http.StatusCreated {
			w.WriteHeader(status)
			w.Write([]byte(`{"error":"Service Unavailable"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"report_id":     "r-1",
			"work_id":       req["work_id"],
			"student_id":    req["student_id"],
			"file_id":       req["file_id"],
			"content_hash":  "ABC123",
			"is_plagiarism": false,
			"created_at":    time.Now().UTC(),
		})
	}))
}

func newWorkflow(storingURL, analysisURL string) Workflow {
	return New(storingURL, time.Second, analysisURL, time.Second, zerolog.Nop())
}

func TestSubmitSuccess(t *testing.T) {
	var storingHits, analysisHits int32

	storing := newStoringServer(t, &storingHits, http.StatusCreated)
	defer storing.Close()
	analysis := newAnalysisServer(t, &analysisHits, http.StatusCreated)
	defer analysis.Close()

	wf := newWorkflow(storing.URL, analysis.URL)

	result, err := wf.Submit(context.Background(), strings.NewReader("my essay"), "essay.txt", "Alice", "hw-1")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if result.WorkID != "hw-1" {
		t.Errorf("work id = %q, want %q", result.WorkID, "hw-1")
	}
	if result.FileID != "f-1" {
		t.Errorf("file id = %q, want %q", result.FileID, "f-1")
	}
	if result.Report.ReportID != "r-1" {
		t.Errorf("report id = %q, want %q", result.Report.ReportID, "r-1")
	}
	if storingHits != 1 || analysisHits != 1 {
		t.Errorf("collaborator hits = %d/%d, want 1/1", storingHits, analysisHits)
	}
}

func TestSubmitValidationRejectsBeforeAnyCall(t *testing.T) {
	var storingHits, analysisHits int32

	storing := newStoringServer(t, &storingHits, http.StatusCreated)
	defer storing.Close()
	analysis := newAnalysisServer(t, &analysisHits, http.StatusCreated)
	defer analysis.Close()

	wf := newWorkflow(storing.URL, analysis.URL)

	testCases := []struct {
		name           string
		content        string
		fileName       string
		studentName    string
		assignmentName string
	}{
		{name: "csv file", content: "a,b", fileName: "essay.csv", studentName: "Alice", assignmentName: "hw-1"},
		{name: "empty file", content: "", fileName: "essay.txt", studentName: "Alice", assignmentName: "hw-1"},
		{name: "missing student name", content: "text", fileName: "essay.txt", studentName: " ", assignmentName: "hw-1"},
		{name: "missing assignment name", content: "text", fileName: "essay.txt", studentName: "Alice", assignmentName: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := wf.Submit(context.Background(), strings.NewReader(tc.content), tc.fileName, tc.studentName, tc.assignmentName)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}

	// Невалидная сдача не доходит ни до одного сервиса.
	if storingHits != 0 || analysisHits != 0 {
		t.Errorf("collaborator hits = %d/%d, want 0/0", storingHits, analysisHits)
	}
}

func TestSubmitStoringFailureStopsSaga(t *testing.T) {
	var storingHits, analysisHits int32

	storing := newStoringServer(t, &storingHits, http.StatusInternalServerError)
	defer storing.Close()
	analysis := newAnalysisServer(t, &analysisHits, http.StatusCreated)
	defer analysis.Close()

	wf := newWorkflow(storing.URL, analysis.URL)

	_, err := wf.Submit(context.Background(), strings.NewReader("text"), "essay.txt", "Alice", "hw-1")

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Service != "file-storing" {
		t.Errorf("service = %q, want %q", upstream.Service, "file-storing")
	}
	if upstream.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", upstream.Status, http.StatusInternalServerError)
	}
	if analysisHits != 0 {
		t.Errorf("file-analysis was called %d times after storage failure", analysisHits)
	}
}

func TestSubmitAnalysisFailureLeavesFileStored(t *testing.T) {
	var storingHits, analysisHits int32

	storing := newStoringServer(t, &storingHits, http.StatusCreated)
	defer storing.Close()
	analysis := newAnalysisServer(t, &analysisHits, http.StatusServiceUnavailable)
	defer analysis.Close()

	wf := newWorkflow(storing.URL, analysis.URL)

	_, err := wf.Submit(context.Background(), strings.NewReader("text"), "essay.txt", "Alice", "hw-1")

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Service != "file-analysis" {
		t.Errorf("service = %q, want %q", upstream.Service, "file-analysis")
	}
	// Компенсации нет: файл уже сохранён, второй шаг не откатывает первый.
	if storingHits != 1 {
		t.Errorf("file-storing hits = %d, want 1", storingHits)
	}
}

func TestSubmitUnreachableCollaborator(t *testing.T) {
	storing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	storing.Close() // адрес валиден, но никто не слушает

	wf := newWorkflow(storing.URL, "http://127.0.0.1:1")

	_, err := wf.Submit(context.Background(), strings.NewReader("text"), "essay.txt", "Alice", "hw-1")

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Status != 0 {
		t.Errorf("status = %d, want 0 for unreachable service", upstream.Status)
	}
	if !strings.Contains(upstream.Error(), "unreachable") {
		t.Errorf("error does not mention unreachable service: %v", upstream)
	}
}

func TestReportsForWork(t *testing.T) {
	analysis := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/works/hw-1/reports" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"report_id":"r-1","work_id":"hw-1","is_plagiarism":true,"created_at":"2026-01-15T10:00:00Z"}]`))
	}))
	defer analysis.Close()

	wf := newWorkflow("http://unused", analysis.URL)

	reports, err := wf.ReportsForWork(context.Background(), "hw-1")
	if err != nil {
		t.Fatalf("ReportsForWork() error = %v", err)
	}
	if len(reports) != 1 || reports[0].ReportID != "r-1" || !reports[0].IsPlagiarism {
		t.Errorf("unexpected reports: %+v", reports)
	}
}

func TestWordCloudForReportRelaysNotFound(t *testing.T) {
	analysis := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer analysis.Close()

	wf := newWorkflow("http://unused", analysis.URL)

	_, err := wf.WordCloudForReport(context.Background(), "missing")

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", upstream.Status)
	}
}

func TestWordCloudForReport(t *testing.T) {
	analysis := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reports/r-1/wordcloud" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"https://quickchart.io/wordcloud?text=go+go"}`))
	}))
	defer analysis.Close()

	wf := newWorkflow("http://unused", analysis.URL)

	cloud, err := wf.WordCloudForReport(context.Background(), "r-1")
	if err != nil {
		t.Fatalf("WordCloudForReport() error = %v", err)
	}
	if !strings.HasPrefix(cloud.URL, "https://quickchart.io/wordcloud") {
		t.Errorf("unexpected word cloud URL: %q", cloud.URL)
	}
}
