package httpd

import (
	"io"
	"net/http"

	"github.com/edupipe/antiplagiarism/internal/filestoring/models"
	"github.com/edupipe/antiplagiarism/pkg/httpx"
)

const maxUploadSize = 32 << 20 // 32MB

func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	// Метаданные сдачи передаются query-параметрами.
	studentID := r.URL.Query().Get("studentId")
	studentName := r.URL.Query().Get("studentName")
	assignmentID := r.URL.Query().Get("assignmentId")

	submission, err := h.storageService.Save(r.Context(), fileHeader.Filename, content, studentID, studentName, assignmentID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, models.UploadResponse{
		FileID:   submission.FileID,
		WorkID:   submission.WorkID,
		StoredAt: submission.UploadedAt,
	})
}
