package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edupipe/antiplagiarism/pkg/httpx"
)

const maxSubmitSize = 32 << 20 // 32MB

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxSubmitSize); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	studentName := r.FormValue("studentName")
	assignmentName := r.FormValue("assignmentName")

	result, err := h.workflow.Submit(r.Context(), file, fileHeader.Filename, studentName, assignmentName)
	if err != nil {
		h.handleWorkflowError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetReports(w http.ResponseWriter, r *http.Request) {
	workID := chi.URLParam(r, "work_id")

	reports, err := h.workflow.ReportsForWork(r.Context(), workID)
	if err != nil {
		h.handleWorkflowError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, reports)
}

func (h *Handler) GetWordCloud(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "report_id")

	cloud, err := h.workflow.WordCloudForReport(r.Context(), reportID)
	if err != nil {
		h.handleWorkflowError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, cloud)
}
