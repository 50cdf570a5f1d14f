package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edupipe/antiplagiarism/internal/fileanalysis/models"
	"github.com/edupipe/antiplagiarism/pkg/httpx"
)

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReportRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := h.analysisService.Analyze(r.Context(), req.FileID, req.WorkID, req.StudentID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, report)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "report_id")

	report, err := h.reportService.GetReport(r.Context(), reportID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) GetReportsByWork(w http.ResponseWriter, r *http.Request) {
	workID := chi.URLParam(r, "work_id")

	reports, err := h.reportService.GetReportsByWork(r.Context(), workID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, reports)
}
