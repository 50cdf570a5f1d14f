package httpd

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edupipe/antiplagiarism/pkg/httpx"
)

func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "file_id")

	content, fileName, err := h.storageService.GetFile(r.Context(), fileID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

func (h *Handler) GetMeta(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "file_id")

	submission, err := h.storageService.GetMeta(r.Context(), fileID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, submission)
}
