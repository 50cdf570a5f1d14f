package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edupipe/antiplagiarism/internal/fileanalysis/models"
	"github.com/edupipe/antiplagiarism/pkg/httpx"
)

func (h *Handler) GetWordCloud(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "report_id")

	cloudURL, err := h.wordCloudService.BuildURL(r.Context(), reportID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, models.WordCloudResponse{URL: cloudURL})
}
