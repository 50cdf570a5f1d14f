package httpd

import (
	"net/http"
	"time"

	"github.com/edupipe/antiplagiarism/pkg/httpx"
)

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "file-analysis",
		"timestamp": time.Now().UTC(),
	})
}
