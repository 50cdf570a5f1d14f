package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/edupipe/antiplagiarism/internal/gateway/workflow"
	"github.com/edupipe/antiplagiarism/pkg/httpx"
)

type Handler struct {
	workflow workflow.Workflow
	logger   zerolog.Logger
}

func NewHandler(wf workflow.Workflow, logger zerolog.Logger) *Handler {
	return &Handler{
		workflow: wf,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api", func(api chi.Router) {
		api.Post("/submit", h.Submit)
		api.Get("/works/{work_id}/reports", h.GetReports)
		api.Get("/reports/{report_id}/wordcloud", h.GetWordCloud)
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "api-gateway",
		"timestamp": time.Now().UTC(),
	})
}

func (h *Handler) handleWorkflowError(w http.ResponseWriter, err error) {
	var upstream *workflow.UpstreamError

	switch {
	case errors.Is(err, workflow.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &upstream):
		// 404 апстрима — отсутствие ресурса, а не деградация сервиса.
		if upstream.Status == http.StatusNotFound {
			httpx.WriteNotFound(w)
			return
		}
		h.logger.Error().
			Str("service", upstream.Service).
			Int("status", upstream.Status).
			Str("body", upstream.Body).
			Msg("Upstream service failure")
		httpx.WriteError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.Error().Err(err).Msg("Workflow error")
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
