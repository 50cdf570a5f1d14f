package httpd

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/edupipe/antiplagiarism/internal/fileanalysis/service"
	"github.com/edupipe/antiplagiarism/internal/fileanalysis/service/integration"
	"github.com/edupipe/antiplagiarism/pkg/httpx"
)

type Handler struct {
	analysisService  service.AnalysisService
	reportService    service.ReportService
	wordCloudService service.WordCloudService
	logger           zerolog.Logger
}

func NewHandler(
	analysisService service.AnalysisService,
	reportService service.ReportService,
	wordCloudService service.WordCloudService,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		analysisService:  analysisService,
		reportService:    reportService,
		wordCloudService: wordCloudService,
		logger:           logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Post("/reports", h.CreateReport)
	router.Get("/reports/{report_id}", h.GetReport)
	router.Get("/reports/{report_id}/wordcloud", h.GetWordCloud)
	router.Get("/works/{work_id}/reports", h.GetReportsByWork)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	var upstream *integration.UpstreamError

	switch {
	case errors.Is(err, service.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrReportNotFound),
		errors.Is(err, integration.ErrFileNotFound):
		httpx.WriteNotFound(w)
	case errors.Is(err, service.ErrFileService), errors.As(err, &upstream):
		h.logger.Error().Err(err).Msg("File service failure")
		httpx.WriteError(w, http.StatusBadGateway, err.Error())
	default:
		h.logger.Error().Err(err).Msg("Analysis service error")
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
