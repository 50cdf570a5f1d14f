package httpd

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/edupipe/antiplagiarism/internal/filestoring/service"
	"github.com/edupipe/antiplagiarism/pkg/httpx"
)

type Handler struct {
	storageService service.StorageService
	logger         zerolog.Logger
}

func NewHandler(storageService service.StorageService, logger zerolog.Logger) *Handler {
	return &Handler{
		storageService: storageService,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Post("/files", h.UploadFile)
	router.Get("/files/{file_id}", h.DownloadFile)
	router.Get("/files/{file_id}/meta", h.GetMeta)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyFile),
		errors.Is(err, service.ErrUnsupportedFile),
		errors.Is(err, service.ErrMissingFields):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSubmissionNotFound):
		httpx.WriteNotFound(w)
	default:
		h.logger.Error().Err(err).Msg("Storage service error")
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
