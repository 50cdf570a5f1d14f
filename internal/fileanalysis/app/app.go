package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/edupipe/antiplagiarism/internal/fileanalysis/config"
	"github.com/edupipe/antiplagiarism/internal/fileanalysis/delivery/httpd"
	"github.com/edupipe/antiplagiarism/internal/fileanalysis/queue"
	"github.com/edupipe/antiplagiarism/internal/fileanalysis/repository"
	"github.com/edupipe/antiplagiarism/internal/fileanalysis/service"
	"github.com/edupipe/antiplagiarism/internal/fileanalysis/service/integration"
)

type App struct {
	server   *http.Server
	logger   zerolog.Logger
	config   *config.Config
	db       *sql.DB
	rabbitMQ *queue.Connection
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	// RabbitMQ опционален: без него события не публикуются, но анализ работает.
	var publisher queue.Publisher = queue.NopPublisher{}
	var rabbitMQ *queue.Connection

	conn, err := queue.NewConnection(cfg.RabbitMQ.URL, log)
	if err != nil {
		log.Error().Err(err).Msg("RabbitMQ unavailable, report events will not be published")
	} else if err := conn.SetupExchange(cfg.RabbitMQ.Exchange); err != nil {
		log.Error().Err(err).Msg("Failed to declare exchange, report events will not be published")
		_ = conn.Close()
	} else {
		rabbitMQ = conn
		publisher = queue.NewRabbitMQPublisher(conn.Channel(), cfg.RabbitMQ.Exchange, log)
	}

	reportRepo := repository.NewReportRepository(db, log)

	fileClient := integration.NewFileClient(
		cfg.Services.FileStoring.URL,
		cfg.Services.FileStoring.Timeout,
		log,
	)

	analysisService := service.NewAnalysisService(reportRepo, fileClient, publisher, log)
	reportService := service.NewReportService(reportRepo, log)
	wordCloudService := service.NewWordCloudService(reportRepo, fileClient, log)

	handler := httpd.NewHandler(analysisService, reportService, wordCloudService, log)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:   server,
		logger:   log,
		config:   cfg,
		db:       db,
		rabbitMQ: rabbitMQ,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting file-analysis service on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down file-analysis service...")

	if a.rabbitMQ != nil {
		if err := a.rabbitMQ.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
		return err
	}

	a.logger.Info().Msg("File-analysis service stopped")
	return nil
}
