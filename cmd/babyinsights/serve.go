package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/babytracker/backend/internal/config"
	"github.com/JonnyWalker81/babytracker/backend/internal/handlers"
	"github.com/JonnyWalker81/babytracker/backend/internal/insights"
	"github.com/JonnyWalker81/babytracker/backend/internal/logger"
	"github.com/JonnyWalker81/babytracker/backend/internal/metrics"
	"github.com/JonnyWalker81/babytracker/backend/internal/middleware"
	"github.com/JonnyWalker81/babytracker/backend/internal/repository"
	"github.com/JonnyWalker81/babytracker/backend/internal/service"
	"github.com/JonnyWalker81/babytracker/backend/pkg/supabase"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for insight requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	setupLogger(cfg.Log)
	log := logger.Default()

	repo, err := newRecordRepository(cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine := insights.NewEngine(cfg.Insights)
	insightsService := service.NewInsightsService(repo, engine,
		service.WithMetrics(metrics.NewRecorder(reg)),
	)
	insightsHandler := handlers.NewInsightsHandler(insightsService)

	// Set Gin mode based on environment
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SecurityHeaders(cfg.Production()))
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	router.GET("/health", handlers.Health(cfg.Server.Env, cfg.Source()))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.UserToken())
	{
		v1.GET("/insights/types", insightsHandler.ListScopes)
		v1.GET("/subjects/:id/insights", insightsHandler.GetInsights)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			logger.String("port", cfg.Server.Port),
			logger.String("env", cfg.Server.Env),
			logger.String("source", cfg.Source()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// newRecordRepository selects snapshot files when configured, Supabase otherwise
func newRecordRepository(cfg *config.Config) (repository.RecordRepository, error) {
	if cfg.Source() == config.SourceSnapshot {
		repo, err := repository.NewFileRecordRepository(cfg.Snapshot.Paths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshots: %w", err)
		}
		logger.Info("serving records from snapshot files", logger.Strings("paths", cfg.Snapshot.Paths))
		return repo, nil
	}

	logger.Info("serving records from supabase", logger.String("url", cfg.Supabase.URL))
	return repository.NewSupabaseRecordRepository(supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)), nil
}
