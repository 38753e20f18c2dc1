package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/anishtharur/Simple-Admin-UI/internal/config"
	"github.com/anishtharur/Simple-Admin-UI/internal/engine"
	"github.com/anishtharur/Simple-Admin-UI/internal/handler"
	"github.com/anishtharur/Simple-Admin-UI/internal/loader"
	"github.com/anishtharur/Simple-Admin-UI/internal/logger"
	"github.com/anishtharur/Simple-Admin-UI/internal/middleware"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "admin-console",
		Short: "In-memory admin record console backend",
		Long: `Serve the admin record console backend.

The server seeds an in-memory record set once from the configured seed
source (an HTTP endpoint or a local JSON file) and exposes the search,
pagination, selection, edit and delete commands over HTTP. Nothing is
written back anywhere: the record set lives for the session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if verbose {
				cfg.LogLevel = "debug"
			}
			logger.Configure(cfg.LogLevel)
			return serve(cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to YAML config file (optional)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}

func serve(cfg *config.Config) error {
	// Initialize the engine and kick off the one-shot seed load. Until the
	// fetch resolves the record set is empty and every derived view is
	// empty; the renderer handles the empty state.
	eng := engine.New()
	seedLoader := loader.New(cfg.SeedURL, cfg.SeedFile, cfg.SeedTimeout)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.SeedTimeout)
		defer cancel()
		seedLoader.Seed(ctx, eng)
	}()

	// Initialize handlers
	recordsHandler := handler.NewRecordsHandler(eng, seedLoader)
	healthHandler := handler.NewHealthHandler(eng)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(gin.Logger())

	// Health and metrics endpoints
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/live", healthHandler.Live)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		records := v1.Group("/records")
		{
			records.GET("", recordsHandler.GetRecords)
			records.POST("/search", recordsHandler.Search)
			records.POST("/page", recordsHandler.GoToPage)
			records.POST("/select-page", recordsHandler.ToggleSelectPage)
			records.POST("/delete-selected", recordsHandler.DeleteSelected)
			records.POST("/reload", recordsHandler.Reload)
			records.POST("/:id/edit", recordsHandler.BeginEdit)
			records.POST("/:id/commit", recordsHandler.CommitEdit)
			records.POST("/:id/cancel", recordsHandler.CancelEdit)
			records.POST("/:id/toggle", recordsHandler.ToggleSelect)
			records.DELETE("/:id", recordsHandler.Delete)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server",
			slog.String("port", cfg.ServerPort),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("start server: %w", err)
	case <-quit:
	}
	logger.Info("Shutting down server")

	// Shutdown HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error",
			slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
	return nil
}
