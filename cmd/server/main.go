package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nzaccagnino/studydesk/internal/config"
	"github.com/nzaccagnino/studydesk/internal/db"
	"github.com/nzaccagnino/studydesk/internal/logger"
	"github.com/nzaccagnino/studydesk/internal/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "studydesk-server",
		Short:        "Self-hosted jsonbin-compatible store for StudyDesk documents",
		RunE:         func(cmd *cobra.Command, args []string) error { return serve(cmd) },
		SilenceUsage: true,
	}
	rootCmd.Flags().String("port", getEnv("PORT", "5689"), "Listen port")
	rootCmd.Flags().String("db", getEnv("DB_PATH", "/data/bins.db"), "SQLite database path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(cmd *cobra.Command) error {
	port, _ := cmd.Flags().GetString("port")
	dbPath, _ := cmd.Flags().GetString("db")

	masterKey := getEnv("MASTER_KEY", "")
	if masterKey == "" {
		return errors.New("MASTER_KEY environment variable is required")
	}
	rateLimit, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "100"))
	if err != nil {
		return fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
	}

	log, err := logger.New(config.LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	})
	if err != nil {
		return err
	}
	defer log.Close()

	database, err := db.New(dbPath)
	if err != nil {
		log.WithError(err).Errorw("Failed to initialize database", "path", dbPath)
		return err
	}
	defer database.Close()

	srv, err := server.New(database, server.Config{MasterKey: masterKey, RateLimitPerMinute: rateLimit}, log)
	if err != nil {
		return err
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              ":" + port,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infow("Starting server", "addr", httpServer.Addr, "db", dbPath)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Errorw("Server failed")
			return err
		}
	case <-ctx.Done():
		log.Infow("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warnw("Graceful shutdown failed")
			return err
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
