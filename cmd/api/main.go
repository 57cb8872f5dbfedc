package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nordlys-ai/assistant-platform/internal/api/router"
	"github.com/nordlys-ai/assistant-platform/internal/chat"
	"github.com/nordlys-ai/assistant-platform/internal/compliance"
	"github.com/nordlys-ai/assistant-platform/internal/config"
	"github.com/nordlys-ai/assistant-platform/internal/http/handlers"
	"github.com/nordlys-ai/assistant-platform/internal/knowledge"
	"github.com/nordlys-ai/assistant-platform/internal/observability/metrics"
	"github.com/nordlys-ai/assistant-platform/internal/sanitize"
	"github.com/nordlys-ai/assistant-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting assistant-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	sanitizerMetrics := metrics.NewSanitizerMetrics(nil)
	sanitizer := sanitize.New(logger)

	var audit *compliance.AuditService
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		audit = compliance.NewAuditService(db)
	} else {
		logger.Warn("DATABASE_URL not set, audit trail disabled")
	}

	var retriever knowledge.Retriever
	if cfg.KnowledgeServiceURL != "" {
		inner := knowledge.NewHTTPRetriever(
			cfg.KnowledgeServiceURL,
			cfg.KnowledgeServiceToken,
			knowledge.WithLogger(logger),
		)
		retriever = knowledge.NewSafeRetriever(inner, sanitizer, audit, sanitizerMetrics, logger)
	} else {
		logger.Warn("KNOWLEDGE_SERVICE_URL not set, answering without retrieved context")
	}

	model := chat.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.ModelTimeout)
	chatService := chat.NewService(chat.ServiceConfig{
		Model:        model,
		Retriever:    retriever,
		Sanitizer:    sanitizer,
		Audit:        audit,
		Metrics:      sanitizerMetrics,
		Logger:       logger,
		SystemPrompt: cfg.SystemPrompt,
		MaxSnippets:  cfg.KnowledgeMaxSnippets,
	})

	r := router.New(&router.Config{
		Logger:          logger,
		ChatHandler:     chat.NewHandler(chatService, logger),
		SanitizeHandler: handlers.NewSanitizeHandler(sanitizer, sanitizerMetrics, logger),
		MetricsHandler:  promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
