package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/riccoai/lead-agent/internal/api/router"
	appconfig "github.com/riccoai/lead-agent/internal/config"
	"github.com/riccoai/lead-agent/internal/contact"
	"github.com/riccoai/lead-agent/internal/conversation"
	"github.com/riccoai/lead-agent/internal/intent"
	"github.com/riccoai/lead-agent/internal/llm"
	"github.com/riccoai/lead-agent/internal/notify"
	"github.com/riccoai/lead-agent/internal/observability/metrics"
	"github.com/riccoai/lead-agent/internal/retrieval"
	"github.com/riccoai/lead-agent/internal/scheduling"
	"github.com/riccoai/lead-agent/internal/session"
	"github.com/riccoai/lead-agent/internal/webchat"
	"github.com/riccoai/lead-agent/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting lead-agent API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	registry := prometheus.NewRegistry()
	conversationMetrics := metrics.NewConversationMetrics(registry)

	// Redis-backed history when an address is configured, in-memory otherwise.
	var historyStore session.HistoryStore
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient = redis.NewClient(opts)
		historyStore = session.NewRedisHistoryStore(redisClient, cfg.HistoryTTL)
		logger.Info("using redis history store", "addr", cfg.RedisAddr, "ttl", cfg.HistoryTTL)
	} else {
		historyStore = session.NewMemoryHistoryStore()
		logger.Warn("REDIS_ADDR not set, session history is in-memory only")
	}

	llmClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.ChatModel, logger)

	retriever := buildRetriever(cfg, logger)

	classifier := intent.NewClassifier(llmClient, cfg.ClassifierModel, logger)
	responder := conversation.NewResponder(llmClient, retriever, conversation.ResponderConfig{
		Model:       cfg.ChatModel,
		MaxTokens:   cfg.MaxTokens,
		Temperature: &cfg.Temperature,
		TopP:        cfg.TopP,
		TopK:        cfg.RetrievalTopK,
	}, conversationMetrics, logger)

	scheduler := scheduling.NewCoordinator(scheduling.Config{
		WebhookURL:  cfg.SchedulingWebhookURL,
		FallbackURL: cfg.FallbackBookingURL,
		LinkText:    cfg.BookingLinkText,
		Message:     cfg.SchedulingEnvelopeText,
		Timeout:     cfg.SchedulingTimeout,
	}, logger)

	sessions := session.NewManager(cfg.SessionTTL)
	sessions.StartJanitor(time.Minute)
	defer sessions.Close()

	orchestrator := conversation.NewOrchestrator(
		sessions, historyStore, classifier, responder, scheduler,
		conversationMetrics, logger, cfg.MessageCeiling,
	)

	chatHandler := webchat.NewHandler(orchestrator, historyStore, logger)

	var emailSender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		emailSender = sg
	} else {
		emailSender = notify.NewStubEmailSender(logger)
	}
	notifier := notify.NewService(emailSender, cfg.ContactRecipient, logger)
	contactHandler := contact.NewHandler(notifier, logger)

	ready := func() error {
		if redisClient == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return redisClient.Ping(ctx).Err()
	}

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chatHandler,
		ContactHandler:     contactHandler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Ready:              ready,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // websocket connections stay open
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

// buildRetriever prefers Qdrant and falls back to the in-memory store when
// Qdrant is not configured. Document ingestion runs in the background so a
// slow vector store never delays startup.
func buildRetriever(cfg *appconfig.Config, logger *logging.Logger) retrieval.Retriever {
	embedder := retrieval.NewEmbedder(cfg.OpenAIAPIKey, cfg.EmbeddingModel)

	var retriever retrieval.Retriever
	var ingestTarget retrieval.Ingestor

	if cfg.QdrantURL != "" {
		store, err := retrieval.NewQdrantStore(retrieval.QdrantConfig{
			URL:            cfg.QdrantURL,
			CollectionName: cfg.QdrantCollection,
			APIKey:         cfg.QdrantAPIKey,
		}, embedder, logger)
		if err != nil {
			logger.Error("qdrant setup failed, falling back to in-memory retrieval", "error", err)
		} else {
			retriever = store
			ingestTarget = store
		}
	}
	if retriever == nil {
		store := retrieval.NewMemoryStore(embedder, logger)
		retriever = store
		ingestTarget = store
	}

	if cfg.DocsDir != "" {
		ingestor := retrieval.NewDirectoryIngestor(ingestTarget, logger)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if err := ingestor.LoadDirectory(ctx, cfg.DocsDir); err != nil {
				logger.Warn("document ingestion failed", "dir", cfg.DocsDir, "error", err)
			}
		}()
	}

	return retriever
}
