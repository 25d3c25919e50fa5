package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloo-solutions/sitechat/internal/api/handlers"
	"github.com/cloo-solutions/sitechat/internal/config"
	"github.com/cloo-solutions/sitechat/internal/crawler"
	"github.com/cloo-solutions/sitechat/internal/jobs"
	"github.com/cloo-solutions/sitechat/internal/kb"
	"github.com/cloo-solutions/sitechat/internal/openai"
	"github.com/cloo-solutions/sitechat/internal/retrieval"
	"github.com/cloo-solutions/sitechat/internal/server"
	"github.com/cloo-solutions/sitechat/internal/service"
	"github.com/cloo-solutions/sitechat/internal/session"
	"github.com/cloo-solutions/sitechat/internal/telemetry"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the sitechat API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.SentryDSN != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      environment,
			TracesSampleRate: sampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	defaultKB, err := kb.Load(cfg.SnapshotPath)
	if err != nil {
		return fmt.Errorf("failed to load knowledge base snapshot: %w", err)
	}
	if !defaultKB.IsEmpty() {
		log.Printf("loaded default knowledge base (%d documents, %d chunks)",
			len(defaultKB.Documents), defaultKB.TotalChunks())
	}

	aiClient := openai.NewClient(openai.Config{
		APIKey:         cfg.AIAPIKey,
		BaseURL:        cfg.AIBaseURL,
		EmbeddingModel: cfg.EmbedModel,
		ChatModel:      cfg.ChatModel,
	})

	sessions := session.NewStore(cfg.SessionTTL)

	sweepWorker := jobs.NewWorker(jobs.NewSweepProcessor(sessions), cfg.SweepInterval)
	go sweepWorker.Start(ctx)
	log.Println("session sweep worker started")

	siteCrawler := crawler.New(crawler.NewFetcher(0))
	ingestSvc := service.NewIngestService(siteCrawler, aiClient, sessions, service.IngestConfig{
		MaxPages:      cfg.MaxPages,
		MaxChunkChars: cfg.MaxChunkChars,
		SameHostOnly:  true,
	})
	chatSvc := service.NewChatService(aiClient, sessions, defaultKB, retrieval.DefaultK)

	router := server.NewRouter(server.RouterConfig{
		ScrapeHandler: handlers.NewScrapeHandler(ingestSvc),
		ChatHandler:   handlers.NewChatHandler(chatSvc),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	sweepWorker.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}
